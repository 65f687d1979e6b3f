package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// randomPassword returns 64 hex chars of secure randomness. Used for
// OAuth-provisioned accounts, which never log in with a password.
func randomPassword() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process cannot do anything
		// credential-related safely.
		panic(err)
	}
	return hex.EncodeToString(buf)
}
