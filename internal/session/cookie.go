package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// Session cookies carry "<sid>.<signature>" so a forged id is rejected
// before the store is consulted. The signature is HMAC-SHA256 over the
// sid with the process-wide session secret.

// Sign appends the sid's signature.
func Sign(secret, sid string) string {
	return sid + "." + signature(secret, sid)
}

// Unsign splits and verifies a cookie value, returning the sid. The
// comparison is constant time.
func Unsign(secret, value string) (string, bool) {
	i := strings.LastIndexByte(value, '.')
	if i <= 0 {
		return "", false
	}
	sid, sig := value[:i], value[i+1:]
	if !hmac.Equal([]byte(sig), []byte(signature(secret, sid))) {
		return "", false
	}
	return sid, true
}

func signature(secret, sid string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(sid))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
