package model

import "time"

// User mirrors the 'users' table. Password and RefreshToken never leave
// the service layer; handlers respond with PublicUser instead.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address, stored as given (case-sensitive).
//  Name         – display name.
//  Password     – bcrypt hashed password.
//  RefreshToken – the single currently valid refresh token (nil until
//                 first login; overwritten on every login and rotation).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	Name         string    // users.name
	Password     string    // users.password
	RefreshToken *string   // users.refresh_token (nullable)
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// PublicUser is the outward view of a user with credential fields
// stripped. It is the only user shape serialized to clients.
type PublicUser struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public strips password and refresh token from the record.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
