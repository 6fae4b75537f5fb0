package entity

import "time"

type User struct {
	ID        int64
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewUser struct {
	ID    int64
	Email string
}

// UserCredentialInfo joins a user with the stored Argon2id credential.
type UserCredentialInfo struct {
	ID       int64
	Email    string
	Password string
}

type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string // hmac of the opaque token
	ExpiresAt time.Time
}

type UserRefreshToken struct {
	UserID            int64
	UserEmail         string
	RefreshID         int64
	Revoked           bool
	ReplacedByTokenID *int64
	ExpiresAt         time.Time
}

type RotateRefreshToken struct {
	NewID        int64
	OldID        int64
	UserID       int64
	NewToken     string
	NewExpiresAt time.Time
}
