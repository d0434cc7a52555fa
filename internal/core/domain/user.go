package domain

import "time"

// UserStatus enumerates possible account states.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// User mirrors the persisted representation in the users table.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	PasswordAlgo string
	Status       UserStatus
	RegisteredAt time.Time
	LastLogin    *time.Time
}

// PasswordResetToken represents a single-use password reset token hash.
type PasswordResetToken struct {
	ID        string
	UserID    string
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
	UsedAt    *time.Time
}

// IsUsable reports whether the token can still redeem a reset at the supplied moment.
func (t PasswordResetToken) IsUsable(at time.Time) bool {
	if t.UsedAt != nil {
		return false
	}
	return t.ExpiresAt.After(at)
}
