package domain

import "time"

// User represents a user of the application in the domain.
// Users authenticate with username/password or a Google identity; advisors and
// clients are both users, their role is per-practice (see UserPractice).
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	GoogleID     string `json:"-"` // Subject from a verified Google ID token, empty for local accounts
	Email        string `json:"email"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete

	// Refresh token details; only the SHA256 hash of the token is stored.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// GoogleUserInfo holds the profile fields extracted from a Google ID token.
type GoogleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
