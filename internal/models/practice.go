package models

import "time"

// Practice represents a row in the practices table.
type Practice struct {
	PracticeID  string `db:"practice_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}

// UserPractice represents a membership row in the user_practices table.
type UserPractice struct {
	UserID     string    `db:"user_id"`
	PracticeID string    `db:"practice_id"`
	Role       string    `db:"role"`
	JoinedAt   time.Time `db:"joined_at"`
}
