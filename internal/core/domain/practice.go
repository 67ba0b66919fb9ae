package domain

import "time"

// Practice represents an accounting office (the tenant). All fiscal profiles,
// suggestions and change history belong to exactly one practice.
type Practice struct {
	PracticeID  string `json:"practiceID"` // Primary Key (UUID)
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// UserPracticeRole defines the possible roles a user can have within a practice.
type UserPracticeRole string

const (
	RoleAdmin    UserPracticeRole = "ADMIN"    // Full access to the practice
	RoleAdvisor  UserPracticeRole = "ADVISOR"  // Assigned preparer; may edit clients and review suggestions
	RoleClient   UserPracticeRole = "CLIENT"   // Self-service client; may read own data and submit suggestions
	RoleReadOnly UserPracticeRole = "READONLY" // Read-only access to practice data
	RoleRemoved  UserPracticeRole = "REMOVED"  // For users who have been removed from the practice
)

// UserPractice represents the membership of a User in a Practice.
type UserPractice struct {
	UserID     string           `json:"userID"`     // FK -> users.user_id
	UserName   string           `json:"userName"`   // Name of the user
	PracticeID string           `json:"practiceID"` // FK -> practices.practice_id
	Role       UserPracticeRole `json:"role"`
	JoinedAt   time.Time        `json:"joinedAt"`
}
