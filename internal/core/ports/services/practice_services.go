package services

import (
	"context"

	"github.com/estudiolink/estudio_backend/internal/core/domain"
)

// PracticeReaderSvc defines read operations for practice data
type PracticeReaderSvc interface {
	// FindPracticeByID retrieves a specific practice by its ID.
	FindPracticeByID(ctx context.Context, practiceID string) (*domain.Practice, error)

	// ListUserPractices retrieves practices a user belongs to.
	// If includeDisabled is true, it includes inactive practices.
	ListUserPractices(ctx context.Context, userID string, includeDisabled bool) ([]domain.Practice, error)

	// ListPracticeUsers retrieves all users and their roles for a specific practice.
	// Only members of the practice can access this data.
	ListPracticeUsers(ctx context.Context, practiceID string, requestingUserID string) ([]domain.UserPractice, error)
}

// PracticeWriterSvc defines write operations for practice data
type PracticeWriterSvc interface {
	// CreatePractice persists a new practice with the creator as admin.
	CreatePractice(ctx context.Context, name, description, creatorUserID string) (*domain.Practice, error)

	// DeactivatePractice marks a practice as inactive.
	DeactivatePractice(ctx context.Context, practiceID string, requestingUserID string) error

	// ActivatePractice marks a practice as active.
	ActivatePractice(ctx context.Context, practiceID string, requestingUserID string) error
}

// PracticeMembershipSvc defines operations for managing practice membership
type PracticeMembershipSvc interface {
	// AddUserToPractice adds a user to a practice with a specific role.
	AddUserToPractice(ctx context.Context, addingUserID, targetUserID, practiceID string, role domain.UserPracticeRole) error

	// RemoveUserFromPractice removes a user from a practice.
	// Only practice admins can remove users.
	RemoveUserFromPractice(ctx context.Context, requestingUserID, targetUserID, practiceID string) error

	// UpdateUserPracticeRole updates a user's role in a practice.
	// Only practice admins can update user roles.
	UpdateUserPracticeRole(ctx context.Context, requestingUserID, targetUserID, practiceID string, newRole domain.UserPracticeRole) error
}

// PracticeAuthorizerSvc defines operations for practice authorization
type PracticeAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has the required role (or higher) for a practice.
	AuthorizeUserAction(ctx context.Context, userID, practiceID string, requiredRole domain.UserPracticeRole) error
}

// PracticeSvcFacade combines all practice-related service interfaces
// This is a facade for clients that need access to all operations
type PracticeSvcFacade interface {
	PracticeReaderSvc
	PracticeWriterSvc
	PracticeMembershipSvc
	PracticeAuthorizerSvc
}
