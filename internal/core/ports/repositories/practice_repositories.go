package repositories

import (
	"context"
	"time"

	"github.com/estudiolink/estudio_backend/internal/core/domain"
)

// PracticeReader defines read operations for practice data
type PracticeReader interface {
	// FindPracticeByID retrieves a specific practice by its ID.
	FindPracticeByID(ctx context.Context, practiceID string) (*domain.Practice, error)

	// ListPracticesByUser retrieves practices a user belongs to.
	ListPracticesByUser(ctx context.Context, userID string, includeDisabled bool) ([]domain.Practice, error)

	// FindUserPracticeRole retrieves a user's membership in a practice, or
	// apperrors.ErrNotFound when the user is not a member.
	FindUserPracticeRole(ctx context.Context, userID string, practiceID string) (*domain.UserPractice, error)

	// ListPracticeUsers retrieves all memberships of a practice.
	ListPracticeUsers(ctx context.Context, practiceID string) ([]domain.UserPractice, error)
}

// PracticeWriter defines write operations for practice data
type PracticeWriter interface {
	// SavePractice persists a new practice.
	SavePractice(ctx context.Context, practice domain.Practice) error

	// SetPracticeActive flips the active flag on a practice.
	SetPracticeActive(ctx context.Context, practiceID string, active bool, updatedBy string, now time.Time) error
}

// PracticeMembershipManager defines operations on practice memberships
type PracticeMembershipManager interface {
	// AddUserToPractice creates a membership row.
	AddUserToPractice(ctx context.Context, membership domain.UserPractice) error

	// UpdateUserPracticeRole changes an existing membership's role.
	UpdateUserPracticeRole(ctx context.Context, userID string, practiceID string, role domain.UserPracticeRole) error
}

// PracticeRepositoryFacade combines all practice-related repository interfaces
type PracticeRepositoryFacade interface {
	PracticeReader
	PracticeWriter
	PracticeMembershipManager
}
