package repositories

import (
	"context"
	"time"

	"github.com/estudiolink/estudio_backend/internal/core/domain"
)

// SuggestionReview carries a reviewer's decision into the repository so the state
// transition and the conditional field write happen in one transaction.
type SuggestionReview struct {
	SuggestionID string
	Outcome      domain.SuggestionStatus
	ReviewerID   string
	AppliedValue string
	Note         string
	ReviewedAt   time.Time

	// ApplyToField is set for accepting outcomes: the target profile field is
	// written with AppliedValue inside the same transaction.
	ApplyToField bool
	ProfileID    string
	TargetField  string
}

// SuggestionRepository defines persistence operations for client suggestions.
type SuggestionRepository interface {
	// SaveSuggestion persists a new pending suggestion.
	SaveSuggestion(ctx context.Context, suggestion domain.Suggestion) error

	// FindSuggestionByID retrieves a suggestion by its ID.
	FindSuggestionByID(ctx context.Context, suggestionID string) (*domain.Suggestion, error)

	// ListSuggestionsByProfile retrieves a profile's suggestions newest-first,
	// optionally filtered by status.
	ListSuggestionsByProfile(ctx context.Context, profileID string, status *domain.SuggestionStatus) ([]domain.Suggestion, error)

	// ListPendingByPractice retrieves all pending suggestions across a practice.
	ListPendingByPractice(ctx context.Context, practiceID string) ([]domain.Suggestion, error)

	// ApplyReview performs the single terminal transition of a suggestion. The
	// update is guarded by a still-pending check; apperrors.ErrConflict is
	// returned when the suggestion was already reviewed.
	ApplyReview(ctx context.Context, review SuggestionReview) error
}
