package services

import (
	"context"

	"github.com/estudiolink/estudio_backend/internal/core/domain"
	"github.com/estudiolink/estudio_backend/internal/dto"
)

// SuggestionSvcFacade defines the client suggestion workflow: clients submit
// proposed changes to their own record, reviewers apply exactly one terminal
// decision per suggestion.
type SuggestionSvcFacade interface {
	// Submit creates a pending suggestion on behalf of a client-role user.
	Submit(ctx context.Context, submitterID, practiceID string, req dto.CreateSuggestionRequest) (*domain.Suggestion, error)

	// Review applies a reviewer's terminal decision to a pending suggestion.
	// A suggestion already reviewed yields apperrors.ErrConflict.
	Review(ctx context.Context, reviewerID, practiceID, suggestionID string, req dto.ReviewSuggestionRequest) (*domain.Suggestion, error)

	// ListForProfile retrieves a profile's suggestions newest-first. Client-role
	// callers only see their own submissions.
	ListForProfile(ctx context.Context, requestingUserID, practiceID, profileID string) ([]domain.Suggestion, error)

	// ListPending retrieves all pending suggestions across a practice for review.
	ListPending(ctx context.Context, requestingUserID, practiceID string) ([]domain.Suggestion, error)
}
