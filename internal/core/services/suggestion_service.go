package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/estudiolink/estudio_backend/internal/apperrors"
	"github.com/estudiolink/estudio_backend/internal/core/domain"
	portsrepo "github.com/estudiolink/estudio_backend/internal/core/ports/repositories"
	portssvc "github.com/estudiolink/estudio_backend/internal/core/ports/services"
	"github.com/estudiolink/estudio_backend/internal/dto"
	"github.com/google/uuid"
)

// suggestionTargetTable is the only table clients may propose changes against.
const suggestionTargetTable = "fiscal_profiles"

// suggestionService implements the SuggestionSvcFacade interface
type suggestionService struct {
	BaseService
	suggestionRepo portsrepo.SuggestionRepository
	fiscalRepo     portsrepo.FiscalProfileReader
	practiceRepo   portsrepo.PracticeReader
	changeLog      portssvc.ChangeLogSvcFacade
}

// NewSuggestionService creates a new suggestion service with the provided dependencies
func NewSuggestionService(
	suggestionRepo portsrepo.SuggestionRepository,
	fiscalRepo portsrepo.FiscalProfileReader,
	practiceRepo portsrepo.PracticeReader,
	changeLog portssvc.ChangeLogSvcFacade,
) portssvc.SuggestionSvcFacade {
	return &suggestionService{
		suggestionRepo: suggestionRepo,
		fiscalRepo:     fiscalRepo,
		practiceRepo:   practiceRepo,
		changeLog:      changeLog,
	}
}

// Ensure suggestionService implements the SuggestionSvcFacade interface
var _ portssvc.SuggestionSvcFacade = (*suggestionService)(nil)

// Submit creates a pending suggestion on behalf of a client-role user. Clients
// can only propose changes against their own fiscal record.
func (s *suggestionService) Submit(ctx context.Context, submitterID, practiceID string, req dto.CreateSuggestionRequest) (*domain.Suggestion, error) {
	membership, err := s.practiceRepo.FindUserPracticeRole(ctx, submitterID, practiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}
	if membership.Role != domain.RoleClient {
		return nil, apperrors.ErrForbidden
	}

	profile, err := s.fiscalRepo.FindProfileByID(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}
	if profile.PracticeID != practiceID {
		return nil, apperrors.ErrNotFound
	}
	if profile.ClientUserID != submitterID {
		return nil, apperrors.ErrForbidden
	}

	if req.TargetTable != suggestionTargetTable {
		return nil, fmt.Errorf("%w: unsupported target table %q", apperrors.ErrValidation, req.TargetTable)
	}

	suggestion := domain.Suggestion{
		SuggestionID:   uuid.NewString(),
		PracticeID:     practiceID,
		ProfileID:      req.ProfileID,
		SubmitterID:    submitterID,
		TargetTable:    req.TargetTable,
		TargetField:    req.TargetField,
		FieldLabel:     req.FieldLabel,
		CurrentValue:   req.CurrentValue,
		SuggestedValue: req.SuggestedValue,
		Comment:        req.Comment,
		Status:         domain.SuggestionPending,
		CreatedAt:      time.Now(),
	}

	if err := s.suggestionRepo.SaveSuggestion(ctx, suggestion); err != nil {
		s.LogError(ctx, err, "Failed to save suggestion",
			slog.String("profile_id", req.ProfileID))
		return nil, err
	}

	s.LogInfo(ctx, "Suggestion submitted",
		slog.String("suggestion_id", suggestion.SuggestionID),
		slog.String("profile_id", suggestion.ProfileID))
	return &suggestion, nil
}

// Review applies a reviewer's terminal decision to a pending suggestion. The
// status transition and, for accepting outcomes, the target field write happen
// in one repository transaction; a suggestion that already left PENDING yields
// apperrors.ErrConflict and changes nothing.
func (s *suggestionService) Review(ctx context.Context, reviewerID, practiceID, suggestionID string, req dto.ReviewSuggestionRequest) (*domain.Suggestion, error) {
	if err := s.AuthorizeUser(ctx, reviewerID, practiceID, domain.RoleAdvisor); err != nil {
		return nil, err
	}

	if !req.Outcome.IsReviewOutcome() {
		return nil, fmt.Errorf("%w: invalid review outcome %q", apperrors.ErrValidation, req.Outcome)
	}

	suggestion, err := s.suggestionRepo.FindSuggestionByID(ctx, suggestionID)
	if err != nil {
		return nil, err
	}
	if suggestion.PracticeID != practiceID {
		return nil, apperrors.ErrNotFound
	}

	accepting := req.Outcome != domain.SuggestionRejected
	appliedValue := ""
	if accepting {
		appliedValue = req.AppliedValue
		if appliedValue == "" {
			appliedValue = suggestion.SuggestedValue
		}
	}

	review := portsrepo.SuggestionReview{
		SuggestionID: suggestionID,
		Outcome:      req.Outcome,
		ReviewerID:   reviewerID,
		AppliedValue: appliedValue,
		Note:         req.Note,
		ReviewedAt:   time.Now(),
		ApplyToField: accepting,
		ProfileID:    suggestion.ProfileID,
		TargetField:  suggestion.TargetField,
	}

	if err := s.suggestionRepo.ApplyReview(ctx, review); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to apply suggestion review",
				slog.String("suggestion_id", suggestionID))
		}
		return nil, err
	}

	if accepting {
		s.recordAppliedSuggestion(ctx, suggestion, appliedValue, reviewerID)
	}

	s.LogInfo(ctx, "Suggestion reviewed",
		slog.String("suggestion_id", suggestionID),
		slog.String("outcome", string(req.Outcome)),
		slog.String("reviewer_id", reviewerID))

	return s.suggestionRepo.FindSuggestionByID(ctx, suggestionID)
}

// ListForProfile retrieves a profile's suggestions newest-first. Clients only
// see their own record's suggestions.
func (s *suggestionService) ListForProfile(ctx context.Context, requestingUserID, practiceID, profileID string) ([]domain.Suggestion, error) {
	membership, err := s.practiceRepo.FindUserPracticeRole(ctx, requestingUserID, practiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}

	profile, err := s.fiscalRepo.FindProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.PracticeID != practiceID {
		return nil, apperrors.ErrNotFound
	}
	if membership.Role == domain.RoleClient && profile.ClientUserID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}

	suggestions, err := s.suggestionRepo.ListSuggestionsByProfile(ctx, profileID, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to list suggestions",
			slog.String("profile_id", profileID))
		return nil, err
	}
	if suggestions == nil {
		return []domain.Suggestion{}, nil
	}
	return suggestions, nil
}

// ListPending retrieves all pending suggestions across a practice for review.
func (s *suggestionService) ListPending(ctx context.Context, requestingUserID, practiceID string) ([]domain.Suggestion, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, practiceID, domain.RoleAdvisor); err != nil {
		return nil, err
	}

	suggestions, err := s.suggestionRepo.ListPendingByPractice(ctx, practiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending suggestions",
			slog.String("practice_id", practiceID))
		return nil, err
	}
	if suggestions == nil {
		return []domain.Suggestion{}, nil
	}
	return suggestions, nil
}

// recordAppliedSuggestion writes the ledger entry for an accepted suggestion,
// attributed to the reviewer who applied it. Failures are logged and swallowed.
func (s *suggestionService) recordAppliedSuggestion(ctx context.Context, suggestion *domain.Suggestion, appliedValue, reviewerID string) {
	profile, err := s.fiscalRepo.FindProfileByID(ctx, suggestion.ProfileID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load profile for suggestion audit",
			slog.String("suggestion_id", suggestion.SuggestionID))
		return
	}

	change := portssvc.FieldChange{
		Category:      categoryForProfileField(suggestion.TargetField),
		FieldLabel:    suggestion.FieldLabel,
		PreviousValue: suggestion.CurrentValue,
		NewValue:      appliedValue,
		Metadata: map[string]string{
			"suggestion_id": suggestion.SuggestionID,
			"submitter_id":  suggestion.SubmitterID,
		},
	}
	if _, err := s.changeLog.RecordChange(ctx, profile.ClientUserID, suggestion.ProfileID, change, reviewerID); err != nil {
		s.LogError(ctx, err, "Failed to record applied suggestion in history",
			slog.String("suggestion_id", suggestion.SuggestionID))
	}
}

// categoryForProfileField maps a fiscal-profile column to its ledger category.
func categoryForProfileField(field string) domain.ChangeCategory {
	switch field {
	case "display_name":
		return domain.CategoryName
	case "cuit":
		return domain.CategoryTaxID
	case "iibb_number":
		return domain.CategoryTaxAuthority
	case "payment_method":
		return domain.CategoryPayment
	case "assigned_advisor_id":
		return domain.CategoryAssignedAdvisor
	default:
		return domain.CategoryOther
	}
}
