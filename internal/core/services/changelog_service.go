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
	"github.com/estudiolink/estudio_backend/internal/utils"
	"github.com/estudiolink/estudio_backend/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200

	// removedActorLabel is shown for ledger entries whose actor no longer exists.
	removedActorLabel = "removed user"
)

// changeLogService implements the ChangeLogSvcFacade interface
type changeLogService struct {
	BaseService
	changeLogRepo portsrepo.ChangeLogRepository
	fiscalRepo    portsrepo.FiscalProfileReader
	practiceRepo  portsrepo.PracticeReader
	userRepo      portsrepo.UserReader
}

// NewChangeLogService creates a new change log service with the provided dependencies
func NewChangeLogService(
	changeLogRepo portsrepo.ChangeLogRepository,
	fiscalRepo portsrepo.FiscalProfileReader,
	practiceRepo portsrepo.PracticeReader,
	userRepo portsrepo.UserReader,
) portssvc.ChangeLogSvcFacade {
	return &changeLogService{
		changeLogRepo: changeLogRepo,
		fiscalRepo:    fiscalRepo,
		practiceRepo:  practiceRepo,
		userRepo:      userRepo,
	}
}

// Ensure changeLogService implements the ChangeLogSvcFacade interface
var _ portssvc.ChangeLogSvcFacade = (*changeLogService)(nil)

// RecordChange appends one ledger entry for a field transition. Writing is
// suppressed when the stringified previous and new values are equal, so
// reverted or idempotent saves leave no trace in the history.
func (s *changeLogService) RecordChange(ctx context.Context, ownerUserID, profileID string, change portssvc.FieldChange, actorID string) (*domain.ChangeEntry, error) {
	category := change.Category
	if category == "" {
		category = domain.CategoryOther
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown change category %q", apperrors.ErrValidation, category)
	}

	previous := utils.StringifyValue(change.PreviousValue)
	next := utils.StringifyValue(change.NewValue)
	if previous == next {
		return nil, nil
	}

	entry := domain.ChangeEntry{
		EntryID:       uuid.NewString(),
		OwnerUserID:   ownerUserID,
		ProfileID:     profileID,
		Category:      category,
		FieldLabel:    change.FieldLabel,
		PreviousValue: previous,
		NewValue:      next,
		Metadata:      change.Metadata,
		ActorID:       actorID,
		CreatedAt:     time.Now(),
	}

	if err := s.changeLogRepo.SaveChangeEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save change entry",
			slog.String("profile_id", profileID),
			slog.String("category", string(category)))
		return nil, err
	}

	return &entry, nil
}

// GetHistory retrieves one page of a profile's change entries newest-first with
// actor display names resolved in a second pass. Pages are keyed on
// (created_at, entry_id) so concurrent appends never shift or duplicate rows.
func (s *changeLogService) GetHistory(ctx context.Context, requestingUserID, practiceID, profileID string, limit int, category *domain.ChangeCategory, nextToken string) ([]domain.ChangeEntry, *string, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if category != nil && !category.IsValid() {
		return nil, nil, fmt.Errorf("%w: unknown change category %q", apperrors.ErrValidation, *category)
	}

	query := portsrepo.ChangeHistoryQuery{Limit: limit + 1, Category: category}
	if nextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeCursor(nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query.CursorTime = &cursorTime
		query.CursorID = cursorID
	}

	profile, err := s.fiscalRepo.FindProfileByID(ctx, profileID)
	if err != nil {
		return nil, nil, err
	}
	if profile.PracticeID != practiceID {
		return nil, nil, apperrors.ErrNotFound
	}

	membership, err := s.practiceRepo.FindUserPracticeRole(ctx, requestingUserID, practiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrForbidden
		}
		return nil, nil, err
	}
	// Clients only see the history of their own record
	if membership.Role == domain.RoleClient && profile.ClientUserID != requestingUserID {
		return nil, nil, apperrors.ErrForbidden
	}

	entries, err := s.changeLogRepo.FindChangeEntries(ctx, profileID, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to load change history",
			slog.String("profile_id", profileID))
		return nil, nil, err
	}
	if len(entries) == 0 {
		return []domain.ChangeEntry{}, nil, nil
	}

	// One extra row was fetched to detect whether another page follows
	var pageToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.EntryID)
		pageToken = &token
	}

	s.resolveActorNames(ctx, entries)
	return entries, pageToken, nil
}

// resolveActorNames fills in ActorName for each entry. Lookup failures degrade
// to the removed-user label rather than failing the read.
func (s *changeLogService) resolveActorNames(ctx context.Context, entries []domain.ChangeEntry) {
	idSet := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.ActorID != "" {
			idSet[e.ActorID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := s.userRepo.FindUsersByIDs(ctx, ids)
	if err != nil {
		s.LogDebug(ctx, "Failed to resolve actor names for change history",
			slog.String("error", err.Error()))
		users = nil
	}

	for i := range entries {
		if user, ok := users[entries[i].ActorID]; ok {
			entries[i].ActorName = user.Name
		} else {
			entries[i].ActorName = removedActorLabel
		}
	}
}
