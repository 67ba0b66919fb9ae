package services

import (
	"context"

	"github.com/estudiolink/estudio_backend/internal/core/domain"
)

// FieldChange describes one field write that may produce a ledger entry.
type FieldChange struct {
	Category      domain.ChangeCategory
	FieldLabel    string
	PreviousValue any
	NewValue      any
	Metadata      map[string]string
}

// ChangeLogSvcFacade defines the append-and-read surface of the change ledger.
// Entries are immutable once written.
type ChangeLogSvcFacade interface {
	// RecordChange appends one ledger entry for a field transition. When the
	// stringified previous and new values are equal, nothing is written and
	// (nil, nil) is returned.
	RecordChange(ctx context.Context, ownerUserID, profileID string, change FieldChange, actorID string) (*domain.ChangeEntry, error)

	// GetHistory retrieves one page of a profile's change entries newest-first,
	// optionally filtered by category, with actor display names resolved.
	// nextToken positions the read after the previous page; the returned token is
	// nil on the last page.
	GetHistory(ctx context.Context, requestingUserID, practiceID, profileID string, limit int, category *domain.ChangeCategory, nextToken string) ([]domain.ChangeEntry, *string, error)
}
