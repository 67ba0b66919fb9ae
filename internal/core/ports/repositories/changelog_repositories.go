package repositories

import (
	"context"
	"time"

	"github.com/estudiolink/estudio_backend/internal/core/domain"
)

// ChangeHistoryQuery narrows a ledger read. CursorTime and CursorID carry the
// keyset position of the previous page; when CursorTime is nil the read starts
// at the newest entry.
type ChangeHistoryQuery struct {
	Limit      int
	Category   *domain.ChangeCategory
	CursorTime *time.Time
	CursorID   string
}

// ChangeLogRepository defines the append-and-read surface of the change ledger.
// There is deliberately no update or delete operation: entries are immutable.
type ChangeLogRepository interface {
	// SaveChangeEntry appends one immutable ledger entry.
	SaveChangeEntry(ctx context.Context, entry domain.ChangeEntry) error

	// FindChangeEntries retrieves a profile's entries newest-first, filtered and
	// positioned by the query.
	FindChangeEntries(ctx context.Context, profileID string, query ChangeHistoryQuery) ([]domain.ChangeEntry, error)
}
