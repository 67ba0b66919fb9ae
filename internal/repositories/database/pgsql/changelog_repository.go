package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/estudiolink/estudio_backend/internal/apperrors"
	"github.com/estudiolink/estudio_backend/internal/core/domain"
	portsrepo "github.com/estudiolink/estudio_backend/internal/core/ports/repositories"
	"github.com/estudiolink/estudio_backend/internal/models"
	"github.com/estudiolink/estudio_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxChangeLogRepository persists the append-only change ledger. It exposes
// insert and select only; the table carries no update or delete path.
type PgxChangeLogRepository struct {
	db *pgxpool.Pool
}

func newPgxChangeLogRepository(db *pgxpool.Pool) portsrepo.ChangeLogRepository {
	return &PgxChangeLogRepository{db: db}
}

// Ensure PgxChangeLogRepository implements portsrepo.ChangeLogRepository
var _ portsrepo.ChangeLogRepository = (*PgxChangeLogRepository)(nil)

func (r *PgxChangeLogRepository) SaveChangeEntry(ctx context.Context, entry domain.ChangeEntry) error {
	m, err := mapping.ToModelChangeEntry(entry)
	if err != nil {
		return fmt.Errorf("failed to serialize change entry metadata: %w", err)
	}

	query := `
        INSERT INTO change_entries (entry_id, owner_user_id, profile_id, category,
            field_label, previous_value, new_value, metadata, actor_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err = r.db.Exec(ctx, query,
		m.EntryID,
		m.OwnerUserID,
		m.ProfileID,
		m.Category,
		m.FieldLabel,
		m.PreviousValue,
		m.NewValue,
		m.Metadata,
		m.ActorID,
		m.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("change entry %s already exists: %w", entry.EntryID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save change entry: %w", err)
	}
	return nil
}

func (r *PgxChangeLogRepository) FindChangeEntries(ctx context.Context, profileID string, q portsrepo.ChangeHistoryQuery) ([]domain.ChangeEntry, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}

	// Keyset pagination on (created_at, entry_id): rows strictly older than the
	// cursor position, so appends between pages never duplicate entries
	query := `
        SELECT entry_id, owner_user_id, profile_id, category,
            field_label, previous_value, new_value, metadata, actor_id, created_at
        FROM change_entries
        WHERE profile_id = $1
          AND ($2::text IS NULL OR category = $2)
          AND ($4::timestamptz IS NULL OR (created_at, entry_id) < ($4::timestamptz, $5::text))
        ORDER BY created_at DESC, entry_id DESC
        LIMIT $3;
    `
	var categoryFilter *string
	if q.Category != nil {
		c := string(*q.Category)
		categoryFilter = &c
	}

	rows, err := r.db.Query(ctx, query, profileID, categoryFilter, limit, q.CursorTime, q.CursorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query change entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.ChangeEntry{}
	for rows.Next() {
		var m models.ChangeEntry
		err := rows.Scan(
			&m.EntryID,
			&m.OwnerUserID,
			&m.ProfileID,
			&m.Category,
			&m.FieldLabel,
			&m.PreviousValue,
			&m.NewValue,
			&m.Metadata,
			&m.ActorID,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change entry row: %w", err)
		}
		entry, err := mapping.ToDomainChangeEntry(m)
		if err != nil {
			return nil, fmt.Errorf("failed to decode change entry metadata: %w", err)
		}
		entries = append(entries, entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating change entry rows: %w", rows.Err())
	}

	return entries, nil
}
