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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const suggestionColumns = `suggestion_id, practice_id, profile_id, submitter_id,
		target_table, target_field, field_label, current_value, suggested_value,
		comment, status, reviewer_id, applied_value, review_note, created_at, reviewed_at`

type PgxSuggestionRepository struct {
	BaseRepository
}

func newPgxSuggestionRepository(db *pgxpool.Pool) portsrepo.SuggestionRepository {
	return &PgxSuggestionRepository{BaseRepository{Pool: db}}
}

// Ensure PgxSuggestionRepository implements portsrepo.SuggestionRepository
var _ portsrepo.SuggestionRepository = (*PgxSuggestionRepository)(nil)

func scanSuggestion(row pgx.Row) (*models.Suggestion, error) {
	var m models.Suggestion
	err := row.Scan(
		&m.SuggestionID,
		&m.PracticeID,
		&m.ProfileID,
		&m.SubmitterID,
		&m.TargetTable,
		&m.TargetField,
		&m.FieldLabel,
		&m.CurrentValue,
		&m.SuggestedValue,
		&m.Comment,
		&m.Status,
		&m.ReviewerID,
		&m.AppliedValue,
		&m.ReviewNote,
		&m.CreatedAt,
		&m.ReviewedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxSuggestionRepository) SaveSuggestion(ctx context.Context, suggestion domain.Suggestion) error {
	m := mapping.ToModelSuggestion(suggestion)
	query := `
        INSERT INTO suggestions (suggestion_id, practice_id, profile_id, submitter_id,
            target_table, target_field, field_label, current_value, suggested_value,
            comment, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.SuggestionID,
		m.PracticeID,
		m.ProfileID,
		m.SubmitterID,
		m.TargetTable,
		m.TargetField,
		m.FieldLabel,
		m.CurrentValue,
		m.SuggestedValue,
		m.Comment,
		m.Status,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save suggestion: %w", err)
	}
	return nil
}

func (r *PgxSuggestionRepository) FindSuggestionByID(ctx context.Context, suggestionID string) (*domain.Suggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM suggestions WHERE suggestion_id = $1;`
	m, err := scanSuggestion(r.Pool.QueryRow(ctx, query, suggestionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find suggestion %s: %w", suggestionID, err)
	}
	suggestion := mapping.ToDomainSuggestion(*m)
	return &suggestion, nil
}

func (r *PgxSuggestionRepository) ListSuggestionsByProfile(ctx context.Context, profileID string, status *domain.SuggestionStatus) ([]domain.Suggestion, error) {
	query := `
        SELECT ` + suggestionColumns + `
        FROM suggestions
        WHERE profile_id = $1 AND ($2::text IS NULL OR status = $2)
        ORDER BY created_at DESC;
    `
	var statusFilter *string
	if status != nil {
		s := string(*status)
		statusFilter = &s
	}

	rows, err := r.Pool.Query(ctx, query, profileID, statusFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	return collectSuggestions(rows)
}

func (r *PgxSuggestionRepository) ListPendingByPractice(ctx context.Context, practiceID string) ([]domain.Suggestion, error) {
	query := `
        SELECT ` + suggestionColumns + `
        FROM suggestions
        WHERE practice_id = $1 AND status = $2
        ORDER BY created_at;
    `
	rows, err := r.Pool.Query(ctx, query, practiceID, string(domain.SuggestionPending))
	if err != nil {
		return nil, fmt.Errorf("failed to query pending suggestions: %w", err)
	}
	defer rows.Close()

	return collectSuggestions(rows)
}

func collectSuggestions(rows pgx.Rows) ([]domain.Suggestion, error) {
	modelSuggestions := []models.Suggestion{}
	for rows.Next() {
		m, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan suggestion row: %w", err)
		}
		modelSuggestions = append(modelSuggestions, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating suggestion rows: %w", rows.Err())
	}
	return mapping.ToDomainSuggestionSlice(modelSuggestions), nil
}

// ApplyReview performs the single terminal transition of a suggestion. The
// UPDATE is guarded by status = 'PENDING' so a second reviewer's decision
// affects zero rows and surfaces as apperrors.ErrConflict, leaving the first
// outcome and its applied field value untouched. For accepting outcomes the
// target profile field is written inside the same transaction.
func (r *PgxSuggestionRepository) ApplyReview(ctx context.Context, review portsrepo.SuggestionReview) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	transitionQuery := `
        UPDATE suggestions
        SET status = $1, reviewer_id = $2, applied_value = NULLIF($3, ''),
            review_note = NULLIF($4, ''), reviewed_at = $5
        WHERE suggestion_id = $6 AND status = $7;
    `
	cmdTag, err := tx.Exec(ctx, transitionQuery,
		string(review.Outcome),
		review.ReviewerID,
		review.AppliedValue,
		review.Note,
		review.ReviewedAt,
		review.SuggestionID,
		string(domain.SuggestionPending),
	)
	if err != nil {
		return fmt.Errorf("failed to apply suggestion review: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("suggestion %s already reviewed: %w", review.SuggestionID, apperrors.ErrConflict)
	}

	if review.ApplyToField {
		if _, ok := profileUpdateColumns[review.TargetField]; !ok {
			return fmt.Errorf("%w: column %q is not updatable", apperrors.ErrValidation, review.TargetField)
		}
		fieldQuery := fmt.Sprintf(`
            UPDATE fiscal_profiles
            SET %s = $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
            WHERE profile_id = $4 AND deleted_at IS NULL;
        `, review.TargetField)
		cmdTag, err := tx.Exec(ctx, fieldQuery,
			review.AppliedValue,
			review.ReviewedAt,
			review.ReviewerID,
			review.ProfileID,
		)
		if err != nil {
			return fmt.Errorf("failed to apply suggestion value to profile %s: %w", review.ProfileID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
	}

	return r.Commit(ctx, tx)
}
