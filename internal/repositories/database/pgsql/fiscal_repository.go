package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/estudiolink/estudio_backend/internal/apperrors"
	"github.com/estudiolink/estudio_backend/internal/core/domain"
	portsrepo "github.com/estudiolink/estudio_backend/internal/core/ports/repositories"
	"github.com/estudiolink/estudio_backend/internal/models"
	"github.com/estudiolink/estudio_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// profileUpdateColumns is the whitelist of columns UpdateProfileFields may touch.
var profileUpdateColumns = map[string]struct{}{
	"display_name":        {},
	"cuit":                {},
	"regime":              {},
	"iibb_number":         {},
	"payment_method":      {},
	"assigned_advisor_id": {},
}

type PgxFiscalRepository struct {
	BaseRepository
}

func newPgxFiscalRepository(db *pgxpool.Pool) portsrepo.FiscalRepositoryFacade {
	return &PgxFiscalRepository{BaseRepository{Pool: db}}
}

// Ensure PgxFiscalRepository implements portsrepo.FiscalRepositoryFacade
var _ portsrepo.FiscalRepositoryFacade = (*PgxFiscalRepository)(nil)

func (r *PgxFiscalRepository) SaveProfile(ctx context.Context, profile domain.FiscalProfile) error {
	m := mapping.ToModelFiscalProfile(profile)
	query := `
        INSERT INTO fiscal_profiles (profile_id, practice_id, client_user_id, display_name, cuit,
            regime, iibb_number, payment_method, assigned_advisor_id, version,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.ProfileID,
		m.PracticeID,
		m.ClientUserID,
		m.DisplayName,
		m.CUIT,
		m.Regime,
		m.IIBBNumber,
		m.PaymentMethod,
		m.AssignedAdvisorID,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("fiscal profile for client %s already exists: %w", profile.ClientUserID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save fiscal profile: %w", err)
	}
	return nil
}

func (r *PgxFiscalRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.FiscalProfile, error) {
	query := `
        SELECT profile_id, practice_id, client_user_id, display_name, cuit,
            regime, iibb_number, payment_method, assigned_advisor_id, version,
            created_at, created_by, last_updated_at, last_updated_by, deleted_at
        FROM fiscal_profiles
        WHERE profile_id = $1 AND deleted_at IS NULL;
    `
	m, err := scanFiscalProfile(r.Pool.QueryRow(ctx, query, profileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal profile %s: %w", profileID, err)
	}
	profile := mapping.ToDomainFiscalProfile(*m)
	return &profile, nil
}

func scanFiscalProfile(row pgx.Row) (*models.FiscalProfile, error) {
	var m models.FiscalProfile
	err := row.Scan(
		&m.ProfileID,
		&m.PracticeID,
		&m.ClientUserID,
		&m.DisplayName,
		&m.CUIT,
		&m.Regime,
		&m.IIBBNumber,
		&m.PaymentMethod,
		&m.AssignedAdvisorID,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxFiscalRepository) ListProfilesByPractice(ctx context.Context, practiceID string, limit int, offset int) ([]domain.FiscalProfile, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT profile_id, practice_id, client_user_id, display_name, cuit,
            regime, iibb_number, payment_method, assigned_advisor_id, version,
            created_at, created_by, last_updated_at, last_updated_by, deleted_at
        FROM fiscal_profiles
        WHERE practice_id = $1 AND deleted_at IS NULL
        ORDER BY display_name
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.Pool.Query(ctx, query, practiceID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal profiles: %w", err)
	}
	defer rows.Close()

	profiles := []domain.FiscalProfile{}
	for rows.Next() {
		m, err := scanFiscalProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal profile row: %w", err)
		}
		profiles = append(profiles, mapping.ToDomainFiscalProfile(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating fiscal profile rows: %w", rows.Err())
	}

	return profiles, nil
}

// UpdateProfileFields applies a set of scalar column writes in one UPDATE. Only
// whitelisted columns are accepted; the version counter is bumped so concurrent
// allocation edits observe the change.
func (r *PgxFiscalRepository) UpdateProfileFields(ctx context.Context, profileID string, fields map[string]any, actorID string, now time.Time) error {
	if len(fields) == 0 {
		return nil
	}

	setClauses := ""
	args := []any{}
	i := 1
	for column, value := range fields {
		if _, ok := profileUpdateColumns[column]; !ok {
			return fmt.Errorf("%w: column %q is not updatable", apperrors.ErrValidation, column)
		}
		setClauses += fmt.Sprintf("%s = $%d, ", column, i)
		args = append(args, value)
		i++
	}

	query := fmt.Sprintf(`
        UPDATE fiscal_profiles
        SET %sversion = version + 1, last_updated_at = $%d, last_updated_by = $%d
        WHERE profile_id = $%d AND deleted_at IS NULL;
    `, setClauses, i, i+1, i+2)
	args = append(args, now, actorID, profileID)

	cmdTag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update fiscal profile fields: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFiscalRepository) FindJurisdictionsByProfile(ctx context.Context, profileID string) ([]domain.Jurisdiction, error) {
	query := `
        SELECT jurisdiction_id, profile_id, region, inscription_number,
            coefficient, tax_rate, is_home, notes, vigency_year
        FROM jurisdictions
        WHERE profile_id = $1
        ORDER BY region;
    `
	rows, err := r.Pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query jurisdictions: %w", err)
	}
	defer rows.Close()

	modelEntries := []models.Jurisdiction{}
	for rows.Next() {
		var m models.Jurisdiction
		err := rows.Scan(
			&m.JurisdictionID,
			&m.ProfileID,
			&m.Region,
			&m.InscriptionNumber,
			&m.Coefficient,
			&m.TaxRate,
			&m.IsHome,
			&m.Notes,
			&m.VigencyYear,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan jurisdiction row: %w", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating jurisdiction rows: %w", rows.Err())
	}

	return mapping.ToDomainJurisdictionSlice(modelEntries), nil
}

// ReplaceJurisdictions swaps a profile's jurisdiction set wholesale: a DELETE
// followed by batch INSERTs inside one transaction, with the profile's version
// counter guarding against concurrent editors. A stale expectedVersion leaves
// the previous rows untouched and returns apperrors.ErrConflict.
func (r *PgxFiscalRepository) ReplaceJurisdictions(ctx context.Context, profileID string, entries []domain.Jurisdiction, expectedVersion int64, actorID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := bumpProfileVersion(ctx, tx, profileID, expectedVersion, actorID, now); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM jurisdictions WHERE profile_id = $1;`, profileID); err != nil {
		return fmt.Errorf("failed to delete jurisdictions for profile %s: %w", profileID, err)
	}

	batch := &pgx.Batch{}
	insertQuery := `
        INSERT INTO jurisdictions (jurisdiction_id, profile_id, region, inscription_number,
            coefficient, tax_rate, is_home, notes, vigency_year)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	for _, entry := range entries {
		m := mapping.ToModelJurisdiction(entry)
		batch.Queue(insertQuery,
			m.JurisdictionID,
			m.ProfileID,
			m.Region,
			m.InscriptionNumber,
			m.Coefficient,
			m.TaxRate,
			m.IsHome,
			m.Notes,
			m.VigencyYear,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert jurisdictions for profile %s: %w", profileID, err)
	}

	return r.Commit(ctx, tx)
}

// SwitchRegime changes the profile's regime and optionally drops its
// jurisdiction rows in the same transaction, version-guarded like
// ReplaceJurisdictions.
func (r *PgxFiscalRepository) SwitchRegime(ctx context.Context, profileID string, newRegime domain.IIBBRegime, clearEntries bool, expectedVersion int64, actorID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
        UPDATE fiscal_profiles
        SET regime = $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
        WHERE profile_id = $4 AND version = $5 AND deleted_at IS NULL;
    `
	cmdTag, err := tx.Exec(ctx, query, string(newRegime), now, actorID, profileID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to switch regime for profile %s: %w", profileID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s changed concurrently: %w", profileID, apperrors.ErrConflict)
	}

	if clearEntries {
		if _, err := tx.Exec(ctx, `DELETE FROM jurisdictions WHERE profile_id = $1;`, profileID); err != nil {
			return fmt.Errorf("failed to clear jurisdictions for profile %s: %w", profileID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// bumpProfileVersion increments the version counter iff it still matches
// expectedVersion. Zero rows affected means a concurrent writer got there first.
func bumpProfileVersion(ctx context.Context, tx pgx.Tx, profileID string, expectedVersion int64, actorID string, now time.Time) error {
	query := `
        UPDATE fiscal_profiles
        SET version = version + 1, last_updated_at = $1, last_updated_by = $2
        WHERE profile_id = $3 AND version = $4 AND deleted_at IS NULL;
    `
	cmdTag, err := tx.Exec(ctx, query, now, actorID, profileID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to bump version for profile %s: %w", profileID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s changed concurrently: %w", profileID, apperrors.ErrConflict)
	}
	return nil
}
