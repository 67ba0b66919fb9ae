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

type PgxPracticeRepository struct {
	db *pgxpool.Pool
}

func newPgxPracticeRepository(db *pgxpool.Pool) portsrepo.PracticeRepositoryFacade {
	return &PgxPracticeRepository{db: db}
}

// Ensure PgxPracticeRepository implements portsrepo.PracticeRepositoryFacade
var _ portsrepo.PracticeRepositoryFacade = (*PgxPracticeRepository)(nil)

func (r *PgxPracticeRepository) SavePractice(ctx context.Context, practice domain.Practice) error {
	m := mapping.ToModelPractice(practice)
	query := `
        INSERT INTO practices (practice_id, name, description, is_active,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		m.PracticeID,
		m.Name,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("practice %s already exists: %w", practice.PracticeID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save practice: %w", err)
	}
	return nil
}

func (r *PgxPracticeRepository) FindPracticeByID(ctx context.Context, practiceID string) (*domain.Practice, error) {
	query := `
        SELECT practice_id, name, description, is_active,
            created_at, created_by, last_updated_at, last_updated_by
        FROM practices
        WHERE practice_id = $1;
    `
	var m models.Practice
	err := r.db.QueryRow(ctx, query, practiceID).Scan(
		&m.PracticeID,
		&m.Name,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find practice by ID %s: %w", practiceID, err)
	}

	practice := mapping.ToDomainPractice(m)
	return &practice, nil
}

func (r *PgxPracticeRepository) ListPracticesByUser(ctx context.Context, userID string, includeDisabled bool) ([]domain.Practice, error) {
	query := `
        SELECT p.practice_id, p.name, p.description, p.is_active,
            p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
        FROM practices p
        JOIN user_practices up ON up.practice_id = p.practice_id
        WHERE up.user_id = $1 AND up.role != $2
          AND (p.is_active OR $3)
        ORDER BY p.name;
    `
	rows, err := r.db.Query(ctx, query, userID, string(domain.RoleRemoved), includeDisabled)
	if err != nil {
		return nil, fmt.Errorf("failed to query practices for user %s: %w", userID, err)
	}
	defer rows.Close()

	modelPractices := []models.Practice{}
	for rows.Next() {
		var m models.Practice
		err := rows.Scan(
			&m.PracticeID,
			&m.Name,
			&m.Description,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan practice row: %w", err)
		}
		modelPractices = append(modelPractices, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating practice rows: %w", rows.Err())
	}

	return mapping.ToDomainPracticeSlice(modelPractices), nil
}

func (r *PgxPracticeRepository) SetPracticeActive(ctx context.Context, practiceID string, active bool, updatedBy string, now time.Time) error {
	query := `
        UPDATE practices
        SET is_active = $1, last_updated_at = $2, last_updated_by = $3
        WHERE practice_id = $4;
    `
	cmdTag, err := r.db.Exec(ctx, query, active, now, updatedBy, practiceID)
	if err != nil {
		return fmt.Errorf("failed to set practice active flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPracticeRepository) FindUserPracticeRole(ctx context.Context, userID string, practiceID string) (*domain.UserPractice, error) {
	query := `
        SELECT up.user_id, u.name, up.practice_id, up.role, up.joined_at
        FROM user_practices up
        JOIN users u ON u.user_id = up.user_id
        WHERE up.user_id = $1 AND up.practice_id = $2 AND up.role != $3;
    `
	var membership domain.UserPractice
	var role string
	err := r.db.QueryRow(ctx, query, userID, practiceID, string(domain.RoleRemoved)).Scan(
		&membership.UserID,
		&membership.UserName,
		&membership.PracticeID,
		&role,
		&membership.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user practice role: %w", err)
	}
	membership.Role = domain.UserPracticeRole(role)
	return &membership, nil
}

func (r *PgxPracticeRepository) ListPracticeUsers(ctx context.Context, practiceID string) ([]domain.UserPractice, error) {
	query := `
        SELECT up.user_id, u.name, up.practice_id, up.role, up.joined_at
        FROM user_practices up
        JOIN users u ON u.user_id = up.user_id
        WHERE up.practice_id = $1 AND up.role != $2
        ORDER BY up.joined_at;
    `
	rows, err := r.db.Query(ctx, query, practiceID, string(domain.RoleRemoved))
	if err != nil {
		return nil, fmt.Errorf("failed to query practice users: %w", err)
	}
	defer rows.Close()

	memberships := []domain.UserPractice{}
	for rows.Next() {
		var membership domain.UserPractice
		var role string
		err := rows.Scan(
			&membership.UserID,
			&membership.UserName,
			&membership.PracticeID,
			&role,
			&membership.JoinedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan practice user row: %w", err)
		}
		membership.Role = domain.UserPracticeRole(role)
		memberships = append(memberships, membership)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating practice user rows: %w", rows.Err())
	}

	return memberships, nil
}

func (r *PgxPracticeRepository) AddUserToPractice(ctx context.Context, membership domain.UserPractice) error {
	// Re-adding a previously removed member reactivates the row with the new role
	query := `
        INSERT INTO user_practices (user_id, practice_id, role, joined_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id, practice_id) DO UPDATE SET
            role = EXCLUDED.role;
    `
	_, err := r.db.Exec(ctx, query,
		membership.UserID,
		membership.PracticeID,
		string(membership.Role),
		membership.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add user to practice: %w", err)
	}
	return nil
}

func (r *PgxPracticeRepository) UpdateUserPracticeRole(ctx context.Context, userID string, practiceID string, role domain.UserPracticeRole) error {
	query := `
        UPDATE user_practices
        SET role = $1
        WHERE user_id = $2 AND practice_id = $3;
    `
	cmdTag, err := r.db.Exec(ctx, query, string(role), userID, practiceID)
	if err != nil {
		return fmt.Errorf("failed to update user practice role: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
