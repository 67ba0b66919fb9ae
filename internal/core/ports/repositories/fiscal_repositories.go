package repositories

import (
	"context"
	"time"

	"github.com/estudiolink/estudio_backend/internal/core/domain"
)

// FiscalProfileReader defines read operations for client fiscal records
type FiscalProfileReader interface {
	// FindProfileByID retrieves a fiscal profile by its ID.
	FindProfileByID(ctx context.Context, profileID string) (*domain.FiscalProfile, error)

	// ListProfilesByPractice retrieves a paginated list of a practice's client profiles.
	ListProfilesByPractice(ctx context.Context, practiceID string, limit int, offset int) ([]domain.FiscalProfile, error)
}

// FiscalProfileWriter defines write operations for client fiscal records
type FiscalProfileWriter interface {
	// SaveProfile persists a new fiscal profile.
	SaveProfile(ctx context.Context, profile domain.FiscalProfile) error

	// UpdateProfileFields applies a set of scalar field changes to a profile in a
	// single UPDATE. Field keys are domain field names (see changelog categories);
	// unknown keys are rejected with apperrors.ErrValidation.
	UpdateProfileFields(ctx context.Context, profileID string, fields map[string]any, actorID string, now time.Time) error
}

// JurisdictionReader defines read operations for jurisdiction entries
type JurisdictionReader interface {
	// FindJurisdictionsByProfile retrieves the full jurisdiction set of a profile,
	// ordered by region for stable round-trips.
	FindJurisdictionsByProfile(ctx context.Context, profileID string) ([]domain.Jurisdiction, error)
}

// JurisdictionWriter defines the wholesale-replace write path for jurisdiction entries
type JurisdictionWriter interface {
	// ReplaceJurisdictions deletes the profile's current jurisdiction rows and inserts
	// the given entries, all inside one database transaction, and bumps the profile's
	// version. Returns apperrors.ErrConflict when expectedVersion no longer matches.
	ReplaceJurisdictions(ctx context.Context, profileID string, entries []domain.Jurisdiction, expectedVersion int64, actorID string, now time.Time) error

	// SwitchRegime changes the profile's regime and, when clearEntries is set,
	// deletes its jurisdiction rows in the same transaction. Version-guarded like
	// ReplaceJurisdictions.
	SwitchRegime(ctx context.Context, profileID string, newRegime domain.IIBBRegime, clearEntries bool, expectedVersion int64, actorID string, now time.Time) error
}

// FiscalRepositoryFacade combines profile and jurisdiction repository interfaces
type FiscalRepositoryFacade interface {
	FiscalProfileReader
	FiscalProfileWriter
	JurisdictionReader
	JurisdictionWriter
}
