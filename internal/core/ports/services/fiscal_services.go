package services

import (
	"context"

	"github.com/estudiolink/estudio_backend/internal/core/domain"
	"github.com/estudiolink/estudio_backend/internal/dto"
)

// FiscalProfileReaderSvc defines read operations for client fiscal records
type FiscalProfileReaderSvc interface {
	// GetProfileByID retrieves a fiscal profile, enforcing practice membership.
	GetProfileByID(ctx context.Context, requestingUserID, practiceID, profileID string) (*domain.FiscalProfile, error)

	// ListProfilesByPractice retrieves a paginated list of a practice's client profiles.
	ListProfilesByPractice(ctx context.Context, requestingUserID, practiceID string, limit, offset int) ([]domain.FiscalProfile, error)
}

// FiscalProfileWriterSvc defines write operations for client fiscal records
type FiscalProfileWriterSvc interface {
	// CreateProfile registers a new client fiscal record in a practice.
	// Requires the ADVISOR role or higher.
	CreateProfile(ctx context.Context, requestingUserID string, req dto.CreateFiscalProfileRequest) (*domain.FiscalProfile, error)

	// UpdateProfile applies the provided scalar field changes and records each
	// differing field in the change history.
	UpdateProfile(ctx context.Context, requestingUserID, practiceID, profileID string, req dto.UpdateFiscalProfileRequest) (*domain.FiscalProfile, error)
}

// FiscalProfileSvcFacade combines the fiscal-profile service interfaces
type FiscalProfileSvcFacade interface {
	FiscalProfileReaderSvc
	FiscalProfileWriterSvc
}

// JurisdictionSet is a profile's jurisdiction entries together with the profile
// version a caller must echo back on save.
type JurisdictionSet struct {
	Entries []domain.Jurisdiction
	Version int64
}

// RegimeChangeResult reports the outcome of a regime switch attempt. When
// RequiresConfirmation is set, nothing was persisted: the caller must retry with
// confirmed=true to drop the profile's jurisdiction rows.
type RegimeChangeResult struct {
	RequiresConfirmation bool
	Profile              *domain.FiscalProfile
}

// AllocationSvcFacade defines the jurisdiction allocation operations of a profile.
// Draft manipulation itself is pure (see the allocation service package); this
// facade covers the persistent edges.
type AllocationSvcFacade interface {
	// LoadJurisdictions retrieves the profile's jurisdiction set and current version.
	LoadJurisdictions(ctx context.Context, requestingUserID, practiceID, profileID string) (*JurisdictionSet, error)

	// CommitJurisdictions validates and persists a full replacement jurisdiction set.
	// Returns apperrors.ErrConflict when expectedVersion is stale, and
	// apperrors.ErrValidation when the set violates an allocation rule.
	CommitJurisdictions(ctx context.Context, requestingUserID, practiceID, profileID string, entries []domain.Jurisdiction, expectedVersion int64) (*JurisdictionSet, error)

	// ChangeRegime switches the profile's IIBB regime. Leaving a
	// jurisdiction-bearing regime with rows present requires confirmed=true,
	// otherwise the result only flags RequiresConfirmation.
	ChangeRegime(ctx context.Context, requestingUserID, practiceID, profileID string, newRegime domain.IIBBRegime, confirmed bool, expectedVersion int64) (*RegimeChangeResult, error)
}
