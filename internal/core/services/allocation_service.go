package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/estudiolink/estudio_backend/internal/apperrors"
	"github.com/estudiolink/estudio_backend/internal/core/domain"
	portsrepo "github.com/estudiolink/estudio_backend/internal/core/ports/repositories"
	portssvc "github.com/estudiolink/estudio_backend/internal/core/ports/services"
	"github.com/estudiolink/estudio_backend/internal/utils/fiscal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNoRegionsAvailable is returned by AddJurisdiction when every jurisdiction
// is already present in the draft.
var ErrNoRegionsAvailable = errors.New("no jurisdictions left to add")

// BeginEdit starts an in-memory editing session over a profile's current
// jurisdiction set. The entries are cloned so the caller can mutate freely and
// discard without side effects.
func BeginEdit(current []domain.Jurisdiction, inscriptionNumber string) domain.JurisdictionDraft {
	entries := make([]domain.Jurisdiction, len(current))
	copy(entries, current)

	vigencyYear := time.Now().Year()
	if len(entries) > 0 && entries[0].VigencyYear != 0 {
		vigencyYear = entries[0].VigencyYear
	}

	return domain.JurisdictionDraft{
		Entries:           entries,
		VigencyYear:       vigencyYear,
		InscriptionNumber: inscriptionNumber,
	}
}

// AddJurisdiction appends a new entry for the first free region. The default
// coefficient is 100 under LOCAL (a single jurisdiction takes everything) and 0
// under CONVENIO_MULTILATERAL (the editor distributes it afterwards). The new
// entry inherits the draft's inscription number and vigency year.
func AddJurisdiction(draft *domain.JurisdictionDraft, regime domain.IIBBRegime) error {
	free := draft.AvailableRegions()
	if len(free) == 0 {
		return ErrNoRegionsAvailable
	}

	coefficient := decimal.Zero
	if regime == domain.RegimeLocal {
		coefficient = fiscal.CoefficientTarget
	}

	draft.Entries = append(draft.Entries, domain.Jurisdiction{
		Region:            free[0],
		InscriptionNumber: draft.InscriptionNumber,
		Coefficient:       coefficient,
		TaxRate:           decimal.Zero,
		VigencyYear:       draft.VigencyYear,
	})
	return nil
}

// RemoveJurisdiction deletes the entry at index from the draft.
func RemoveJurisdiction(draft *domain.JurisdictionDraft, index int) error {
	if index < 0 || index >= len(draft.Entries) {
		return fmt.Errorf("%w: jurisdiction index %d out of range", apperrors.ErrValidation, index)
	}
	draft.Entries = append(draft.Entries[:index], draft.Entries[index+1:]...)
	return nil
}

// SetEntryRegion reassigns the entry at index to region, rejecting duplicates.
func SetEntryRegion(draft *domain.JurisdictionDraft, index int, region domain.Region) error {
	if index < 0 || index >= len(draft.Entries) {
		return fmt.Errorf("%w: jurisdiction index %d out of range", apperrors.ErrValidation, index)
	}
	if !region.IsValid() {
		return fmt.Errorf("%w: unknown jurisdiction %q", apperrors.ErrValidation, region)
	}
	for i, e := range draft.Entries {
		if i != index && e.Region == region {
			return fmt.Errorf("%w: jurisdiction %q already present", apperrors.ErrValidation, region)
		}
	}
	draft.Entries[index].Region = region
	return nil
}

// SetHomeJurisdiction marks the entry at index as the home jurisdiction and
// clears the flag everywhere else, keeping the at-most-one invariant at edit
// time rather than deferring it to save.
func SetHomeJurisdiction(draft *domain.JurisdictionDraft, index int) error {
	if index < 0 || index >= len(draft.Entries) {
		return fmt.Errorf("%w: jurisdiction index %d out of range", apperrors.ErrValidation, index)
	}
	for i := range draft.Entries {
		draft.Entries[i].IsHome = i == index
	}
	return nil
}

// ValidateForSave checks a draft against the allocation rules for the given
// regime. Under CONVENIO_MULTILATERAL the coefficients must total 100 within
// tolerance; all jurisdiction-bearing regimes forbid duplicate regions and more
// than one home entry.
func ValidateForSave(draft *domain.JurisdictionDraft, regime domain.IIBBRegime) error {
	if !regime.UsesJurisdictions() {
		if len(draft.Entries) > 0 {
			return fmt.Errorf("%w: regime %s does not carry jurisdictions", apperrors.ErrValidation, regime)
		}
		return nil
	}

	seen := make(map[domain.Region]struct{}, len(draft.Entries))
	homes := 0
	for _, e := range draft.Entries {
		if !e.Region.IsValid() {
			return fmt.Errorf("%w: unknown jurisdiction %q", apperrors.ErrValidation, e.Region)
		}
		if _, dup := seen[e.Region]; dup {
			return fmt.Errorf("%w: duplicate jurisdiction %q", apperrors.ErrValidation, e.Region)
		}
		seen[e.Region] = struct{}{}
		if e.IsHome {
			homes++
		}
	}
	if homes > 1 {
		return fmt.Errorf("%w: more than one home jurisdiction", apperrors.ErrValidation)
	}

	if regime == domain.RegimeConvenio {
		coefficients := make([]decimal.Decimal, len(draft.Entries))
		for i, e := range draft.Entries {
			coefficients[i] = e.Coefficient
		}
		if !fiscal.CoefficientsBalance(coefficients) {
			return fmt.Errorf("%w: coefficients total %s, expected %s",
				apperrors.ErrValidation, fiscal.SumCoefficients(coefficients), fiscal.CoefficientTarget)
		}
	}

	return nil
}

// allocationService implements the AllocationSvcFacade interface
type allocationService struct {
	BaseService
	fiscalRepo   portsrepo.FiscalRepositoryFacade
	practiceRepo portsrepo.PracticeReader
	changeLog    portssvc.ChangeLogSvcFacade
}

// NewAllocationService creates a new allocation service with the provided dependencies
func NewAllocationService(
	fiscalRepo portsrepo.FiscalRepositoryFacade,
	practiceRepo portsrepo.PracticeReader,
	changeLog portssvc.ChangeLogSvcFacade,
) portssvc.AllocationSvcFacade {
	return &allocationService{
		fiscalRepo:   fiscalRepo,
		practiceRepo: practiceRepo,
		changeLog:    changeLog,
	}
}

// Ensure allocationService implements the AllocationSvcFacade interface
var _ portssvc.AllocationSvcFacade = (*allocationService)(nil)

// LoadJurisdictions retrieves the profile's jurisdiction set and current version.
func (s *allocationService) LoadJurisdictions(ctx context.Context, requestingUserID, practiceID, profileID string) (*portssvc.JurisdictionSet, error) {
	profile, err := s.loadProfileForUser(ctx, requestingUserID, practiceID, profileID, false)
	if err != nil {
		return nil, err
	}

	entries, err := s.fiscalRepo.FindJurisdictionsByProfile(ctx, profileID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load jurisdictions",
			slog.String("profile_id", profileID))
		return nil, err
	}
	if entries == nil {
		entries = []domain.Jurisdiction{}
	}

	return &portssvc.JurisdictionSet{Entries: entries, Version: profile.Version}, nil
}

// CommitJurisdictions validates and persists a full replacement jurisdiction set.
func (s *allocationService) CommitJurisdictions(ctx context.Context, requestingUserID, practiceID, profileID string, entries []domain.Jurisdiction, expectedVersion int64) (*portssvc.JurisdictionSet, error) {
	profile, err := s.loadProfileForUser(ctx, requestingUserID, practiceID, profileID, true)
	if err != nil {
		return nil, err
	}

	draft := domain.JurisdictionDraft{Entries: entries}
	if err := ValidateForSave(&draft, profile.Regime); err != nil {
		return nil, err
	}

	previous, err := s.fiscalRepo.FindJurisdictionsByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range entries {
		entries[i].JurisdictionID = uuid.NewString()
		entries[i].ProfileID = profileID
	}

	if err := s.fiscalRepo.ReplaceJurisdictions(ctx, profileID, entries, expectedVersion, requestingUserID, now); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to replace jurisdictions",
				slog.String("profile_id", profileID))
		}
		return nil, err
	}

	// The allocation save itself lands in the change history; a failed audit
	// write must not undo the committed allocation
	s.recordAllocationChange(ctx, profile, summarizeJurisdictions(previous), summarizeJurisdictions(entries), "Jurisdicciones IIBB", requestingUserID)

	s.LogInfo(ctx, "Jurisdiction set committed",
		slog.String("profile_id", profileID),
		slog.Int("entry_count", len(entries)))

	saved, err := s.fiscalRepo.FindJurisdictionsByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return &portssvc.JurisdictionSet{Entries: saved, Version: expectedVersion + 1}, nil
}

// ChangeRegime switches the profile's IIBB regime, requiring confirmation before
// dropping existing jurisdiction rows.
func (s *allocationService) ChangeRegime(ctx context.Context, requestingUserID, practiceID, profileID string, newRegime domain.IIBBRegime, confirmed bool, expectedVersion int64) (*portssvc.RegimeChangeResult, error) {
	if !newRegime.IsValid() {
		return nil, fmt.Errorf("%w: unknown regime %q", apperrors.ErrValidation, newRegime)
	}

	profile, err := s.loadProfileForUser(ctx, requestingUserID, practiceID, profileID, true)
	if err != nil {
		return nil, err
	}
	if profile.Regime == newRegime {
		return &portssvc.RegimeChangeResult{Profile: profile}, nil
	}

	clearEntries := false
	if profile.Regime.UsesJurisdictions() && !newRegime.UsesJurisdictions() {
		existing, err := s.fiscalRepo.FindJurisdictionsByProfile(ctx, profileID)
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			if !confirmed {
				// Nothing persisted: the caller must confirm that the
				// jurisdiction rows will be dropped
				return &portssvc.RegimeChangeResult{RequiresConfirmation: true}, nil
			}
			clearEntries = true
		}
	}

	if err := s.fiscalRepo.SwitchRegime(ctx, profileID, newRegime, clearEntries, expectedVersion, requestingUserID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to switch regime",
				slog.String("profile_id", profileID),
				slog.String("new_regime", string(newRegime)))
		}
		return nil, err
	}

	s.recordAllocationChange(ctx, profile, string(profile.Regime), string(newRegime), "Régimen IIBB", requestingUserID)

	s.LogInfo(ctx, "Regime switched",
		slog.String("profile_id", profileID),
		slog.String("from", string(profile.Regime)),
		slog.String("to", string(newRegime)))

	updated, err := s.fiscalRepo.FindProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return &portssvc.RegimeChangeResult{Profile: updated}, nil
}

// loadProfileForUser loads a profile and enforces practice membership. Write
// access requires the ADVISOR role or higher; read access additionally admits
// the profile's own client.
func (s *allocationService) loadProfileForUser(ctx context.Context, requestingUserID, practiceID, profileID string, write bool) (*domain.FiscalProfile, error) {
	profile, err := s.fiscalRepo.FindProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.PracticeID != practiceID {
		return nil, apperrors.ErrNotFound
	}

	membership, err := s.practiceRepo.FindUserPracticeRole(ctx, requestingUserID, practiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}

	if write {
		if !hasRequiredRole(membership.Role, domain.RoleAdvisor) {
			return nil, apperrors.ErrForbidden
		}
		return profile, nil
	}

	if membership.Role == domain.RoleClient && profile.ClientUserID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}
	return profile, nil
}

// recordAllocationChange appends a jurisdiction-regime ledger entry, logging and
// swallowing failures.
func (s *allocationService) recordAllocationChange(ctx context.Context, profile *domain.FiscalProfile, previous, next, label, actorID string) {
	change := portssvc.FieldChange{
		Category:      domain.CategoryJurisdiction,
		FieldLabel:    label,
		PreviousValue: previous,
		NewValue:      next,
	}
	if _, err := s.changeLog.RecordChange(ctx, profile.ClientUserID, profile.ProfileID, change, actorID); err != nil {
		s.LogError(ctx, err, "Failed to record allocation change in history",
			slog.String("profile_id", profile.ProfileID))
	}
}

// summarizeJurisdictions renders a jurisdiction set as a compact single line,
// e.g. "Buenos Aires* 60%, Córdoba 40%" (the asterisk marks the home entry).
func summarizeJurisdictions(entries []domain.Jurisdiction) string {
	if len(entries) == 0 {
		return ""
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		marker := ""
		if e.IsHome {
			marker = "*"
		}
		parts[i] = fmt.Sprintf("%s%s %s%%", e.Region, marker, e.Coefficient.String())
	}
	return strings.Join(parts, ", ")
}
