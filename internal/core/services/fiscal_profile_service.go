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
	"github.com/estudiolink/estudio_backend/internal/dto"
	"github.com/google/uuid"
)

// fiscalProfileService implements the FiscalProfileSvcFacade interface
type fiscalProfileService struct {
	BaseService
	fiscalRepo   portsrepo.FiscalRepositoryFacade
	practiceRepo portsrepo.PracticeReader
	userRepo     portsrepo.UserReader
	changeLog    portssvc.ChangeLogSvcFacade
}

// NewFiscalProfileService creates a new fiscal profile service with the provided dependencies
func NewFiscalProfileService(
	fiscalRepo portsrepo.FiscalRepositoryFacade,
	practiceRepo portsrepo.PracticeReader,
	userRepo portsrepo.UserReader,
	changeLog portssvc.ChangeLogSvcFacade,
) portssvc.FiscalProfileSvcFacade {
	return &fiscalProfileService{
		fiscalRepo:   fiscalRepo,
		practiceRepo: practiceRepo,
		userRepo:     userRepo,
		changeLog:    changeLog,
	}
}

// Ensure fiscalProfileService implements the FiscalProfileSvcFacade interface
var _ portssvc.FiscalProfileSvcFacade = (*fiscalProfileService)(nil)

// GetProfileByID retrieves a fiscal profile, enforcing practice membership.
// Client-role members only see their own record.
func (s *fiscalProfileService) GetProfileByID(ctx context.Context, requestingUserID, practiceID, profileID string) (*domain.FiscalProfile, error) {
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
	if membership.Role == domain.RoleClient && profile.ClientUserID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}

	return profile, nil
}

// ListProfilesByPractice retrieves a paginated list of a practice's client profiles.
// Requires a staff role; clients never list other clients.
func (s *fiscalProfileService) ListProfilesByPractice(ctx context.Context, requestingUserID, practiceID string, limit, offset int) ([]domain.FiscalProfile, error) {
	membership, err := s.practiceRepo.FindUserPracticeRole(ctx, requestingUserID, practiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}
	if membership.Role == domain.RoleClient || membership.Role == domain.RoleRemoved {
		return nil, apperrors.ErrForbidden
	}

	if limit <= 0 {
		limit = 20
	}
	profiles, err := s.fiscalRepo.ListProfilesByPractice(ctx, practiceID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal profiles",
			slog.String("practice_id", practiceID))
		return nil, err
	}
	if profiles == nil {
		return []domain.FiscalProfile{}, nil
	}
	return profiles, nil
}

// CreateProfile registers a new client fiscal record in a practice.
func (s *fiscalProfileService) CreateProfile(ctx context.Context, requestingUserID string, req dto.CreateFiscalProfileRequest) (*domain.FiscalProfile, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, req.PracticeID, domain.RoleAdvisor); err != nil {
		return nil, err
	}

	if !req.Regime.IsValid() {
		return nil, fmt.Errorf("%w: unknown regime %q", apperrors.ErrValidation, req.Regime)
	}
	if _, err := s.userRepo.FindUserByID(ctx, req.ClientUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: client user %s not found", apperrors.ErrValidation, req.ClientUserID)
		}
		return nil, err
	}

	now := time.Now()
	profile := domain.FiscalProfile{
		ProfileID:         uuid.NewString(),
		PracticeID:        req.PracticeID,
		ClientUserID:      req.ClientUserID,
		DisplayName:       req.DisplayName,
		CUIT:              req.CUIT,
		Regime:            req.Regime,
		IIBBNumber:        req.IIBBNumber,
		PaymentMethod:     req.PaymentMethod,
		AssignedAdvisorID: req.AssignedAdvisorID,
		Version:           1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.fiscalRepo.SaveProfile(ctx, profile); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save fiscal profile",
				slog.String("practice_id", req.PracticeID),
				slog.String("client_user_id", req.ClientUserID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal profile created",
		slog.String("profile_id", profile.ProfileID),
		slog.String("practice_id", profile.PracticeID))
	return &profile, nil
}

// profileFieldChange pairs a repository column write with its ledger entry.
type profileFieldChange struct {
	column   string
	value    any
	change   portssvc.FieldChange
	previous any
}

// UpdateProfile applies the provided scalar field changes in a single update and
// then records each differing field in the change history. The profile write is
// authoritative; audit failures are logged and swallowed so a half-recorded
// history never rolls back applied data.
func (s *fiscalProfileService) UpdateProfile(ctx context.Context, requestingUserID, practiceID, profileID string, req dto.UpdateFiscalProfileRequest) (*domain.FiscalProfile, error) {
	profile, err := s.GetProfileByID(ctx, requestingUserID, practiceID, profileID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, requestingUserID, practiceID, domain.RoleAdvisor); err != nil {
		return nil, err
	}

	var metadata map[string]string
	if req.Reason != "" {
		metadata = map[string]string{"reason": req.Reason}
	}

	var pending []profileFieldChange
	addChange := func(column string, value any, previous any, category domain.ChangeCategory, label string) {
		pending = append(pending, profileFieldChange{
			column:   column,
			value:    value,
			previous: previous,
			change: portssvc.FieldChange{
				Category:   category,
				FieldLabel: label,
				Metadata:   metadata,
			},
		})
	}

	if req.DisplayName != nil {
		addChange("display_name", *req.DisplayName, profile.DisplayName, domain.CategoryName, "Nombre")
	}
	if req.CUIT != nil {
		addChange("cuit", *req.CUIT, profile.CUIT, domain.CategoryTaxID, "CUIT")
	}
	if req.IIBBNumber != nil {
		addChange("iibb_number", *req.IIBBNumber, profile.IIBBNumber, domain.CategoryTaxAuthority, "Número IIBB")
	}
	if req.PaymentMethod != nil {
		addChange("payment_method", string(*req.PaymentMethod), string(profile.PaymentMethod), domain.CategoryPayment, "Forma de pago")
	}
	if req.AssignedAdvisorID != nil {
		addChange("assigned_advisor_id", *req.AssignedAdvisorID, profile.AssignedAdvisorID, domain.CategoryAssignedAdvisor, "Contador asignado")
	}

	if len(pending) == 0 {
		return profile, nil
	}

	fields := make(map[string]any, len(pending))
	for _, p := range pending {
		fields[p.column] = p.value
	}

	now := time.Now()
	if err := s.fiscalRepo.UpdateProfileFields(ctx, profileID, fields, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to update fiscal profile fields",
			slog.String("profile_id", profileID))
		return nil, err
	}

	// The profile update is already committed; each field gets its own history
	// entry and an individual audit failure does not stop the rest
	for _, p := range pending {
		change := p.change
		change.PreviousValue = p.previous
		change.NewValue = p.value
		if _, err := s.changeLog.RecordChange(ctx, profile.ClientUserID, profileID, change, requestingUserID); err != nil {
			s.LogError(ctx, err, "Failed to record profile change in history",
				slog.String("profile_id", profileID),
				slog.String("field", p.column))
		}
	}

	updated, err := s.fiscalRepo.FindProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return updated, nil
}
