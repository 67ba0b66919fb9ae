package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/estudiolink/estudio_backend/internal/apperrors"
	"github.com/estudiolink/estudio_backend/internal/core/domain"
	portsrepo "github.com/estudiolink/estudio_backend/internal/core/ports/repositories"
	portssvc "github.com/estudiolink/estudio_backend/internal/core/ports/services"
	"github.com/google/uuid"
)

// practiceService implements the PracticeSvcFacade interface
type practiceService struct {
	BaseService
	practiceRepo portsrepo.PracticeRepositoryFacade
	userRepo     portsrepo.UserReader
}

// NewPracticeService creates a new practice service with the provided dependencies
func NewPracticeService(
	practiceRepo portsrepo.PracticeRepositoryFacade,
	userRepo portsrepo.UserReader,
) portssvc.PracticeSvcFacade {
	return &practiceService{
		practiceRepo: practiceRepo,
		userRepo:     userRepo,
	}
}

// Ensure practiceService implements the PracticeSvcFacade interface
var _ portssvc.PracticeSvcFacade = (*practiceService)(nil)

// FindPracticeByID retrieves a practice by its ID
func (s *practiceService) FindPracticeByID(ctx context.Context, practiceID string) (*domain.Practice, error) {
	practice, err := s.practiceRepo.FindPracticeByID(ctx, practiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find practice by ID",
				slog.String("practice_id", practiceID))
		}
		return nil, err
	}

	s.LogDebug(ctx, "Practice retrieved successfully",
		slog.String("practice_id", practice.PracticeID))
	return practice, nil
}

// ListUserPractices retrieves all practices a user belongs to
func (s *practiceService) ListUserPractices(ctx context.Context, userID string, includeDisabled bool) ([]domain.Practice, error) {
	practices, err := s.practiceRepo.ListPracticesByUser(ctx, userID, includeDisabled)
	if err != nil {
		s.LogError(ctx, err, "Failed to list practices for user",
			slog.String("user_id", userID))
		return nil, err
	}

	if practices == nil {
		return []domain.Practice{}, nil
	}

	s.LogDebug(ctx, "Practices listed successfully",
		slog.Int("count", len(practices)),
		slog.String("user_id", userID))
	return practices, nil
}

// ListPracticeUsers retrieves all users and their roles for a practice
func (s *practiceService) ListPracticeUsers(ctx context.Context, practiceID string, requestingUserID string) ([]domain.UserPractice, error) {
	// Any member of the practice may list its users
	if err := s.AuthorizeUserAction(ctx, requestingUserID, practiceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	members, err := s.practiceRepo.ListPracticeUsers(ctx, practiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list practice users",
			slog.String("practice_id", practiceID))
		return nil, err
	}

	if members == nil {
		return []domain.UserPractice{}, nil
	}
	return members, nil
}

// CreatePractice creates a new practice with the creator as admin
func (s *practiceService) CreatePractice(ctx context.Context, name, description, creatorUserID string) (*domain.Practice, error) {
	now := time.Now()
	practiceID := uuid.NewString()

	practice := domain.Practice{
		PracticeID:  practiceID,
		Name:        name,
		Description: description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.practiceRepo.SavePractice(ctx, practice); err != nil {
		s.LogError(ctx, err, "Failed to save practice",
			slog.String("practice_id", practice.PracticeID))
		return nil, err
	}

	// Add creator as an admin to the new practice
	membershipErr := s.AddUserToPractice(ctx, creatorUserID, creatorUserID, practiceID, domain.RoleAdmin)
	if membershipErr != nil {
		s.LogError(ctx, membershipErr, "Failed to add creator as admin to new practice",
			slog.String("practice_id", practice.PracticeID),
			slog.String("user_id", creatorUserID))
		// The practice itself was created; the membership failure is surfaced via logs only
	}

	s.LogInfo(ctx, "Practice created successfully",
		slog.String("practice_id", practice.PracticeID),
		slog.String("creator_id", creatorUserID))
	return &practice, nil
}

// DeactivatePractice marks a practice as inactive
func (s *practiceService) DeactivatePractice(ctx context.Context, practiceID string, requestingUserID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, practiceID, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.practiceRepo.SetPracticeActive(ctx, practiceID, false, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate practice",
			slog.String("practice_id", practiceID))
		return err
	}
	s.LogInfo(ctx, "Practice deactivated",
		slog.String("practice_id", practiceID),
		slog.String("requesting_user_id", requestingUserID))
	return nil
}

// ActivatePractice marks a practice as active
func (s *practiceService) ActivatePractice(ctx context.Context, practiceID string, requestingUserID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, practiceID, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.practiceRepo.SetPracticeActive(ctx, practiceID, true, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to activate practice",
			slog.String("practice_id", practiceID))
		return err
	}
	s.LogInfo(ctx, "Practice activated",
		slog.String("practice_id", practiceID),
		slog.String("requesting_user_id", requestingUserID))
	return nil
}

// AddUserToPractice adds a user to a practice with a specific role
func (s *practiceService) AddUserToPractice(ctx context.Context, addingUserID, targetUserID, practiceID string, role domain.UserPracticeRole) error {
	// Self-assignment is permitted (creator adding self as admin)
	if addingUserID != targetUserID {
		err := s.AuthorizeUserAction(ctx, addingUserID, practiceID, domain.RoleAdmin)
		if err != nil {
			s.LogError(ctx, err, "User not authorized to add members to practice",
				slog.String("adding_user_id", addingUserID),
				slog.String("practice_id", practiceID))
			return err
		}

		if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
			s.LogError(ctx, err, "Target user not found for practice membership",
				slog.String("target_user_id", targetUserID))
			return err
		}
	}

	membership := domain.UserPractice{
		UserID:     targetUserID,
		PracticeID: practiceID,
		Role:       role,
		JoinedAt:   time.Now(),
	}

	err := s.practiceRepo.AddUserToPractice(ctx, membership)
	if err != nil {
		s.LogError(ctx, err, "Failed to add user to practice",
			slog.String("target_user_id", targetUserID),
			slog.String("practice_id", practiceID))
		return err
	}

	s.LogInfo(ctx, "User added to practice successfully",
		slog.String("target_user_id", targetUserID),
		slog.String("practice_id", practiceID),
		slog.String("role", string(role)))
	return nil
}

// RemoveUserFromPractice marks a member as removed from the practice
func (s *practiceService) RemoveUserFromPractice(ctx context.Context, requestingUserID, targetUserID, practiceID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, practiceID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.practiceRepo.UpdateUserPracticeRole(ctx, targetUserID, practiceID, domain.RoleRemoved); err != nil {
		s.LogError(ctx, err, "Failed to remove user from practice",
			slog.String("target_user_id", targetUserID),
			slog.String("practice_id", practiceID))
		return err
	}

	s.LogInfo(ctx, "User removed from practice",
		slog.String("target_user_id", targetUserID),
		slog.String("practice_id", practiceID))
	return nil
}

// UpdateUserPracticeRole updates a user's role in a practice
func (s *practiceService) UpdateUserPracticeRole(ctx context.Context, requestingUserID, targetUserID, practiceID string, newRole domain.UserPracticeRole) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, practiceID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.practiceRepo.UpdateUserPracticeRole(ctx, targetUserID, practiceID, newRole); err != nil {
		s.LogError(ctx, err, "Failed to update user practice role",
			slog.String("target_user_id", targetUserID),
			slog.String("practice_id", practiceID),
			slog.String("new_role", string(newRole)))
		return err
	}

	s.LogInfo(ctx, "User practice role updated",
		slog.String("target_user_id", targetUserID),
		slog.String("practice_id", practiceID),
		slog.String("new_role", string(newRole)))
	return nil
}

// AuthorizeUserAction checks if a user has required permissions for a practice
func (s *practiceService) AuthorizeUserAction(ctx context.Context, userID, practiceID string, requiredRole domain.UserPracticeRole) error {
	membership, err := s.practiceRepo.FindUserPracticeRole(ctx, userID, practiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of practice",
				slog.String("user_id", userID),
				slog.String("practice_id", practiceID))
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find user practice role",
			slog.String("user_id", userID),
			slog.String("practice_id", practiceID))
		return err
	}

	// Check if user has required role or higher
	if !hasRequiredRole(membership.Role, requiredRole) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("practice_id", practiceID),
			slog.String("user_role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}

	return nil
}

// roleRank orders practice roles from least to most privileged. REMOVED members
// rank below every requirement.
func roleRank(role domain.UserPracticeRole) int {
	switch role {
	case domain.RoleReadOnly:
		return 1
	case domain.RoleClient:
		return 2
	case domain.RoleAdvisor:
		return 3
	case domain.RoleAdmin:
		return 4
	default:
		return 0
	}
}

// hasRequiredRole checks if the user's role meets or exceeds the required role
func hasRequiredRole(userRole, requiredRole domain.UserPracticeRole) bool {
	userRank := roleRank(userRole)
	requiredRank := roleRank(requiredRole)
	if userRank == 0 || requiredRank == 0 {
		return false
	}
	return userRank >= requiredRank
}
