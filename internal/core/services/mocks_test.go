package services_test

import (
	"context"
	"time"

	"github.com/estudiolink/estudio_backend/internal/core/domain"
	portsrepo "github.com/estudiolink/estudio_backend/internal/core/ports/repositories"
	portssvc "github.com/estudiolink/estudio_backend/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// MockFiscalRepository is a mock implementation of the FiscalRepositoryFacade interface
type MockFiscalRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalRepositoryFacade = (*MockFiscalRepository)(nil)

func (m *MockFiscalRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.FiscalProfile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalProfile), args.Error(1)
}

func (m *MockFiscalRepository) ListProfilesByPractice(ctx context.Context, practiceID string, limit int, offset int) ([]domain.FiscalProfile, error) {
	args := m.Called(ctx, practiceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalProfile), args.Error(1)
}

func (m *MockFiscalRepository) SaveProfile(ctx context.Context, profile domain.FiscalProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockFiscalRepository) UpdateProfileFields(ctx context.Context, profileID string, fields map[string]any, actorID string, now time.Time) error {
	args := m.Called(ctx, profileID, fields, actorID, now)
	return args.Error(0)
}

func (m *MockFiscalRepository) FindJurisdictionsByProfile(ctx context.Context, profileID string) ([]domain.Jurisdiction, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Jurisdiction), args.Error(1)
}

func (m *MockFiscalRepository) ReplaceJurisdictions(ctx context.Context, profileID string, entries []domain.Jurisdiction, expectedVersion int64, actorID string, now time.Time) error {
	args := m.Called(ctx, profileID, entries, expectedVersion, actorID, now)
	return args.Error(0)
}

func (m *MockFiscalRepository) SwitchRegime(ctx context.Context, profileID string, newRegime domain.IIBBRegime, clearEntries bool, expectedVersion int64, actorID string, now time.Time) error {
	args := m.Called(ctx, profileID, newRegime, clearEntries, expectedVersion, actorID, now)
	return args.Error(0)
}

// MockPracticeReader is a mock implementation of the PracticeReader interface
type MockPracticeReader struct {
	mock.Mock
}

var _ portsrepo.PracticeReader = (*MockPracticeReader)(nil)

func (m *MockPracticeReader) FindPracticeByID(ctx context.Context, practiceID string) (*domain.Practice, error) {
	args := m.Called(ctx, practiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Practice), args.Error(1)
}

func (m *MockPracticeReader) ListPracticesByUser(ctx context.Context, userID string, includeDisabled bool) ([]domain.Practice, error) {
	args := m.Called(ctx, userID, includeDisabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Practice), args.Error(1)
}

func (m *MockPracticeReader) FindUserPracticeRole(ctx context.Context, userID string, practiceID string) (*domain.UserPractice, error) {
	args := m.Called(ctx, userID, practiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPractice), args.Error(1)
}

func (m *MockPracticeReader) ListPracticeUsers(ctx context.Context, practiceID string) ([]domain.UserPractice, error) {
	args := m.Called(ctx, practiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserPractice), args.Error(1)
}

// MockUserReader is a mock implementation of the UserReader interface
type MockUserReader struct {
	mock.Mock
}

var _ portsrepo.UserReader = (*MockUserReader)(nil)

func (m *MockUserReader) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserReader) FindUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.User), args.Error(1)
}

// MockChangeLogRepository is a mock implementation of the ChangeLogRepository interface
type MockChangeLogRepository struct {
	mock.Mock
}

var _ portsrepo.ChangeLogRepository = (*MockChangeLogRepository)(nil)

func (m *MockChangeLogRepository) SaveChangeEntry(ctx context.Context, entry domain.ChangeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockChangeLogRepository) FindChangeEntries(ctx context.Context, profileID string, query portsrepo.ChangeHistoryQuery) ([]domain.ChangeEntry, error) {
	args := m.Called(ctx, profileID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChangeEntry), args.Error(1)
}

// MockSuggestionRepository is a mock implementation of the SuggestionRepository interface
type MockSuggestionRepository struct {
	mock.Mock
}

var _ portsrepo.SuggestionRepository = (*MockSuggestionRepository)(nil)

func (m *MockSuggestionRepository) SaveSuggestion(ctx context.Context, suggestion domain.Suggestion) error {
	args := m.Called(ctx, suggestion)
	return args.Error(0)
}

func (m *MockSuggestionRepository) FindSuggestionByID(ctx context.Context, suggestionID string) (*domain.Suggestion, error) {
	args := m.Called(ctx, suggestionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Suggestion), args.Error(1)
}

func (m *MockSuggestionRepository) ListSuggestionsByProfile(ctx context.Context, profileID string, status *domain.SuggestionStatus) ([]domain.Suggestion, error) {
	args := m.Called(ctx, profileID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Suggestion), args.Error(1)
}

func (m *MockSuggestionRepository) ListPendingByPractice(ctx context.Context, practiceID string) ([]domain.Suggestion, error) {
	args := m.Called(ctx, practiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Suggestion), args.Error(1)
}

func (m *MockSuggestionRepository) ApplyReview(ctx context.Context, review portsrepo.SuggestionReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

// MockChangeLogService is a mock implementation of the ChangeLogSvcFacade interface
type MockChangeLogService struct {
	mock.Mock
}

var _ portssvc.ChangeLogSvcFacade = (*MockChangeLogService)(nil)

func (m *MockChangeLogService) RecordChange(ctx context.Context, ownerUserID, profileID string, change portssvc.FieldChange, actorID string) (*domain.ChangeEntry, error) {
	args := m.Called(ctx, ownerUserID, profileID, change, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChangeEntry), args.Error(1)
}

func (m *MockChangeLogService) GetHistory(ctx context.Context, requestingUserID, practiceID, profileID string, limit int, category *domain.ChangeCategory, nextToken string) ([]domain.ChangeEntry, *string, error) {
	args := m.Called(ctx, requestingUserID, practiceID, profileID, limit, category, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.ChangeEntry), token, args.Error(2)
}
