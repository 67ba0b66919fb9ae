package services_test

import (
	"context"
	"testing"

	"github.com/estudiolink/estudio_backend/internal/apperrors"
	"github.com/estudiolink/estudio_backend/internal/core/domain"
	portssvc "github.com/estudiolink/estudio_backend/internal/core/ports/services"
	"github.com/estudiolink/estudio_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestBeginEdit_ClonesCurrentEntries(t *testing.T) {
	current := []domain.Jurisdiction{
		{Region: domain.RegionCordoba, Coefficient: decimal.NewFromInt(40), VigencyYear: 2025},
	}

	draft := services.BeginEdit(current, "901-123456-7")
	draft.Entries[0].Region = domain.RegionSalta

	assert.Equal(t, domain.RegionCordoba, current[0].Region)
	assert.Equal(t, 2025, draft.VigencyYear)
	assert.Equal(t, "901-123456-7", draft.InscriptionNumber)
}

func TestAddJurisdiction_DefaultCoefficientByRegime(t *testing.T) {
	local := services.BeginEdit(nil, "123")
	require.NoError(t, services.AddJurisdiction(&local, domain.RegimeLocal))
	assert.True(t, local.Entries[0].Coefficient.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "123", local.Entries[0].InscriptionNumber)

	convenio := services.BeginEdit(nil, "123")
	require.NoError(t, services.AddJurisdiction(&convenio, domain.RegimeConvenio))
	assert.True(t, convenio.Entries[0].Coefficient.IsZero())
}

func TestAddJurisdiction_PicksFirstFreeRegion(t *testing.T) {
	draft := services.BeginEdit([]domain.Jurisdiction{{Region: domain.RegionCABA}}, "")

	require.NoError(t, services.AddJurisdiction(&draft, domain.RegimeConvenio))

	assert.Equal(t, domain.RegionBuenosAires, draft.Entries[1].Region)
}

func TestAddJurisdiction_AllRegionsTaken(t *testing.T) {
	draft := services.BeginEdit(nil, "")
	for range domain.AllRegions() {
		require.NoError(t, services.AddJurisdiction(&draft, domain.RegimeConvenio))
	}

	err := services.AddJurisdiction(&draft, domain.RegimeConvenio)

	assert.ErrorIs(t, err, services.ErrNoRegionsAvailable)
	assert.Len(t, draft.Entries, len(domain.AllRegions()))
}

func TestRemoveJurisdiction(t *testing.T) {
	draft := services.BeginEdit([]domain.Jurisdiction{
		{Region: domain.RegionCABA},
		{Region: domain.RegionCordoba},
	}, "")

	require.NoError(t, services.RemoveJurisdiction(&draft, 0))
	assert.Len(t, draft.Entries, 1)
	assert.Equal(t, domain.RegionCordoba, draft.Entries[0].Region)

	err := services.RemoveJurisdiction(&draft, 5)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSetEntryRegion(t *testing.T) {
	draft := services.BeginEdit([]domain.Jurisdiction{
		{Region: domain.RegionCABA},
		{Region: domain.RegionCordoba},
	}, "")

	require.NoError(t, services.SetEntryRegion(&draft, 1, domain.RegionMendoza))
	assert.Equal(t, domain.RegionMendoza, draft.Entries[1].Region)

	assert.ErrorIs(t, services.SetEntryRegion(&draft, 1, domain.RegionCABA), apperrors.ErrValidation)
	assert.ErrorIs(t, services.SetEntryRegion(&draft, 1, domain.Region("Atlantis")), apperrors.ErrValidation)
	assert.ErrorIs(t, services.SetEntryRegion(&draft, -1, domain.RegionSalta), apperrors.ErrValidation)
}

func TestSetHomeJurisdiction_ClearsPreviousHome(t *testing.T) {
	draft := services.BeginEdit([]domain.Jurisdiction{
		{Region: domain.RegionCABA, IsHome: true},
		{Region: domain.RegionCordoba},
	}, "")

	require.NoError(t, services.SetHomeJurisdiction(&draft, 1))

	assert.False(t, draft.Entries[0].IsHome)
	assert.True(t, draft.Entries[1].IsHome)
}

func TestValidateForSave_ConvenioCoefficients(t *testing.T) {
	tests := []struct {
		name         string
		coefficients []string
		wantErr      bool
	}{
		{"exact hundred", []string{"60", "40"}, false},
		{"within tolerance", []string{"60.005", "40.004"}, false},
		{"at tolerance boundary", []string{"60", "40.01"}, true},
		{"under total", []string{"50", "40"}, true},
		{"over total", []string{"70", "40"}, true},
	}

	regions := []domain.Region{domain.RegionCABA, domain.RegionBuenosAires}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := domain.JurisdictionDraft{}
			for i, c := range tt.coefficients {
				draft.Entries = append(draft.Entries, domain.Jurisdiction{
					Region:      regions[i],
					Coefficient: decimal.RequireFromString(c),
				})
			}

			err := services.ValidateForSave(&draft, domain.RegimeConvenio)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateForSave_LocalIgnoresCoefficientSum(t *testing.T) {
	draft := domain.JurisdictionDraft{Entries: []domain.Jurisdiction{
		{Region: domain.RegionCABA, Coefficient: decimal.NewFromInt(3)},
	}}

	assert.NoError(t, services.ValidateForSave(&draft, domain.RegimeLocal))
}

func TestValidateForSave_DuplicateRegion(t *testing.T) {
	draft := domain.JurisdictionDraft{Entries: []domain.Jurisdiction{
		{Region: domain.RegionCABA, Coefficient: decimal.NewFromInt(60)},
		{Region: domain.RegionCABA, Coefficient: decimal.NewFromInt(40)},
	}}

	assert.ErrorIs(t, services.ValidateForSave(&draft, domain.RegimeConvenio), apperrors.ErrValidation)
}

func TestValidateForSave_MultipleHomes(t *testing.T) {
	draft := domain.JurisdictionDraft{Entries: []domain.Jurisdiction{
		{Region: domain.RegionCABA, Coefficient: decimal.NewFromInt(60), IsHome: true},
		{Region: domain.RegionCordoba, Coefficient: decimal.NewFromInt(40), IsHome: true},
	}}

	assert.ErrorIs(t, services.ValidateForSave(&draft, domain.RegimeConvenio), apperrors.ErrValidation)
}

func TestValidateForSave_NonBearingRegimeRejectsEntries(t *testing.T) {
	draft := domain.JurisdictionDraft{Entries: []domain.Jurisdiction{
		{Region: domain.RegionCABA},
	}}

	assert.ErrorIs(t, services.ValidateForSave(&draft, domain.RegimeMonotributo), apperrors.ErrValidation)
	assert.NoError(t, services.ValidateForSave(&domain.JurisdictionDraft{}, domain.RegimeMonotributo))
}

// AllocationServiceTestSuite defines the test suite for the allocation service
type AllocationServiceTestSuite struct {
	suite.Suite
	mockFiscalRepo   *MockFiscalRepository
	mockPracticeRepo *MockPracticeReader
	mockChangeLog    *MockChangeLogService
	service          portssvc.AllocationSvcFacade

	advisorID  string
	practiceID string
	profileID  string
	profile    *domain.FiscalProfile
	membership *domain.UserPractice
}

func (suite *AllocationServiceTestSuite) SetupTest() {
	suite.mockFiscalRepo = new(MockFiscalRepository)
	suite.mockPracticeRepo = new(MockPracticeReader)
	suite.mockChangeLog = new(MockChangeLogService)
	suite.service = services.NewAllocationService(suite.mockFiscalRepo, suite.mockPracticeRepo, suite.mockChangeLog)

	suite.advisorID = uuid.NewString()
	suite.practiceID = uuid.NewString()
	suite.profileID = uuid.NewString()
	suite.profile = &domain.FiscalProfile{
		ProfileID:    suite.profileID,
		PracticeID:   suite.practiceID,
		ClientUserID: uuid.NewString(),
		Regime:       domain.RegimeConvenio,
		Version:      3,
	}
	suite.membership = &domain.UserPractice{
		UserID:     suite.advisorID,
		PracticeID: suite.practiceID,
		Role:       domain.RoleAdvisor,
	}
}

func (suite *AllocationServiceTestSuite) TestLoadJurisdictions_Success() {
	ctx := context.Background()
	entries := []domain.Jurisdiction{
		{JurisdictionID: uuid.NewString(), ProfileID: suite.profileID, Region: domain.RegionCABA},
	}

	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.advisorID, suite.practiceID).Return(suite.membership, nil).Once()
	suite.mockFiscalRepo.On("FindJurisdictionsByProfile", ctx, suite.profileID).Return(entries, nil).Once()

	set, err := suite.service.LoadJurisdictions(ctx, suite.advisorID, suite.practiceID, suite.profileID)

	suite.Require().NoError(err)
	suite.Equal(entries, set.Entries)
	suite.Equal(int64(3), set.Version)
	suite.mockFiscalRepo.AssertExpectations(suite.T())
	suite.mockPracticeRepo.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestLoadJurisdictions_PracticeMismatch() {
	ctx := context.Background()
	otherPractice := uuid.NewString()

	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()

	set, err := suite.service.LoadJurisdictions(ctx, suite.advisorID, otherPractice, suite.profileID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(set)
	suite.mockFiscalRepo.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestLoadJurisdictions_NonMemberForbidden() {
	ctx := context.Background()

	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.advisorID, suite.practiceID).Return(nil, apperrors.ErrNotFound).Once()

	set, err := suite.service.LoadJurisdictions(ctx, suite.advisorID, suite.practiceID, suite.profileID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(set)
}

func (suite *AllocationServiceTestSuite) TestLoadJurisdictions_ClientOwnerAllowed() {
	ctx := context.Background()
	clientID := suite.profile.ClientUserID
	clientMembership := &domain.UserPractice{UserID: clientID, PracticeID: suite.practiceID, Role: domain.RoleClient}

	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, clientID, suite.practiceID).Return(clientMembership, nil).Once()
	suite.mockFiscalRepo.On("FindJurisdictionsByProfile", ctx, suite.profileID).Return(nil, nil).Once()

	set, err := suite.service.LoadJurisdictions(ctx, clientID, suite.practiceID, suite.profileID)

	suite.Require().NoError(err)
	suite.Empty(set.Entries)
}

func (suite *AllocationServiceTestSuite) TestLoadJurisdictions_ClientOtherProfileForbidden() {
	ctx := context.Background()
	strangerID := uuid.NewString()
	clientMembership := &domain.UserPractice{UserID: strangerID, PracticeID: suite.practiceID, Role: domain.RoleClient}

	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, strangerID, suite.practiceID).Return(clientMembership, nil).Once()

	set, err := suite.service.LoadJurisdictions(ctx, strangerID, suite.practiceID, suite.profileID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(set)
}

func (suite *AllocationServiceTestSuite) TestCommitJurisdictions_Success() {
	ctx := context.Background()
	entries := []domain.Jurisdiction{
		{Region: domain.RegionCABA, Coefficient: decimal.NewFromInt(60), IsHome: true},
		{Region: domain.RegionCordoba, Coefficient: decimal.NewFromInt(40)},
	}
	previous := []domain.Jurisdiction{
		{Region: domain.RegionCABA, Coefficient: decimal.NewFromInt(100), IsHome: true},
	}
	saved := []domain.Jurisdiction{
		{JurisdictionID: uuid.NewString(), ProfileID: suite.profileID, Region: domain.RegionCABA, Coefficient: decimal.NewFromInt(60), IsHome: true},
		{JurisdictionID: uuid.NewString(), ProfileID: suite.profileID, Region: domain.RegionCordoba, Coefficient: decimal.NewFromInt(40)},
	}

	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.advisorID, suite.practiceID).Return(suite.membership, nil).Once()
	suite.mockFiscalRepo.On("FindJurisdictionsByProfile", ctx, suite.profileID).Return(previous, nil).Once()
	suite.mockFiscalRepo.On("ReplaceJurisdictions", ctx, suite.profileID, mock.MatchedBy(func(got []domain.Jurisdiction) bool {
		for _, e := range got {
			if e.JurisdictionID == "" || e.ProfileID != suite.profileID {
				return false
			}
		}
		return len(got) == 2
	}), int64(3), suite.advisorID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockChangeLog.On("RecordChange", ctx, suite.profile.ClientUserID, suite.profileID, mock.MatchedBy(func(change portssvc.FieldChange) bool {
		return change.Category == domain.CategoryJurisdiction && change.PreviousValue != change.NewValue
	}), suite.advisorID).Return(&domain.ChangeEntry{}, nil).Once()
	suite.mockFiscalRepo.On("FindJurisdictionsByProfile", ctx, suite.profileID).Return(saved, nil).Once()

	set, err := suite.service.CommitJurisdictions(ctx, suite.advisorID, suite.practiceID, suite.profileID, entries, 3)

	suite.Require().NoError(err)
	suite.Equal(saved, set.Entries)
	suite.Equal(int64(4), set.Version)
	suite.mockFiscalRepo.AssertExpectations(suite.T())
	suite.mockChangeLog.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestCommitJurisdictions_UnbalancedCoefficients() {
	ctx := context.Background()
	entries := []domain.Jurisdiction{
		{Region: domain.RegionCABA, Coefficient: decimal.NewFromInt(50)},
		{Region: domain.RegionCordoba, Coefficient: decimal.NewFromInt(40)},
	}

	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.advisorID, suite.practiceID).Return(suite.membership, nil).Once()

	set, err := suite.service.CommitJurisdictions(ctx, suite.advisorID, suite.practiceID, suite.profileID, entries, 3)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(set)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "ReplaceJurisdictions", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestCommitJurisdictions_StaleVersion() {
	ctx := context.Background()
	entries := []domain.Jurisdiction{
		{Region: domain.RegionCABA, Coefficient: decimal.NewFromInt(100), IsHome: true},
	}

	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.advisorID, suite.practiceID).Return(suite.membership, nil).Once()
	suite.mockFiscalRepo.On("FindJurisdictionsByProfile", ctx, suite.profileID).Return(nil, nil).Once()
	suite.mockFiscalRepo.On("ReplaceJurisdictions", ctx, suite.profileID, mock.Anything, int64(2), suite.advisorID, mock.AnythingOfType("time.Time")).Return(apperrors.ErrConflict).Once()

	set, err := suite.service.CommitJurisdictions(ctx, suite.advisorID, suite.practiceID, suite.profileID, entries, 2)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(set)
	suite.mockChangeLog.AssertNotCalled(suite.T(), "RecordChange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestCommitJurisdictions_ClientCannotWrite() {
	ctx := context.Background()
	clientID := suite.profile.ClientUserID
	clientMembership := &domain.UserPractice{UserID: clientID, PracticeID: suite.practiceID, Role: domain.RoleClient}

	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, clientID, suite.practiceID).Return(clientMembership, nil).Once()

	set, err := suite.service.CommitJurisdictions(ctx, clientID, suite.practiceID, suite.profileID, nil, 3)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(set)
}

func (suite *AllocationServiceTestSuite) TestChangeRegime_SameRegimeNoOp() {
	ctx := context.Background()

	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.advisorID, suite.practiceID).Return(suite.membership, nil).Once()

	result, err := suite.service.ChangeRegime(ctx, suite.advisorID, suite.practiceID, suite.profileID, domain.RegimeConvenio, false, 3)

	suite.Require().NoError(err)
	suite.False(result.RequiresConfirmation)
	suite.Equal(suite.profile, result.Profile)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "SwitchRegime", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestChangeRegime_UnknownRegime() {
	ctx := context.Background()

	result, err := suite.service.ChangeRegime(ctx, suite.advisorID, suite.practiceID, suite.profileID, domain.IIBBRegime("BOGUS"), false, 3)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
}

func (suite *AllocationServiceTestSuite) TestChangeRegime_LeavingBearingRegimeNeedsConfirmation() {
	ctx := context.Background()
	existing := []domain.Jurisdiction{{Region: domain.RegionCABA}}

	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.advisorID, suite.practiceID).Return(suite.membership, nil).Once()
	suite.mockFiscalRepo.On("FindJurisdictionsByProfile", ctx, suite.profileID).Return(existing, nil).Once()

	result, err := suite.service.ChangeRegime(ctx, suite.advisorID, suite.practiceID, suite.profileID, domain.RegimeMonotributo, false, 3)

	suite.Require().NoError(err)
	suite.True(result.RequiresConfirmation)
	suite.Nil(result.Profile)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "SwitchRegime", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestChangeRegime_ConfirmedDropsEntries() {
	ctx := context.Background()
	existing := []domain.Jurisdiction{{Region: domain.RegionCABA}}
	updated := &domain.FiscalProfile{
		ProfileID:    suite.profileID,
		PracticeID:   suite.practiceID,
		ClientUserID: suite.profile.ClientUserID,
		Regime:       domain.RegimeMonotributo,
		Version:      4,
	}

	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.advisorID, suite.practiceID).Return(suite.membership, nil).Once()
	suite.mockFiscalRepo.On("FindJurisdictionsByProfile", ctx, suite.profileID).Return(existing, nil).Once()
	suite.mockFiscalRepo.On("SwitchRegime", ctx, suite.profileID, domain.RegimeMonotributo, true, int64(3), suite.advisorID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockChangeLog.On("RecordChange", ctx, suite.profile.ClientUserID, suite.profileID, mock.MatchedBy(func(change portssvc.FieldChange) bool {
		return change.Category == domain.CategoryJurisdiction &&
			change.PreviousValue == string(domain.RegimeConvenio) &&
			change.NewValue == string(domain.RegimeMonotributo)
	}), suite.advisorID).Return(&domain.ChangeEntry{}, nil).Once()
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(updated, nil).Once()

	result, err := suite.service.ChangeRegime(ctx, suite.advisorID, suite.practiceID, suite.profileID, domain.RegimeMonotributo, true, 3)

	suite.Require().NoError(err)
	suite.False(result.RequiresConfirmation)
	suite.Equal(domain.RegimeMonotributo, result.Profile.Regime)
	suite.mockFiscalRepo.AssertExpectations(suite.T())
	suite.mockChangeLog.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestChangeRegime_NoEntriesSkipsConfirmation() {
	ctx := context.Background()
	updated := &domain.FiscalProfile{ProfileID: suite.profileID, PracticeID: suite.practiceID, Regime: domain.RegimeExempt, Version: 4}

	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.advisorID, suite.practiceID).Return(suite.membership, nil).Once()
	suite.mockFiscalRepo.On("FindJurisdictionsByProfile", ctx, suite.profileID).Return(nil, nil).Once()
	suite.mockFiscalRepo.On("SwitchRegime", ctx, suite.profileID, domain.RegimeExempt, false, int64(3), suite.advisorID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockChangeLog.On("RecordChange", ctx, suite.profile.ClientUserID, suite.profileID, mock.Anything, suite.advisorID).Return(&domain.ChangeEntry{}, nil).Once()
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(updated, nil).Once()

	result, err := suite.service.ChangeRegime(ctx, suite.advisorID, suite.practiceID, suite.profileID, domain.RegimeExempt, false, 3)

	suite.Require().NoError(err)
	suite.False(result.RequiresConfirmation)
	suite.Equal(domain.RegimeExempt, result.Profile.Regime)
}

func (suite *AllocationServiceTestSuite) TestChangeRegime_StaleVersion() {
	ctx := context.Background()

	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.advisorID, suite.practiceID).Return(suite.membership, nil).Once()
	suite.mockFiscalRepo.On("FindJurisdictionsByProfile", ctx, suite.profileID).Return(nil, nil).Once()
	suite.mockFiscalRepo.On("SwitchRegime", ctx, suite.profileID, domain.RegimeExempt, false, int64(1), suite.advisorID, mock.AnythingOfType("time.Time")).Return(apperrors.ErrConflict).Once()

	result, err := suite.service.ChangeRegime(ctx, suite.advisorID, suite.practiceID, suite.profileID, domain.RegimeExempt, false, 1)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(result)
	suite.mockChangeLog.AssertNotCalled(suite.T(), "RecordChange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAllocationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AllocationServiceTestSuite))
}
