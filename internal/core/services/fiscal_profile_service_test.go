package services_test

import (
	"context"
	"testing"

	"github.com/estudiolink/estudio_backend/internal/apperrors"
	"github.com/estudiolink/estudio_backend/internal/core/domain"
	portssvc "github.com/estudiolink/estudio_backend/internal/core/ports/services"
	"github.com/estudiolink/estudio_backend/internal/core/services"
	"github.com/estudiolink/estudio_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// FiscalProfileServiceTestSuite defines the test suite for the fiscal profile service
type FiscalProfileServiceTestSuite struct {
	suite.Suite
	mockFiscalRepo   *MockFiscalRepository
	mockPracticeRepo *MockPracticeReader
	mockUserRepo     *MockUserReader
	mockChangeLog    *MockChangeLogService
	service          portssvc.FiscalProfileSvcFacade

	advisorID  string
	clientID   string
	practiceID string
	profileID  string
	profile    *domain.FiscalProfile
}

func (suite *FiscalProfileServiceTestSuite) SetupTest() {
	suite.mockFiscalRepo = new(MockFiscalRepository)
	suite.mockPracticeRepo = new(MockPracticeReader)
	suite.mockUserRepo = new(MockUserReader)
	suite.mockChangeLog = new(MockChangeLogService)
	suite.service = services.NewFiscalProfileService(suite.mockFiscalRepo, suite.mockPracticeRepo, suite.mockUserRepo, suite.mockChangeLog)

	suite.advisorID = uuid.NewString()
	suite.clientID = uuid.NewString()
	suite.practiceID = uuid.NewString()
	suite.profileID = uuid.NewString()
	suite.profile = &domain.FiscalProfile{
		ProfileID:     suite.profileID,
		PracticeID:    suite.practiceID,
		ClientUserID:  suite.clientID,
		DisplayName:   "Panadería La Espiga",
		CUIT:          "30-71234567-1",
		Regime:        domain.RegimeConvenio,
		IIBBNumber:    "902-123456-7",
		PaymentMethod: domain.PaymentVEP,
		Version:       2,
	}
}

func (suite *FiscalProfileServiceTestSuite) membership(userID string, role domain.UserPracticeRole) *domain.UserPractice {
	return &domain.UserPractice{UserID: userID, PracticeID: suite.practiceID, Role: role}
}

func (suite *FiscalProfileServiceTestSuite) TestGetProfileByID_Success() {
	ctx := context.Background()
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil)
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.advisorID, suite.practiceID).
		Return(suite.membership(suite.advisorID, domain.RoleAdvisor), nil)

	profile, err := suite.service.GetProfileByID(ctx, suite.advisorID, suite.practiceID, suite.profileID)

	suite.Require().NoError(err)
	suite.Equal(suite.profileID, profile.ProfileID)
	suite.Equal("Panadería La Espiga", profile.DisplayName)
}

func (suite *FiscalProfileServiceTestSuite) TestGetProfileByID_PracticeMismatchLooksLikeNotFound() {
	ctx := context.Background()
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil)

	profile, err := suite.service.GetProfileByID(ctx, suite.advisorID, uuid.NewString(), suite.profileID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(profile)
	suite.mockPracticeRepo.AssertNotCalled(suite.T(), "FindUserPracticeRole", ctx, mock.Anything, mock.Anything)
}

func (suite *FiscalProfileServiceTestSuite) TestGetProfileByID_ClientSeesOwnRecord() {
	ctx := context.Background()
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil)
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.clientID, suite.practiceID).
		Return(suite.membership(suite.clientID, domain.RoleClient), nil)

	profile, err := suite.service.GetProfileByID(ctx, suite.clientID, suite.practiceID, suite.profileID)

	suite.Require().NoError(err)
	suite.Equal(suite.clientID, profile.ClientUserID)
}

func (suite *FiscalProfileServiceTestSuite) TestGetProfileByID_ClientOtherRecordForbidden() {
	ctx := context.Background()
	otherClientID := uuid.NewString()
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil)
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, otherClientID, suite.practiceID).
		Return(suite.membership(otherClientID, domain.RoleClient), nil)

	profile, err := suite.service.GetProfileByID(ctx, otherClientID, suite.practiceID, suite.profileID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(profile)
}

func (suite *FiscalProfileServiceTestSuite) TestListProfilesByPractice_DefaultsLimit() {
	ctx := context.Background()
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.advisorID, suite.practiceID).
		Return(suite.membership(suite.advisorID, domain.RoleAdvisor), nil)
	suite.mockFiscalRepo.On("ListProfilesByPractice", ctx, suite.practiceID, 20, 0).
		Return([]domain.FiscalProfile{*suite.profile}, nil)

	profiles, err := suite.service.ListProfilesByPractice(ctx, suite.advisorID, suite.practiceID, 0, 0)

	suite.Require().NoError(err)
	suite.Len(profiles, 1)
}

func (suite *FiscalProfileServiceTestSuite) TestListProfilesByPractice_NilResultNormalized() {
	ctx := context.Background()
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.advisorID, suite.practiceID).
		Return(suite.membership(suite.advisorID, domain.RoleAdvisor), nil)
	suite.mockFiscalRepo.On("ListProfilesByPractice", ctx, suite.practiceID, 20, 0).
		Return(nil, nil)

	profiles, err := suite.service.ListProfilesByPractice(ctx, suite.advisorID, suite.practiceID, 20, 0)

	suite.Require().NoError(err)
	suite.NotNil(profiles)
	suite.Empty(profiles)
}

func (suite *FiscalProfileServiceTestSuite) TestListProfilesByPractice_ClientForbidden() {
	ctx := context.Background()
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.clientID, suite.practiceID).
		Return(suite.membership(suite.clientID, domain.RoleClient), nil)

	profiles, err := suite.service.ListProfilesByPractice(ctx, suite.clientID, suite.practiceID, 20, 0)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(profiles)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "ListProfilesByPractice", ctx, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalProfileServiceTestSuite) TestCreateProfile_Success() {
	ctx := context.Background()
	req := dto.CreateFiscalProfileRequest{
		PracticeID:   suite.practiceID,
		ClientUserID: suite.clientID,
		DisplayName:  "Ferretería Mitre",
		CUIT:         "30-70987654-2",
		Regime:       domain.RegimeMonotributo,
	}
	suite.mockUserRepo.On("FindUserByID", ctx, suite.clientID).
		Return(&domain.User{UserID: suite.clientID, Name: "Marcos Peralta"}, nil)
	suite.mockFiscalRepo.On("SaveProfile", ctx, mock.MatchedBy(func(p domain.FiscalProfile) bool {
		return p.PracticeID == suite.practiceID &&
			p.ClientUserID == suite.clientID &&
			p.Regime == domain.RegimeMonotributo &&
			p.Version == 1 &&
			p.CreatedBy == suite.advisorID &&
			p.ProfileID != ""
	})).Return(nil)

	profile, err := suite.service.CreateProfile(ctx, suite.advisorID, req)

	suite.Require().NoError(err)
	suite.Equal("Ferretería Mitre", profile.DisplayName)
	suite.EqualValues(1, profile.Version)
	suite.mockFiscalRepo.AssertExpectations(suite.T())
}

func (suite *FiscalProfileServiceTestSuite) TestCreateProfile_UnknownRegime() {
	ctx := context.Background()
	req := dto.CreateFiscalProfileRequest{
		PracticeID:   suite.practiceID,
		ClientUserID: suite.clientID,
		DisplayName:  "Ferretería Mitre",
		CUIT:         "30-70987654-2",
		Regime:       domain.IIBBRegime("RESPONSABLE_INSCRIPTO"),
	}

	profile, err := suite.service.CreateProfile(ctx, suite.advisorID, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(profile)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", ctx, mock.Anything)
}

func (suite *FiscalProfileServiceTestSuite) TestCreateProfile_MissingClientUser() {
	ctx := context.Background()
	req := dto.CreateFiscalProfileRequest{
		PracticeID:   suite.practiceID,
		ClientUserID: suite.clientID,
		DisplayName:  "Ferretería Mitre",
		CUIT:         "30-70987654-2",
		Regime:       domain.RegimeLocal,
	}
	suite.mockUserRepo.On("FindUserByID", ctx, suite.clientID).Return(nil, apperrors.ErrNotFound)

	profile, err := suite.service.CreateProfile(ctx, suite.advisorID, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(profile)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "SaveProfile", ctx, mock.Anything)
}

func (suite *FiscalProfileServiceTestSuite) TestCreateProfile_DuplicatePassesThrough() {
	ctx := context.Background()
	req := dto.CreateFiscalProfileRequest{
		PracticeID:   suite.practiceID,
		ClientUserID: suite.clientID,
		DisplayName:  "Ferretería Mitre",
		CUIT:         "30-70987654-2",
		Regime:       domain.RegimeLocal,
	}
	suite.mockUserRepo.On("FindUserByID", ctx, suite.clientID).
		Return(&domain.User{UserID: suite.clientID}, nil)
	suite.mockFiscalRepo.On("SaveProfile", ctx, mock.AnythingOfType("domain.FiscalProfile")).
		Return(apperrors.ErrDuplicate)

	profile, err := suite.service.CreateProfile(ctx, suite.advisorID, req)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(profile)
}

func (suite *FiscalProfileServiceTestSuite) expectAdvisorLoad(ctx context.Context) {
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.advisorID, suite.practiceID).
		Return(suite.membership(suite.advisorID, domain.RoleAdvisor), nil)
}

func (suite *FiscalProfileServiceTestSuite) TestUpdateProfile_RecordsOneEntryPerChangedField() {
	ctx := context.Background()
	newName := "Panadería La Espiga SRL"
	newMethod := domain.PaymentDirectDebit
	req := dto.UpdateFiscalProfileRequest{
		DisplayName:   &newName,
		PaymentMethod: &newMethod,
		Reason:        "cambio de razón social",
	}
	suite.expectAdvisorLoad(ctx)
	suite.mockFiscalRepo.On("UpdateProfileFields", ctx, suite.profileID, mock.MatchedBy(func(fields map[string]any) bool {
		return len(fields) == 2 &&
			fields["display_name"] == newName &&
			fields["payment_method"] == string(newMethod)
	}), suite.advisorID, mock.AnythingOfType("time.Time")).Return(nil)

	suite.mockChangeLog.On("RecordChange", ctx, suite.clientID, suite.profileID,
		mock.MatchedBy(func(change portssvc.FieldChange) bool {
			return change.Category == domain.CategoryName &&
				change.PreviousValue == "Panadería La Espiga" &&
				change.NewValue == newName &&
				change.Metadata["reason"] == "cambio de razón social"
		}), suite.advisorID).Return(&domain.ChangeEntry{}, nil).Once()
	suite.mockChangeLog.On("RecordChange", ctx, suite.clientID, suite.profileID,
		mock.MatchedBy(func(change portssvc.FieldChange) bool {
			return change.Category == domain.CategoryPayment &&
				change.PreviousValue == string(domain.PaymentVEP) &&
				change.NewValue == string(newMethod)
		}), suite.advisorID).Return(&domain.ChangeEntry{}, nil).Once()

	updated := *suite.profile
	updated.DisplayName = newName
	updated.PaymentMethod = newMethod
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(&updated, nil).Once()

	profile, err := suite.service.UpdateProfile(ctx, suite.advisorID, suite.practiceID, suite.profileID, req)

	suite.Require().NoError(err)
	suite.Equal(newName, profile.DisplayName)
	suite.Equal(newMethod, profile.PaymentMethod)
	suite.mockChangeLog.AssertExpectations(suite.T())
}

func (suite *FiscalProfileServiceTestSuite) TestUpdateProfile_AuditFailureDoesNotFailUpdate() {
	ctx := context.Background()
	newName := "Panadería La Espiga SRL"
	newIIBB := "902-765432-1"
	req := dto.UpdateFiscalProfileRequest{
		DisplayName: &newName,
		IIBBNumber:  &newIIBB,
	}
	suite.expectAdvisorLoad(ctx)
	suite.mockFiscalRepo.On("UpdateProfileFields", ctx, suite.profileID, mock.Anything, suite.advisorID, mock.AnythingOfType("time.Time")).
		Return(nil)

	// The first history write fails; the second field must still be recorded
	suite.mockChangeLog.On("RecordChange", ctx, suite.clientID, suite.profileID,
		mock.MatchedBy(func(change portssvc.FieldChange) bool {
			return change.Category == domain.CategoryName
		}), suite.advisorID).Return(nil, assert.AnError).Once()
	suite.mockChangeLog.On("RecordChange", ctx, suite.clientID, suite.profileID,
		mock.MatchedBy(func(change portssvc.FieldChange) bool {
			return change.Category == domain.CategoryTaxAuthority && change.NewValue == newIIBB
		}), suite.advisorID).Return(&domain.ChangeEntry{}, nil).Once()

	updated := *suite.profile
	updated.DisplayName = newName
	updated.IIBBNumber = newIIBB
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(&updated, nil).Once()

	profile, err := suite.service.UpdateProfile(ctx, suite.advisorID, suite.practiceID, suite.profileID, req)

	suite.Require().NoError(err)
	suite.Equal(newIIBB, profile.IIBBNumber)
	suite.mockChangeLog.AssertExpectations(suite.T())
}

func (suite *FiscalProfileServiceTestSuite) TestUpdateProfile_NoFieldsIsNoOp() {
	ctx := context.Background()
	suite.expectAdvisorLoad(ctx)

	profile, err := suite.service.UpdateProfile(ctx, suite.advisorID, suite.practiceID, suite.profileID, dto.UpdateFiscalProfileRequest{Reason: "sin cambios"})

	suite.Require().NoError(err)
	suite.Equal(suite.profileID, profile.ProfileID)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "UpdateProfileFields", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockChangeLog.AssertNotCalled(suite.T(), "RecordChange", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalProfileServiceTestSuite) TestUpdateProfile_RepoWriteFailureSkipsHistory() {
	ctx := context.Background()
	newName := "Panadería La Espiga SRL"
	suite.expectAdvisorLoad(ctx)
	suite.mockFiscalRepo.On("UpdateProfileFields", ctx, suite.profileID, mock.Anything, suite.advisorID, mock.AnythingOfType("time.Time")).
		Return(assert.AnError)

	profile, err := suite.service.UpdateProfile(ctx, suite.advisorID, suite.practiceID, suite.profileID, dto.UpdateFiscalProfileRequest{DisplayName: &newName})

	suite.ErrorIs(err, assert.AnError)
	suite.Nil(profile)
	suite.mockChangeLog.AssertNotCalled(suite.T(), "RecordChange", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalProfileServiceTestSuite) TestUpdateProfile_ClientOtherRecordForbidden() {
	ctx := context.Background()
	otherClientID := uuid.NewString()
	newName := "Panadería La Espiga SRL"
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil)
	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, otherClientID, suite.practiceID).
		Return(suite.membership(otherClientID, domain.RoleClient), nil)

	profile, err := suite.service.UpdateProfile(ctx, otherClientID, suite.practiceID, suite.profileID, dto.UpdateFiscalProfileRequest{DisplayName: &newName})

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(profile)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "UpdateProfileFields", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFiscalProfileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FiscalProfileServiceTestSuite))
}
