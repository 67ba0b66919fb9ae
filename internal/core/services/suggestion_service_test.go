package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/estudiolink/estudio_backend/internal/apperrors"
	"github.com/estudiolink/estudio_backend/internal/core/domain"
	portsrepo "github.com/estudiolink/estudio_backend/internal/core/ports/repositories"
	portssvc "github.com/estudiolink/estudio_backend/internal/core/ports/services"
	"github.com/estudiolink/estudio_backend/internal/core/services"
	"github.com/estudiolink/estudio_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// SuggestionServiceTestSuite defines the test suite for the suggestion service
type SuggestionServiceTestSuite struct {
	suite.Suite
	mockSuggestionRepo *MockSuggestionRepository
	mockFiscalRepo     *MockFiscalRepository
	mockPracticeRepo   *MockPracticeReader
	mockChangeLog      *MockChangeLogService
	service            portssvc.SuggestionSvcFacade

	clientID     string
	reviewerID   string
	practiceID   string
	profileID    string
	suggestionID string
	profile      *domain.FiscalProfile
	pending      *domain.Suggestion
}

func (suite *SuggestionServiceTestSuite) SetupTest() {
	suite.mockSuggestionRepo = new(MockSuggestionRepository)
	suite.mockFiscalRepo = new(MockFiscalRepository)
	suite.mockPracticeRepo = new(MockPracticeReader)
	suite.mockChangeLog = new(MockChangeLogService)
	suite.service = services.NewSuggestionService(suite.mockSuggestionRepo, suite.mockFiscalRepo, suite.mockPracticeRepo, suite.mockChangeLog)

	suite.clientID = uuid.NewString()
	suite.reviewerID = uuid.NewString()
	suite.practiceID = uuid.NewString()
	suite.profileID = uuid.NewString()
	suite.suggestionID = uuid.NewString()
	suite.profile = &domain.FiscalProfile{
		ProfileID:    suite.profileID,
		PracticeID:   suite.practiceID,
		ClientUserID: suite.clientID,
	}
	suite.pending = &domain.Suggestion{
		SuggestionID:   suite.suggestionID,
		PracticeID:     suite.practiceID,
		ProfileID:      suite.profileID,
		SubmitterID:    suite.clientID,
		TargetTable:    "fiscal_profiles",
		TargetField:    "payment_method",
		FieldLabel:     "Forma de pago",
		CurrentValue:   "VEP",
		SuggestedValue: "DIRECT_DEBIT",
		Status:         domain.SuggestionPending,
		CreatedAt:      time.Now(),
	}
}

func (suite *SuggestionServiceTestSuite) clientMembership(userID string) *domain.UserPractice {
	return &domain.UserPractice{UserID: userID, PracticeID: suite.practiceID, Role: domain.RoleClient}
}

func (suite *SuggestionServiceTestSuite) TestSubmit_Success() {
	ctx := context.Background()
	req := dto.CreateSuggestionRequest{
		ProfileID:      suite.profileID,
		TargetTable:    "fiscal_profiles",
		TargetField:    "payment_method",
		FieldLabel:     "Forma de pago",
		CurrentValue:   "VEP",
		SuggestedValue: "DIRECT_DEBIT",
		Comment:        "Me debitan del banco ahora",
	}

	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.clientID, suite.practiceID).Return(suite.clientMembership(suite.clientID), nil).Once()
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockSuggestionRepo.On("SaveSuggestion", ctx, mock.MatchedBy(func(s domain.Suggestion) bool {
		return s.SuggestionID != "" &&
			s.Status == domain.SuggestionPending &&
			s.PracticeID == suite.practiceID &&
			s.SubmitterID == suite.clientID &&
			s.SuggestedValue == "DIRECT_DEBIT"
	})).Return(nil).Once()

	suggestion, err := suite.service.Submit(ctx, suite.clientID, suite.practiceID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.SuggestionPending, suggestion.Status)
	suite.Nil(suggestion.ReviewedAt)
	suite.mockSuggestionRepo.AssertExpectations(suite.T())
}

func (suite *SuggestionServiceTestSuite) TestSubmit_AdvisorForbidden() {
	ctx := context.Background()
	advisorMembership := &domain.UserPractice{UserID: suite.reviewerID, PracticeID: suite.practiceID, Role: domain.RoleAdvisor}

	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.reviewerID, suite.practiceID).Return(advisorMembership, nil).Once()

	suggestion, err := suite.service.Submit(ctx, suite.reviewerID, suite.practiceID, dto.CreateSuggestionRequest{ProfileID: suite.profileID})

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(suggestion)
	suite.mockSuggestionRepo.AssertNotCalled(suite.T(), "SaveSuggestion", mock.Anything, mock.Anything)
}

func (suite *SuggestionServiceTestSuite) TestSubmit_NotProfileOwner() {
	ctx := context.Background()
	strangerID := uuid.NewString()

	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, strangerID, suite.practiceID).Return(suite.clientMembership(strangerID), nil).Once()
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()

	suggestion, err := suite.service.Submit(ctx, strangerID, suite.practiceID, dto.CreateSuggestionRequest{ProfileID: suite.profileID, TargetTable: "fiscal_profiles"})

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(suggestion)
}

func (suite *SuggestionServiceTestSuite) TestSubmit_UnsupportedTargetTable() {
	ctx := context.Background()

	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.clientID, suite.practiceID).Return(suite.clientMembership(suite.clientID), nil).Once()
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()

	suggestion, err := suite.service.Submit(ctx, suite.clientID, suite.practiceID, dto.CreateSuggestionRequest{ProfileID: suite.profileID, TargetTable: "users"})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(suggestion)
}

func (suite *SuggestionServiceTestSuite) TestSubmit_PracticeMismatch() {
	ctx := context.Background()
	otherPractice := uuid.NewString()
	membership := &domain.UserPractice{UserID: suite.clientID, PracticeID: otherPractice, Role: domain.RoleClient}

	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.clientID, otherPractice).Return(membership, nil).Once()
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()

	suggestion, err := suite.service.Submit(ctx, suite.clientID, otherPractice, dto.CreateSuggestionRequest{ProfileID: suite.profileID})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(suggestion)
}

func (suite *SuggestionServiceTestSuite) TestReview_AcceptedAppliesSuggestedValue() {
	ctx := context.Background()
	req := dto.ReviewSuggestionRequest{Outcome: domain.SuggestionAccepted}
	reviewedAt := time.Now()
	reviewed := &domain.Suggestion{}
	*reviewed = *suite.pending
	reviewed.Status = domain.SuggestionAccepted
	reviewed.ReviewerID = suite.reviewerID
	reviewed.AppliedValue = "DIRECT_DEBIT"
	reviewed.ReviewedAt = &reviewedAt

	suite.mockSuggestionRepo.On("FindSuggestionByID", ctx, suite.suggestionID).Return(suite.pending, nil).Once()
	suite.mockSuggestionRepo.On("ApplyReview", ctx, mock.MatchedBy(func(review portsrepo.SuggestionReview) bool {
		return review.SuggestionID == suite.suggestionID &&
			review.Outcome == domain.SuggestionAccepted &&
			review.ApplyToField &&
			review.AppliedValue == "DIRECT_DEBIT" &&
			review.TargetField == "payment_method" &&
			review.ProfileID == suite.profileID
	})).Return(nil).Once()
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockChangeLog.On("RecordChange", ctx, suite.clientID, suite.profileID, mock.MatchedBy(func(change portssvc.FieldChange) bool {
		return change.Category == domain.CategoryPayment &&
			change.NewValue == "DIRECT_DEBIT" &&
			change.Metadata["suggestion_id"] == suite.suggestionID
	}), suite.reviewerID).Return(&domain.ChangeEntry{}, nil).Once()
	suite.mockSuggestionRepo.On("FindSuggestionByID", ctx, suite.suggestionID).Return(reviewed, nil).Once()

	result, err := suite.service.Review(ctx, suite.reviewerID, suite.practiceID, suite.suggestionID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.SuggestionAccepted, result.Status)
	suite.Equal(suite.reviewerID, result.ReviewerID)
	suite.mockSuggestionRepo.AssertExpectations(suite.T())
	suite.mockChangeLog.AssertExpectations(suite.T())
}

func (suite *SuggestionServiceTestSuite) TestReview_ModifiedValueWins() {
	ctx := context.Background()
	req := dto.ReviewSuggestionRequest{
		Outcome:      domain.SuggestionAcceptedWithModif,
		AppliedValue: "IN_PERSON",
		Note:         "Debito no disponible para este banco",
	}
	reviewed := &domain.Suggestion{}
	*reviewed = *suite.pending
	reviewed.Status = domain.SuggestionAcceptedWithModif
	reviewed.AppliedValue = "IN_PERSON"

	suite.mockSuggestionRepo.On("FindSuggestionByID", ctx, suite.suggestionID).Return(suite.pending, nil).Once()
	suite.mockSuggestionRepo.On("ApplyReview", ctx, mock.MatchedBy(func(review portsrepo.SuggestionReview) bool {
		return review.AppliedValue == "IN_PERSON" && review.ApplyToField && review.Note == "Debito no disponible para este banco"
	})).Return(nil).Once()
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockChangeLog.On("RecordChange", ctx, suite.clientID, suite.profileID, mock.MatchedBy(func(change portssvc.FieldChange) bool {
		return change.NewValue == "IN_PERSON"
	}), suite.reviewerID).Return(&domain.ChangeEntry{}, nil).Once()
	suite.mockSuggestionRepo.On("FindSuggestionByID", ctx, suite.suggestionID).Return(reviewed, nil).Once()

	result, err := suite.service.Review(ctx, suite.reviewerID, suite.practiceID, suite.suggestionID, req)

	suite.Require().NoError(err)
	suite.Equal("IN_PERSON", result.AppliedValue)
}

func (suite *SuggestionServiceTestSuite) TestReview_RejectedWritesNothing() {
	ctx := context.Background()
	req := dto.ReviewSuggestionRequest{Outcome: domain.SuggestionRejected, Note: "El valor actual es correcto"}
	reviewed := &domain.Suggestion{}
	*reviewed = *suite.pending
	reviewed.Status = domain.SuggestionRejected

	suite.mockSuggestionRepo.On("FindSuggestionByID", ctx, suite.suggestionID).Return(suite.pending, nil).Once()
	suite.mockSuggestionRepo.On("ApplyReview", ctx, mock.MatchedBy(func(review portsrepo.SuggestionReview) bool {
		return review.Outcome == domain.SuggestionRejected &&
			!review.ApplyToField &&
			review.AppliedValue == ""
	})).Return(nil).Once()
	suite.mockSuggestionRepo.On("FindSuggestionByID", ctx, suite.suggestionID).Return(reviewed, nil).Once()

	result, err := suite.service.Review(ctx, suite.reviewerID, suite.practiceID, suite.suggestionID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.SuggestionRejected, result.Status)
	suite.mockChangeLog.AssertNotCalled(suite.T(), "RecordChange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SuggestionServiceTestSuite) TestReview_AlreadyReviewed() {
	ctx := context.Background()
	req := dto.ReviewSuggestionRequest{Outcome: domain.SuggestionAccepted}

	suite.mockSuggestionRepo.On("FindSuggestionByID", ctx, suite.suggestionID).Return(suite.pending, nil).Once()
	suite.mockSuggestionRepo.On("ApplyReview", ctx, mock.Anything).Return(apperrors.ErrConflict).Once()

	result, err := suite.service.Review(ctx, suite.reviewerID, suite.practiceID, suite.suggestionID, req)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(result)
	suite.mockChangeLog.AssertNotCalled(suite.T(), "RecordChange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SuggestionServiceTestSuite) TestReview_PendingIsNotAnOutcome() {
	ctx := context.Background()
	req := dto.ReviewSuggestionRequest{Outcome: domain.SuggestionPending}

	result, err := suite.service.Review(ctx, suite.reviewerID, suite.practiceID, suite.suggestionID, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.mockSuggestionRepo.AssertNotCalled(suite.T(), "ApplyReview", mock.Anything, mock.Anything)
}

func (suite *SuggestionServiceTestSuite) TestReview_PracticeMismatch() {
	ctx := context.Background()
	otherPractice := uuid.NewString()
	req := dto.ReviewSuggestionRequest{Outcome: domain.SuggestionAccepted}

	suite.mockSuggestionRepo.On("FindSuggestionByID", ctx, suite.suggestionID).Return(suite.pending, nil).Once()

	result, err := suite.service.Review(ctx, suite.reviewerID, otherPractice, suite.suggestionID, req)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(result)
}

func (suite *SuggestionServiceTestSuite) TestListForProfile_ClientSeesOwnRecord() {
	ctx := context.Background()
	suggestions := []domain.Suggestion{*suite.pending}

	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.clientID, suite.practiceID).Return(suite.clientMembership(suite.clientID), nil).Once()
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockSuggestionRepo.On("ListSuggestionsByProfile", ctx, suite.profileID, (*domain.SuggestionStatus)(nil)).Return(suggestions, nil).Once()

	result, err := suite.service.ListForProfile(ctx, suite.clientID, suite.practiceID, suite.profileID)

	suite.Require().NoError(err)
	suite.Len(result, 1)
}

func (suite *SuggestionServiceTestSuite) TestListForProfile_ClientOtherRecordForbidden() {
	ctx := context.Background()
	strangerID := uuid.NewString()

	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, strangerID, suite.practiceID).Return(suite.clientMembership(strangerID), nil).Once()
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()

	result, err := suite.service.ListForProfile(ctx, strangerID, suite.practiceID, suite.profileID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(result)
	suite.mockSuggestionRepo.AssertNotCalled(suite.T(), "ListSuggestionsByProfile", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SuggestionServiceTestSuite) TestListForProfile_NilResultNormalized() {
	ctx := context.Background()

	suite.mockPracticeRepo.On("FindUserPracticeRole", ctx, suite.clientID, suite.practiceID).Return(suite.clientMembership(suite.clientID), nil).Once()
	suite.mockFiscalRepo.On("FindProfileByID", ctx, suite.profileID).Return(suite.profile, nil).Once()
	suite.mockSuggestionRepo.On("ListSuggestionsByProfile", ctx, suite.profileID, (*domain.SuggestionStatus)(nil)).Return(nil, nil).Once()

	result, err := suite.service.ListForProfile(ctx, suite.clientID, suite.practiceID, suite.profileID)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *SuggestionServiceTestSuite) TestListPending() {
	ctx := context.Background()
	suggestions := []domain.Suggestion{*suite.pending}

	suite.mockSuggestionRepo.On("ListPendingByPractice", ctx, suite.practiceID).Return(suggestions, nil).Once()

	result, err := suite.service.ListPending(ctx, suite.reviewerID, suite.practiceID)

	suite.Require().NoError(err)
	suite.Len(result, 1)
	suite.mockSuggestionRepo.AssertExpectations(suite.T())
}

func TestSuggestionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SuggestionServiceTestSuite))
}
