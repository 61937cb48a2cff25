package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/temple-trust/temple_finance_app/internal/apperrors"
	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	portssvc "github.com/temple-trust/temple_finance_app/internal/core/ports/services"
	"github.com/temple-trust/temple_finance_app/internal/core/services"
	"github.com/temple-trust/temple_finance_app/internal/platform/events"
)

// --- Test Suite ---
// The classifier is wired over the real lifecycle service with mocked
// repositories, so a valid classification exercises the full path down to the
// repository call.
type ExceptionClassifierTestSuite struct {
	suite.Suite
	mockDonationRepo *MockDonationRepository
	classifier       portssvc.ExceptionClassifierSvc
}

func (suite *ExceptionClassifierTestSuite) SetupTest() {
	suite.mockDonationRepo = new(MockDonationRepository)
	lifecycle := services.NewLifecycleService(suite.mockDonationRepo, new(MockExpenseRepository), new(MockBudgetRequestRepository), events.NewNotifier())
	suite.classifier = services.NewExceptionClassifier(lifecycle)
}

func (suite *ExceptionClassifierTestSuite) TestClassify_Success() {
	ctx := context.Background()
	donationID := uuid.NewString()
	unmatched := &domain.Donation{DonationID: donationID, ReconStatus: domain.ReconUnmatched}

	suite.mockDonationRepo.On("FindDonationByID", ctx, donationID).Return(unmatched, nil).Once()
	suite.mockDonationRepo.On("MarkDonationException", ctx, donationID,
		domain.Exception{Type: domain.ExceptionDuplicate, Detail: "dup of txn 123"},
		mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

	donation, err := suite.classifier.Classify(ctx, donationID, "duplicate", "dup of txn 123", uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(donation.Exception)
	suite.Equal(domain.ExceptionDuplicate, donation.Exception.Type)
	suite.Equal("dup of txn 123", donation.Exception.Detail)
	suite.Equal(domain.ReconException, donation.ReconStatus)
	suite.mockDonationRepo.AssertExpectations(suite.T())
}

func (suite *ExceptionClassifierTestSuite) TestClassify_UnknownType() {
	ctx := context.Background()

	donation, err := suite.classifier.Classify(ctx, uuid.NewString(), "made-up-type", "some detail", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(donation)
	suite.ErrorIs(err, apperrors.ErrInvalidExceptionType)
	suite.mockDonationRepo.AssertNotCalled(suite.T(), "FindDonationByID")
}

func (suite *ExceptionClassifierTestSuite) TestClassify_MissingDetail() {
	ctx := context.Background()

	donation, err := suite.classifier.Classify(ctx, uuid.NewString(), "amount-mismatch", "   ", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(donation)
	suite.ErrorIs(err, apperrors.ErrMissingDetail)
	suite.mockDonationRepo.AssertNotCalled(suite.T(), "FindDonationByID")
}

func (suite *ExceptionClassifierTestSuite) TestClassify_EveryEnumeratedType() {
	ctx := context.Background()

	for _, excType := range []domain.ExceptionType{
		domain.ExceptionMissingProvider,
		domain.ExceptionAmountMismatch,
		domain.ExceptionDuplicate,
		domain.ExceptionFailedTransaction,
	} {
		donationID := uuid.NewString()
		unmatched := &domain.Donation{DonationID: donationID, ReconStatus: domain.ReconUnmatched}

		suite.mockDonationRepo.On("FindDonationByID", ctx, donationID).Return(unmatched, nil).Once()
		suite.mockDonationRepo.On("MarkDonationException", ctx, donationID,
			domain.Exception{Type: excType, Detail: "detail"},
			mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

		donation, err := suite.classifier.Classify(ctx, donationID, string(excType), "detail", uuid.NewString())

		suite.Require().NoError(err, "type %s", excType)
		suite.Equal(excType, donation.Exception.Type)
	}
	suite.mockDonationRepo.AssertExpectations(suite.T())
}

func (suite *ExceptionClassifierTestSuite) TestClassify_MatchedDonationFails() {
	ctx := context.Background()
	donationID := uuid.NewString()
	matched := &domain.Donation{DonationID: donationID, ReconStatus: domain.ReconMatched}

	suite.mockDonationRepo.On("FindDonationByID", ctx, donationID).Return(matched, nil).Once()

	donation, err := suite.classifier.Classify(ctx, donationID, "duplicate", "dup", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(donation)
	suite.ErrorIs(err, apperrors.ErrAlreadyTerminal)
}

// --- Run Suite ---
func TestExceptionClassifier(t *testing.T) {
	suite.Run(t, new(ExceptionClassifierTestSuite))
}
