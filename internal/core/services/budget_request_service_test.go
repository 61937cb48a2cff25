package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/temple-trust/temple_finance_app/internal/apperrors"
	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	portssvc "github.com/temple-trust/temple_finance_app/internal/core/ports/services"
	"github.com/temple-trust/temple_finance_app/internal/core/services"
	"github.com/temple-trust/temple_finance_app/internal/dto"
	"github.com/temple-trust/temple_finance_app/internal/platform/events"
)

// --- Test Suite ---
type BudgetRequestServiceTestSuite struct {
	suite.Suite
	mockRepo *MockBudgetRequestRepository
	service  portssvc.BudgetRequestSvcFacade
}

func (suite *BudgetRequestServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBudgetRequestRepository)
	suite.service = services.NewBudgetRequestService(suite.mockRepo, events.NewNotifier())
}

func (suite *BudgetRequestServiceTestSuite) TestCreateBudgetRequest_Success() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	req := dto.CreateBudgetRequestRequest{
		Title:           "Hall renovation",
		Purpose:         "Repair the main hall roof",
		CommunityID:     uuid.NewString(),
		RequestedAmount: decimal.NewFromInt(5000),
	}

	suite.mockRepo.On("SaveBudgetRequest", ctx, mock.MatchedBy(func(r domain.BudgetRequest) bool {
		return r.Status == domain.BudgetRequestPending && r.CreatedBy == creatorID && r.DecidedAt == nil
	})).Return(nil).Once()

	created, err := suite.service.CreateBudgetRequest(ctx, req, creatorID)

	suite.Require().NoError(err)
	suite.NotEmpty(created.RequestID)
	suite.Equal(domain.BudgetRequestPending, created.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetRequestServiceTestSuite) TestCreateBudgetRequest_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateBudgetRequestRequest{Title: "x", Purpose: "y", RequestedAmount: decimal.Zero}

	created, err := suite.service.CreateBudgetRequest(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBudgetRequest")
}

func (suite *BudgetRequestServiceTestSuite) TestUpdateBudgetRequest_Pending() {
	ctx := context.Background()
	requestID := uuid.NewString()
	existing := &domain.BudgetRequest{
		RequestID:       requestID,
		Title:           "Hall renovation",
		RequestedAmount: decimal.NewFromInt(5000),
		Status:          domain.BudgetRequestPending,
	}
	newAmount := decimal.NewFromInt(7500)

	suite.mockRepo.On("FindBudgetRequestByID", ctx, requestID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateBudgetRequest", ctx, mock.MatchedBy(func(r domain.BudgetRequest) bool {
		return r.RequestedAmount.Equal(newAmount) && r.Status == domain.BudgetRequestPending
	})).Return(nil).Once()

	updated, err := suite.service.UpdateBudgetRequest(ctx, requestID, dto.UpdateBudgetRequestRequest{RequestedAmount: &newAmount}, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(updated.RequestedAmount.Equal(newAmount))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetRequestServiceTestSuite) TestUpdateBudgetRequest_DecidedIsImmutable() {
	ctx := context.Background()
	requestID := uuid.NewString()
	decided := &domain.BudgetRequest{
		RequestID:       requestID,
		RequestedAmount: decimal.NewFromInt(5000),
		Status:          domain.BudgetRequestApproved,
	}
	newTitle := "New title"

	suite.mockRepo.On("FindBudgetRequestByID", ctx, requestID).Return(decided, nil).Once()

	updated, err := suite.service.UpdateBudgetRequest(ctx, requestID, dto.UpdateBudgetRequestRequest{Title: &newTitle}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBudgetRequest")
}

func (suite *BudgetRequestServiceTestSuite) TestUpdateBudgetRequest_NonPositiveAmount() {
	ctx := context.Background()
	requestID := uuid.NewString()
	existing := &domain.BudgetRequest{
		RequestID:       requestID,
		RequestedAmount: decimal.NewFromInt(5000),
		Status:          domain.BudgetRequestPending,
	}
	badAmount := decimal.NewFromInt(-10)

	suite.mockRepo.On("FindBudgetRequestByID", ctx, requestID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateBudgetRequest(ctx, requestID, dto.UpdateBudgetRequestRequest{RequestedAmount: &badAmount}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBudgetRequest")
}

func (suite *BudgetRequestServiceTestSuite) TestUpdateBudgetRequest_NotFound() {
	ctx := context.Background()
	requestID := uuid.NewString()

	suite.mockRepo.On("FindBudgetRequestByID", ctx, requestID).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.UpdateBudgetRequest(ctx, requestID, dto.UpdateBudgetRequestRequest{}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Suite ---
func TestBudgetRequestService(t *testing.T) {
	suite.Run(t, new(BudgetRequestServiceTestSuite))
}
