package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
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
type LifecycleServiceTestSuite struct {
	suite.Suite
	mockDonationRepo *MockDonationRepository
	mockExpenseRepo  *MockExpenseRepository
	mockRequestRepo  *MockBudgetRequestRepository
	service          portssvc.LifecycleSvcFacade
}

func (suite *LifecycleServiceTestSuite) SetupTest() {
	suite.mockDonationRepo = new(MockDonationRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockRequestRepo = new(MockBudgetRequestRepository)
	suite.service = services.NewLifecycleService(suite.mockDonationRepo, suite.mockExpenseRepo, suite.mockRequestRepo, events.NewNotifier())
}

// --- Expense transitions ---

func (suite *LifecycleServiceTestSuite) TestApproveExpense_Success() {
	ctx := context.Background()
	approverUserID := uuid.NewString()
	expenseID := uuid.NewString()
	pending := &domain.Expense{ExpenseID: expenseID, Status: domain.ExpensePending, Amount: decimal.NewFromInt(100)}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(pending, nil).Once()
	suite.mockExpenseRepo.On("ApplyExpenseTransition", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Status == domain.ExpenseApproved && e.ApprovalDate != nil && e.LastUpdatedBy == approverUserID
	}), domain.ExpensePending, mock.MatchedBy(func(ev domain.TimelineEvent) bool {
		return ev.EventType == domain.EventExpenseApproved && ev.EntityID == expenseID && ev.EntityTable == "expenses"
	})).Return(nil).Once()

	expense, err := suite.service.ApproveExpense(ctx, expenseID, approverUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.Equal(domain.ExpenseApproved, expense.Status)
	suite.NotNil(expense.ApprovalDate)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *LifecycleServiceTestSuite) TestApproveExpense_NotPending() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	paid := &domain.Expense{ExpenseID: expenseID, Status: domain.ExpensePaid}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(paid, nil).Once()

	expense, err := suite.service.ApproveExpense(ctx, expenseID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *LifecycleServiceTestSuite) TestRejectExpense_Success() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	pending := &domain.Expense{ExpenseID: expenseID, Status: domain.ExpensePending}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(pending, nil).Once()
	suite.mockExpenseRepo.On("ApplyExpenseTransition", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Status == domain.ExpenseRejected && e.RejectionReason == "duplicate invoice"
	}), domain.ExpensePending, mock.MatchedBy(func(ev domain.TimelineEvent) bool {
		return ev.EventType == domain.EventExpenseRejected
	})).Return(nil).Once()

	expense, err := suite.service.RejectExpense(ctx, expenseID, "duplicate invoice", uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.ExpenseRejected, expense.Status)
	suite.Equal("duplicate invoice", expense.RejectionReason)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *LifecycleServiceTestSuite) TestRejectExpense_EmptyReason() {
	ctx := context.Background()

	expense, err := suite.service.RejectExpense(ctx, uuid.NewString(), "   ", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "FindExpenseByID")
}

func (suite *LifecycleServiceTestSuite) TestMarkExpensePaid_Success() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	approved := &domain.Expense{ExpenseID: expenseID, Status: domain.ExpenseApproved}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(approved, nil).Once()
	suite.mockExpenseRepo.On("ApplyExpenseTransition", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Status == domain.ExpensePaid
	}), domain.ExpenseApproved, mock.MatchedBy(func(ev domain.TimelineEvent) bool {
		return ev.EventType == domain.EventExpensePaid
	})).Return(nil).Once()

	expense, err := suite.service.MarkExpensePaid(ctx, expenseID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.ExpensePaid, expense.Status)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *LifecycleServiceTestSuite) TestMarkExpensePaid_PendingFails() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	pending := &domain.Expense{ExpenseID: expenseID, Status: domain.ExpensePending}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(pending, nil).Once()

	expense, err := suite.service.MarkExpensePaid(ctx, expenseID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *LifecycleServiceTestSuite) TestApproveExpense_RepoConflict() {
	// The repository guard loses the race: the row left pending between read
	// and write. The error surfaces unchanged.
	ctx := context.Background()
	expenseID := uuid.NewString()
	pending := &domain.Expense{ExpenseID: expenseID, Status: domain.ExpensePending}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(pending, nil).Once()
	suite.mockExpenseRepo.On("ApplyExpenseTransition", ctx, mock.Anything, domain.ExpensePending, mock.Anything).
		Return(apperrors.ErrInvalidTransition).Once()

	expense, err := suite.service.ApproveExpense(ctx, expenseID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

// --- Budget request transitions ---

func (suite *LifecycleServiceTestSuite) TestApproveBudgetRequest_DefaultsToRequestedAmount() {
	ctx := context.Background()
	requestID := uuid.NewString()
	requested := decimal.NewFromInt(5000)
	pending := &domain.BudgetRequest{RequestID: requestID, Status: domain.BudgetRequestPending, RequestedAmount: requested}

	suite.mockRequestRepo.On("FindBudgetRequestByID", ctx, requestID).Return(pending, nil).Once()
	suite.mockRequestRepo.On("ApplyBudgetRequestDecision", ctx, mock.MatchedBy(func(r domain.BudgetRequest) bool {
		return r.Status == domain.BudgetRequestApproved &&
			r.ApprovedAmount != nil && r.ApprovedAmount.Equal(requested) &&
			r.DecidedAt != nil
	}), mock.MatchedBy(func(ev domain.TimelineEvent) bool {
		return ev.EventType == domain.EventBudgetRequestApproved
	})).Return(nil).Once()

	request, err := suite.service.ApproveBudgetRequest(ctx, requestID, dto.ApproveBudgetRequestRequest{}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.BudgetRequestApproved, request.Status)
	suite.Require().NotNil(request.ApprovedAmount)
	suite.True(request.ApprovedAmount.Equal(requested))
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *LifecycleServiceTestSuite) TestApproveBudgetRequest_PartialAmount() {
	ctx := context.Background()
	requestID := uuid.NewString()
	pending := &domain.BudgetRequest{RequestID: requestID, Status: domain.BudgetRequestPending, RequestedAmount: decimal.NewFromInt(5000)}
	partial := decimal.NewFromInt(3000)

	suite.mockRequestRepo.On("FindBudgetRequestByID", ctx, requestID).Return(pending, nil).Once()
	suite.mockRequestRepo.On("ApplyBudgetRequestDecision", ctx, mock.MatchedBy(func(r domain.BudgetRequest) bool {
		return r.ApprovedAmount != nil && r.ApprovedAmount.Equal(partial) && r.ApprovalNotes == "partial funding"
	}), mock.Anything).Return(nil).Once()

	request, err := suite.service.ApproveBudgetRequest(ctx, requestID,
		dto.ApproveBudgetRequestRequest{ApprovedAmount: &partial, ApprovalNotes: "partial funding"}, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(request.ApprovedAmount.Equal(partial))
}

func (suite *LifecycleServiceTestSuite) TestApproveBudgetRequest_AlreadyDecided() {
	ctx := context.Background()
	requestID := uuid.NewString()
	decided := &domain.BudgetRequest{RequestID: requestID, Status: domain.BudgetRequestRejected}

	suite.mockRequestRepo.On("FindBudgetRequestByID", ctx, requestID).Return(decided, nil).Once()

	request, err := suite.service.ApproveBudgetRequest(ctx, requestID, dto.ApproveBudgetRequestRequest{}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(request)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *LifecycleServiceTestSuite) TestRejectBudgetRequest_EmptyReason() {
	ctx := context.Background()

	request, err := suite.service.RejectBudgetRequest(ctx, uuid.NewString(), "", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(request)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "FindBudgetRequestByID")
}

func (suite *LifecycleServiceTestSuite) TestRejectBudgetRequest_Success() {
	ctx := context.Background()
	requestID := uuid.NewString()
	pending := &domain.BudgetRequest{RequestID: requestID, Status: domain.BudgetRequestPending, RequestedAmount: decimal.NewFromInt(1000)}

	suite.mockRequestRepo.On("FindBudgetRequestByID", ctx, requestID).Return(pending, nil).Once()
	suite.mockRequestRepo.On("ApplyBudgetRequestDecision", ctx, mock.MatchedBy(func(r domain.BudgetRequest) bool {
		return r.Status == domain.BudgetRequestRejected && r.RejectionReason == "no funds this quarter" && r.DecidedAt != nil
	}), mock.MatchedBy(func(ev domain.TimelineEvent) bool {
		return ev.EventType == domain.EventBudgetRequestRejected
	})).Return(nil).Once()

	request, err := suite.service.RejectBudgetRequest(ctx, requestID, "no funds this quarter", uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.BudgetRequestRejected, request.Status)
	suite.NotNil(request.DecidedAt)
}

// --- Donation reconciliation transitions ---

func (suite *LifecycleServiceTestSuite) TestMatchDonation_Success() {
	ctx := context.Background()
	donationID := uuid.NewString()
	reviewerUserID := uuid.NewString()
	unmatched := &domain.Donation{DonationID: donationID, ReconStatus: domain.ReconUnmatched}

	suite.mockDonationRepo.On("FindDonationByID", ctx, donationID).Return(unmatched, nil).Once()
	suite.mockDonationRepo.On("MarkDonationMatched", ctx, donationID, "bank-stmt-2025-06-17", mock.MatchedBy(func(ev domain.TimelineEvent) bool {
		return ev.EventType == domain.EventDonationMatched && ev.EntityID == donationID
	}), reviewerUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	donation, err := suite.service.MatchDonation(ctx, donationID, "bank-stmt-2025-06-17", reviewerUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReconMatched, donation.ReconStatus)
	suite.True(donation.Reconciled)
	// The reviewer's reference survives the transition on the returned record.
	suite.Equal("bank-stmt-2025-06-17", donation.MatchedWith)
	suite.mockDonationRepo.AssertExpectations(suite.T())
}

func (suite *LifecycleServiceTestSuite) TestMatchDonation_AlreadyMatched() {
	ctx := context.Background()
	donationID := uuid.NewString()
	matched := &domain.Donation{DonationID: donationID, ReconStatus: domain.ReconMatched, Reconciled: true}

	suite.mockDonationRepo.On("FindDonationByID", ctx, donationID).Return(matched, nil).Once()

	donation, err := suite.service.MatchDonation(ctx, donationID, "", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(donation)
	suite.ErrorIs(err, apperrors.ErrAlreadyTerminal)
	suite.mockDonationRepo.AssertNotCalled(suite.T(), "MarkDonationMatched")
}

func (suite *LifecycleServiceTestSuite) TestMatchDonation_NotFound() {
	ctx := context.Background()
	donationID := uuid.NewString()

	suite.mockDonationRepo.On("FindDonationByID", ctx, donationID).Return(nil, apperrors.ErrNotFound).Once()

	donation, err := suite.service.MatchDonation(ctx, donationID, "", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(donation)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LifecycleServiceTestSuite) TestRecordDonationException_Success() {
	ctx := context.Background()
	donationID := uuid.NewString()
	exc := domain.Exception{Type: domain.ExceptionAmountMismatch, Detail: "bank shows 90, record shows 100"}
	unmatched := &domain.Donation{DonationID: donationID, ReconStatus: domain.ReconUnmatched}

	suite.mockDonationRepo.On("FindDonationByID", ctx, donationID).Return(unmatched, nil).Once()
	suite.mockDonationRepo.On("MarkDonationException", ctx, donationID, exc, mock.MatchedBy(func(ev domain.TimelineEvent) bool {
		return ev.EventType == domain.EventDonationException
	}), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

	donation, err := suite.service.RecordDonationException(ctx, donationID, exc, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.ReconException, donation.ReconStatus)
	suite.Require().NotNil(donation.Exception)
	suite.Equal(exc, *donation.Exception)
}

func (suite *LifecycleServiceTestSuite) TestRecordDonationException_MatchedFails() {
	ctx := context.Background()
	donationID := uuid.NewString()
	matched := &domain.Donation{DonationID: donationID, ReconStatus: domain.ReconMatched}

	suite.mockDonationRepo.On("FindDonationByID", ctx, donationID).Return(matched, nil).Once()

	donation, err := suite.service.RecordDonationException(ctx, donationID,
		domain.Exception{Type: domain.ExceptionDuplicate, Detail: "dup"}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(donation)
	suite.ErrorIs(err, apperrors.ErrAlreadyTerminal)
}

func (suite *LifecycleServiceTestSuite) TestRecordDonationException_Reclassify() {
	// A donation already in exception accepts a new classification; the
	// previous one is overwritten.
	ctx := context.Background()
	donationID := uuid.NewString()
	already := &domain.Donation{
		DonationID:  donationID,
		ReconStatus: domain.ReconException,
		Exception:   &domain.Exception{Type: domain.ExceptionMissingProvider, Detail: "no ref"},
	}
	newExc := domain.Exception{Type: domain.ExceptionDuplicate, Detail: "dup of txn 42"}

	suite.mockDonationRepo.On("FindDonationByID", ctx, donationID).Return(already, nil).Once()
	suite.mockDonationRepo.On("MarkDonationException", ctx, donationID, newExc, mock.Anything,
		mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

	donation, err := suite.service.RecordDonationException(ctx, donationID, newExc, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(newExc, *donation.Exception)
}

func (suite *LifecycleServiceTestSuite) TestRecordDonationException_RepoError() {
	ctx := context.Background()
	donationID := uuid.NewString()
	unmatched := &domain.Donation{DonationID: donationID, ReconStatus: domain.ReconUnmatched}
	expectedErr := assert.AnError

	suite.mockDonationRepo.On("FindDonationByID", ctx, donationID).Return(unmatched, nil).Once()
	suite.mockDonationRepo.On("MarkDonationException", ctx, donationID, mock.Anything, mock.Anything,
		mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(expectedErr).Once()

	donation, err := suite.service.RecordDonationException(ctx, donationID,
		domain.Exception{Type: domain.ExceptionFailedTransaction, Detail: "gateway timeout"}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(donation)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Suite ---
func TestLifecycleService(t *testing.T) {
	suite.Run(t, new(LifecycleServiceTestSuite))
}
