package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/temple-trust/temple_finance_app/internal/apperrors"
	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	portsrepo "github.com/temple-trust/temple_finance_app/internal/core/ports/repositories"
	portssvc "github.com/temple-trust/temple_finance_app/internal/core/ports/services"
	"github.com/temple-trust/temple_finance_app/internal/core/services"
	"github.com/temple-trust/temple_finance_app/internal/platform/events"
)

// --- Test Suite ---
// The reconciliation service is exercised over the real lifecycle service and
// classifier with mocked repositories underneath, which is how it is wired in
// the service container.
type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockDonationRepo *MockDonationRepository
	mockExpenseRepo  *MockExpenseRepository
	service          portssvc.ReconciliationSvcFacade
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockDonationRepo = new(MockDonationRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	lifecycle := services.NewLifecycleService(suite.mockDonationRepo, suite.mockExpenseRepo, new(MockBudgetRequestRepository), events.NewNotifier())
	classifier := services.NewExceptionClassifier(lifecycle)
	suite.service = services.NewReconciliationService(suite.mockDonationRepo, suite.mockExpenseRepo, lifecycle, classifier)
}

func (suite *ReconciliationServiceTestSuite) queueFixture() ([]domain.Donation, []domain.Expense) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	donations := []domain.Donation{
		{
			DonationID:     "don-matched",
			TransactionRef: "TXN-001",
			ProviderRef:    "pay_abc",
			NetAmount:      decimal.NewFromInt(100),
			ReceivedAt:     base.AddDate(0, 0, 3),
			ReconStatus:    domain.ReconMatched,
			Reconciled:     true,
			MatchedWith:    "stmt-0042",
		},
		{
			DonationID:     "don-unmatched",
			TransactionRef: "TXN-002",
			NetAmount:      decimal.NewFromInt(250),
			ReceivedAt:     base.AddDate(0, 0, 1),
			ReconStatus:    domain.ReconUnmatched,
		},
		{
			DonationID:     "don-exception",
			TransactionRef: "TXN-003",
			ProviderRef:    "pay_def",
			NetAmount:      decimal.NewFromInt(75),
			ReceivedAt:     base,
			ReconStatus:    domain.ReconException,
			Exception:      &domain.Exception{Type: domain.ExceptionAmountMismatch, Detail: "bank shows 70"},
		},
	}
	expenses := []domain.Expense{
		{
			ExpenseID:   "exp-paid",
			Vendor:      "Flower Supplier",
			Amount:      decimal.NewFromInt(40),
			ExpenseDate: base.AddDate(0, 0, 2),
			Status:      domain.ExpensePaid,
		},
		{
			ExpenseID:   "exp-approved",
			Vendor:      "Electrician",
			Amount:      decimal.NewFromInt(500),
			ExpenseDate: base.AddDate(0, 0, 4),
			Status:      domain.ExpenseApproved,
		},
		{
			ExpenseID:   "exp-rejected",
			Vendor:      "Caterer",
			Amount:      decimal.NewFromInt(900),
			ExpenseDate: base.AddDate(0, 0, 5),
			Status:      domain.ExpenseRejected,
		},
	}
	return donations, expenses
}

func (suite *ReconciliationServiceTestSuite) expectQueueFetch() {
	donations, expenses := suite.queueFixture()
	suite.mockDonationRepo.On("ListDonations", mock.Anything, portsrepo.DonationListFilter{}).Return(donations, nil).Once()
	suite.mockExpenseRepo.On("ListExpenses", mock.Anything, portsrepo.ExpenseListFilter{}).Return(expenses, nil).Once()
}

func (suite *ReconciliationServiceTestSuite) TestListItems_AllProjectsAndSorts() {
	ctx := context.Background()
	suite.expectQueueFetch()

	items, err := suite.service.ListItems(ctx, domain.FilterAll)

	suite.Require().NoError(err)
	// Rejected expense is excluded; the rest are newest first.
	suite.Require().Len(items, 5)
	suite.Equal("exp-approved", items[0].ItemID)
	suite.Equal("don-matched", items[1].ItemID)
	suite.Equal("exp-paid", items[2].ItemID)
	suite.Equal("don-unmatched", items[3].ItemID)
	suite.Equal("don-exception", items[4].ItemID)

	// Expense projection: vendor stands in for the provider ref, the expense
	// ID doubles as the transaction ref.
	suite.Equal(domain.ItemExpense, items[0].Type)
	suite.Equal("Electrician", items[0].ProviderRef)
	suite.Equal("exp-approved", items[0].TransactionRef)
	suite.Equal(domain.ReconUnmatched, items[0].Status)
	suite.Equal(domain.ReconMatched, items[2].Status)

	// Donation projection keeps the reconciliation state and exception, and the
	// match reference stays distinct from the provider ref.
	suite.Equal(domain.ItemDonation, items[1].Type)
	suite.Equal("stmt-0042", items[1].MatchedWith)
	suite.Equal("pay_abc", items[1].ProviderRef)
	suite.Require().NotNil(items[4].Exception)
	suite.Equal(domain.ExceptionAmountMismatch, items[4].Exception.Type)

	suite.mockDonationRepo.AssertExpectations(suite.T())
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestListItems_FilterMatched() {
	ctx := context.Background()
	suite.expectQueueFetch()

	items, err := suite.service.ListItems(ctx, domain.FilterMatched)

	suite.Require().NoError(err)
	suite.Require().Len(items, 2)
	suite.Equal("don-matched", items[0].ItemID)
	suite.Equal("exp-paid", items[1].ItemID)
}

func (suite *ReconciliationServiceTestSuite) TestListItems_FilterUnmatched() {
	ctx := context.Background()
	suite.expectQueueFetch()

	items, err := suite.service.ListItems(ctx, domain.FilterUnmatched)

	suite.Require().NoError(err)
	suite.Require().Len(items, 2)
	suite.Equal("exp-approved", items[0].ItemID)
	suite.Equal("don-unmatched", items[1].ItemID)
}

func (suite *ReconciliationServiceTestSuite) TestListItems_UnknownFilter() {
	ctx := context.Background()
	suite.expectQueueFetch()

	items, err := suite.service.ListItems(ctx, domain.ReconciliationFilter("bogus"))

	suite.Require().Error(err)
	suite.Nil(items)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReconciliationServiceTestSuite) TestListItems_DonationRepoError() {
	ctx := context.Background()
	suite.mockDonationRepo.On("ListDonations", mock.Anything, portsrepo.DonationListFilter{}).Return(nil, assert.AnError).Once()

	items, err := suite.service.ListItems(ctx, domain.FilterAll)

	suite.Require().Error(err)
	suite.Nil(items)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "ListExpenses")
}

func (suite *ReconciliationServiceTestSuite) TestMarkMatched_Donation() {
	ctx := context.Background()
	reviewerID := uuid.NewString()
	donation := &domain.Donation{
		DonationID:  "don-unmatched",
		ProviderRef: "pay_xyz",
		NetAmount:   decimal.NewFromInt(250),
		ReconStatus: domain.ReconUnmatched,
	}

	suite.mockDonationRepo.On("FindDonationByID", ctx, "don-unmatched").Return(donation, nil).Once()
	suite.mockDonationRepo.On("MarkDonationMatched", ctx, "don-unmatched", "UTR-20250617-778",
		mock.Anything, reviewerID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	item, err := suite.service.MarkMatched(ctx, "don-unmatched", "UTR-20250617-778", reviewerID)

	suite.Require().NoError(err)
	suite.Equal(domain.ItemDonation, item.Type)
	suite.Equal(domain.ReconMatched, item.Status)
	// The supplied reference is threaded through to the repository and comes
	// back on the projected item.
	suite.Equal("UTR-20250617-778", item.MatchedWith)
	suite.mockDonationRepo.AssertExpectations(suite.T())
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "FindExpenseByID")
}

func (suite *ReconciliationServiceTestSuite) TestMarkMatched_FallsBackToExpense() {
	ctx := context.Background()
	reviewerID := uuid.NewString()
	expense := &domain.Expense{
		ExpenseID: "exp-approved",
		Vendor:    "Electrician",
		Amount:    decimal.NewFromInt(500),
		Status:    domain.ExpenseApproved,
	}

	suite.mockDonationRepo.On("FindDonationByID", ctx, "exp-approved").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, "exp-approved").Return(expense, nil).Once()
	suite.mockExpenseRepo.On("ApplyExpenseTransition", ctx,
		mock.MatchedBy(func(e domain.Expense) bool { return e.Status == domain.ExpensePaid }),
		domain.ExpenseApproved, mock.Anything).Return(nil).Once()

	item, err := suite.service.MarkMatched(ctx, "exp-approved", "", reviewerID)

	suite.Require().NoError(err)
	suite.Equal(domain.ItemExpense, item.Type)
	suite.Equal(domain.ReconMatched, item.Status)
	suite.mockDonationRepo.AssertExpectations(suite.T())
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestMarkMatched_UnknownItem() {
	ctx := context.Background()
	itemID := uuid.NewString()

	suite.mockDonationRepo.On("FindDonationByID", ctx, itemID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, itemID).Return(nil, apperrors.ErrNotFound).Once()

	item, err := suite.service.MarkMatched(ctx, itemID, "", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReconciliationServiceTestSuite) TestMarkMatched_AlreadyMatchedDonation() {
	ctx := context.Background()
	donation := &domain.Donation{DonationID: "don-matched", ReconStatus: domain.ReconMatched}

	suite.mockDonationRepo.On("FindDonationByID", ctx, "don-matched").Return(donation, nil).Once()

	item, err := suite.service.MarkMatched(ctx, "don-matched", "stmt-0042", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrAlreadyTerminal)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "FindExpenseByID")
}

func (suite *ReconciliationServiceTestSuite) TestMarkException_Success() {
	ctx := context.Background()
	reviewerID := uuid.NewString()
	donation := &domain.Donation{
		DonationID:  "don-unmatched",
		NetAmount:   decimal.NewFromInt(250),
		ReconStatus: domain.ReconUnmatched,
	}

	suite.mockDonationRepo.On("FindDonationByID", ctx, "don-unmatched").Return(donation, nil).Once()
	suite.mockDonationRepo.On("MarkDonationException", ctx, "don-unmatched",
		domain.Exception{Type: domain.ExceptionMissingProvider, Detail: "no gateway ref on record"},
		mock.Anything, reviewerID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	item, err := suite.service.MarkException(ctx, "don-unmatched", "missing-provider", "no gateway ref on record", reviewerID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReconException, item.Status)
	suite.Require().NotNil(item.Exception)
	suite.Equal(domain.ExceptionMissingProvider, item.Exception.Type)
	suite.mockDonationRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestMarkException_InvalidType() {
	ctx := context.Background()

	item, err := suite.service.MarkException(ctx, uuid.NewString(), "not-a-type", "detail", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrInvalidExceptionType)
	suite.mockDonationRepo.AssertNotCalled(suite.T(), "FindDonationByID")
}

func (suite *ReconciliationServiceTestSuite) TestStats_CountsQueue() {
	ctx := context.Background()
	suite.expectQueueFetch()

	stats, err := suite.service.Stats(ctx)

	suite.Require().NoError(err)
	suite.Equal(5, stats.Total)
	suite.Equal(2, stats.Matched)
	suite.Equal(2, stats.Unmatched)
	suite.Equal(1, stats.ExceptionCounts[domain.ExceptionAmountMismatch])
	suite.Len(stats.ExceptionCounts, 1)
	// Only don-unmatched carries an empty provider ref; expense items always
	// have their vendor.
	suite.Equal(1, stats.MissingProviderRef)
}

// --- Run Suite ---
func TestReconciliationService(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
