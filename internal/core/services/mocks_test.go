package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	portsrepo "github.com/temple-trust/temple_finance_app/internal/core/ports/repositories"
)

// --- Mock DonationRepository ---
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) SaveDonation(ctx context.Context, donation domain.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

func (m *MockDonationRepository) FindDonationByID(ctx context.Context, donationID string) (*domain.Donation, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) ListDonations(ctx context.Context, filter portsrepo.DonationListFilter) ([]domain.Donation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) UpdateDonation(ctx context.Context, donation domain.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

func (m *MockDonationRepository) MarkDonationMatched(ctx context.Context, donationID string, matchedWith string, event domain.TimelineEvent, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, donationID, matchedWith, event, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockDonationRepository) MarkDonationException(ctx context.Context, donationID string, exc domain.Exception, event domain.TimelineEvent, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, donationID, exc, event, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ExpenseListFilter) ([]domain.Expense, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) ApplyExpenseTransition(ctx context.Context, expense domain.Expense, fromStatus domain.ExpenseStatus, event domain.TimelineEvent) error {
	args := m.Called(ctx, expense, fromStatus, event)
	return args.Error(0)
}

// --- Mock BudgetRequestRepository ---
type MockBudgetRequestRepository struct {
	mock.Mock
}

func (m *MockBudgetRequestRepository) SaveBudgetRequest(ctx context.Context, request domain.BudgetRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockBudgetRequestRepository) UpdateBudgetRequest(ctx context.Context, request domain.BudgetRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockBudgetRequestRepository) FindBudgetRequestByID(ctx context.Context, requestID string) (*domain.BudgetRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetRequest), args.Error(1)
}

func (m *MockBudgetRequestRepository) ListBudgetRequests(ctx context.Context, filter portsrepo.BudgetRequestListFilter) ([]domain.BudgetRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetRequest), args.Error(1)
}

func (m *MockBudgetRequestRepository) ApplyBudgetRequestDecision(ctx context.Context, request domain.BudgetRequest, event domain.TimelineEvent) error {
	args := m.Called(ctx, request, event)
	return args.Error(0)
}

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) ListBudgets(ctx context.Context, filter portsrepo.BudgetListFilter) ([]domain.Budget, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

// --- Mock TimelineRepository ---
type MockTimelineRepository struct {
	mock.Mock
}

func (m *MockTimelineRepository) ListRecentEvents(ctx context.Context, limit int) ([]domain.TimelineEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimelineEvent), args.Error(1)
}

func (m *MockTimelineRepository) SaveEvent(ctx context.Context, event domain.TimelineEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockTimelineRepository) FindMissingLifecycleEvents(ctx context.Context) ([]domain.TimelineEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimelineEvent), args.Error(1)
}
