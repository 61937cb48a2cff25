package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/temple-trust/temple_finance_app/internal/apperrors"
	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	portsrepo "github.com/temple-trust/temple_finance_app/internal/core/ports/repositories"
	portssvc "github.com/temple-trust/temple_finance_app/internal/core/ports/services"
	"github.com/temple-trust/temple_finance_app/internal/dto"
	"github.com/temple-trust/temple_finance_app/internal/platform/events"
)

// lifecycleService is the single owner of status transitions. Every
// successful transition persists the new status and appends a timeline event
// as one logical unit; the repositories run both writes in one database
// transaction, guarded on the status the row was read in.
type lifecycleService struct {
	BaseService
	donationRepo portsrepo.DonationRepositoryFacade
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	requestRepo  portsrepo.BudgetRequestRepositoryFacade
	publisher    events.Publisher
}

// NewLifecycleService creates a new LifecycleService.
func NewLifecycleService(
	donationRepo portsrepo.DonationRepositoryFacade,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	requestRepo portsrepo.BudgetRequestRepositoryFacade,
	publisher events.Publisher,
) portssvc.LifecycleSvcFacade {
	return &lifecycleService{
		donationRepo: donationRepo,
		expenseRepo:  expenseRepo,
		requestRepo:  requestRepo,
		publisher:    publisher,
	}
}

var _ portssvc.LifecycleSvcFacade = (*lifecycleService)(nil)

func timelineEvent(eventType domain.TimelineEventType, table, entityID string, at time.Time) domain.TimelineEvent {
	return domain.TimelineEvent{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		EntityTable: table,
		EntityID:    entityID,
		CreatedAt:   at,
	}
}

// --- Expense transitions ---

// ApproveExpense transitions pending -> approved, stamping the approval date.
func (s *lifecycleService) ApproveExpense(ctx context.Context, expenseID string, approverUserID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.Status != domain.ExpensePending {
		return nil, fmt.Errorf("%w: expense is %s, only pending expenses can be approved", apperrors.ErrInvalidTransition, expense.Status)
	}

	now := time.Now().UTC()
	expense.Status = domain.ExpenseApproved
	expense.ApprovalDate = &now
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = approverUserID

	event := timelineEvent(domain.EventExpenseApproved, events.TableExpenses, expense.ExpenseID, now)
	if err := s.expenseRepo.ApplyExpenseTransition(ctx, *expense, domain.ExpensePending, event); err != nil {
		s.LogError(ctx, err, "Failed to approve expense", slog.String("expense_id", expenseID))
		return nil, err
	}

	s.publisher.Publish(events.ChangeEvent{Table: events.TableExpenses, Op: events.OpUpdate})
	s.LogInfo(ctx, "Expense approved", slog.String("expense_id", expenseID))
	return expense, nil
}

// RejectExpense transitions pending -> rejected. The reason is mandatory and
// the approval date records when the decision was made.
func (s *lifecycleService) RejectExpense(ctx context.Context, expenseID string, reason string, approverUserID string) (*domain.Expense, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.Status != domain.ExpensePending {
		return nil, fmt.Errorf("%w: expense is %s, only pending expenses can be rejected", apperrors.ErrInvalidTransition, expense.Status)
	}

	now := time.Now().UTC()
	expense.Status = domain.ExpenseRejected
	expense.RejectionReason = reason
	expense.ApprovalDate = &now
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = approverUserID

	event := timelineEvent(domain.EventExpenseRejected, events.TableExpenses, expense.ExpenseID, now)
	if err := s.expenseRepo.ApplyExpenseTransition(ctx, *expense, domain.ExpensePending, event); err != nil {
		s.LogError(ctx, err, "Failed to reject expense", slog.String("expense_id", expenseID))
		return nil, err
	}

	s.publisher.Publish(events.ChangeEvent{Table: events.TableExpenses, Op: events.OpUpdate})
	s.LogInfo(ctx, "Expense rejected", slog.String("expense_id", expenseID))
	return expense, nil
}

// MarkExpensePaid transitions approved -> paid, the terminal settled state.
func (s *lifecycleService) MarkExpensePaid(ctx context.Context, expenseID string, updaterUserID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.Status != domain.ExpenseApproved {
		return nil, fmt.Errorf("%w: expense is %s, only approved expenses can be paid", apperrors.ErrInvalidTransition, expense.Status)
	}

	now := time.Now().UTC()
	expense.Status = domain.ExpensePaid
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = updaterUserID

	event := timelineEvent(domain.EventExpensePaid, events.TableExpenses, expense.ExpenseID, now)
	if err := s.expenseRepo.ApplyExpenseTransition(ctx, *expense, domain.ExpenseApproved, event); err != nil {
		s.LogError(ctx, err, "Failed to mark expense paid", slog.String("expense_id", expenseID))
		return nil, err
	}

	s.publisher.Publish(events.ChangeEvent{Table: events.TableExpenses, Op: events.OpUpdate})
	s.LogInfo(ctx, "Expense marked paid", slog.String("expense_id", expenseID))
	return expense, nil
}

// --- Budget request transitions ---

// ApproveBudgetRequest transitions pending -> approved. The approved amount
// defaults to the requested amount; decided_at is written exactly once.
func (s *lifecycleService) ApproveBudgetRequest(ctx context.Context, requestID string, req dto.ApproveBudgetRequestRequest, approverUserID string) (*domain.BudgetRequest, error) {
	request, err := s.requestRepo.FindBudgetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.BudgetRequestPending {
		return nil, fmt.Errorf("%w: budget request is already %s", apperrors.ErrInvalidTransition, request.Status)
	}

	approvedAmount := request.RequestedAmount
	if req.ApprovedAmount != nil {
		if req.ApprovedAmount.IsNegative() || req.ApprovedAmount.IsZero() {
			return nil, fmt.Errorf("%w: approved amount must be positive", apperrors.ErrValidation)
		}
		approvedAmount = *req.ApprovedAmount
	}

	now := time.Now().UTC()
	request.Status = domain.BudgetRequestApproved
	request.ApprovedAmount = &approvedAmount
	request.ApprovalNotes = req.ApprovalNotes
	request.DecidedAt = &now
	request.LastUpdatedAt = now
	request.LastUpdatedBy = approverUserID

	event := timelineEvent(domain.EventBudgetRequestApproved, events.TableBudgetRequests, request.RequestID, now)
	if err := s.requestRepo.ApplyBudgetRequestDecision(ctx, *request, event); err != nil {
		s.LogError(ctx, err, "Failed to approve budget request", slog.String("request_id", requestID))
		return nil, err
	}

	s.publisher.Publish(events.ChangeEvent{Table: events.TableBudgetRequests, Op: events.OpUpdate})
	s.LogInfo(ctx, "Budget request approved", slog.String("request_id", requestID))
	return request, nil
}

// RejectBudgetRequest transitions pending -> rejected with a mandatory reason.
func (s *lifecycleService) RejectBudgetRequest(ctx context.Context, requestID string, reason string, approverUserID string) (*domain.BudgetRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}

	request, err := s.requestRepo.FindBudgetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.BudgetRequestPending {
		return nil, fmt.Errorf("%w: budget request is already %s", apperrors.ErrInvalidTransition, request.Status)
	}

	now := time.Now().UTC()
	request.Status = domain.BudgetRequestRejected
	request.RejectionReason = reason
	request.DecidedAt = &now
	request.LastUpdatedAt = now
	request.LastUpdatedBy = approverUserID

	event := timelineEvent(domain.EventBudgetRequestRejected, events.TableBudgetRequests, request.RequestID, now)
	if err := s.requestRepo.ApplyBudgetRequestDecision(ctx, *request, event); err != nil {
		s.LogError(ctx, err, "Failed to reject budget request", slog.String("request_id", requestID))
		return nil, err
	}

	s.publisher.Publish(events.ChangeEvent{Table: events.TableBudgetRequests, Op: events.OpUpdate})
	s.LogInfo(ctx, "Budget request rejected", slog.String("request_id", requestID))
	return request, nil
}

// --- Donation reconciliation transitions ---

// MatchDonation transitions unmatched -> matched. The repository guard turns a
// lost race with another reviewer into ErrAlreadyTerminal instead of a silent
// overwrite.
func (s *lifecycleService) MatchDonation(ctx context.Context, donationID string, matchedWith string, reviewerUserID string) (*domain.Donation, error) {
	donation, err := s.donationRepo.FindDonationByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation.ReconStatus != domain.ReconUnmatched {
		return nil, fmt.Errorf("%w: donation is %s", apperrors.ErrAlreadyTerminal, donation.ReconStatus)
	}

	now := time.Now().UTC()
	event := timelineEvent(domain.EventDonationMatched, events.TableDonations, donation.DonationID, now)
	if err := s.donationRepo.MarkDonationMatched(ctx, donationID, matchedWith, event, reviewerUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark donation matched", slog.String("donation_id", donationID))
		return nil, err
	}

	donation.ReconStatus = domain.ReconMatched
	donation.Reconciled = true
	donation.MatchedWith = matchedWith
	donation.LastUpdatedAt = now
	donation.LastUpdatedBy = reviewerUserID

	s.publisher.Publish(events.ChangeEvent{Table: events.TableDonations, Op: events.OpUpdate})
	s.LogInfo(ctx, "Donation matched", slog.String("donation_id", donationID))
	return donation, nil
}

// RecordDonationException transitions unmatched -> exception. The exception
// arrives pre-validated from the classifier; a repeat classification of an
// already-exceptioned donation overwrites the exception without a second
// transition or timeline event.
func (s *lifecycleService) RecordDonationException(ctx context.Context, donationID string, exc domain.Exception, reviewerUserID string) (*domain.Donation, error) {
	donation, err := s.donationRepo.FindDonationByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation.ReconStatus == domain.ReconMatched {
		return nil, fmt.Errorf("%w: donation is already matched", apperrors.ErrAlreadyTerminal)
	}

	now := time.Now().UTC()
	event := timelineEvent(domain.EventDonationException, events.TableDonations, donation.DonationID, now)
	if err := s.donationRepo.MarkDonationException(ctx, donationID, exc, event, reviewerUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to record donation exception", slog.String("donation_id", donationID))
		return nil, err
	}

	donation.ReconStatus = domain.ReconException
	donation.Exception = &exc
	donation.LastUpdatedAt = now
	donation.LastUpdatedBy = reviewerUserID

	s.publisher.Publish(events.ChangeEvent{Table: events.TableDonations, Op: events.OpUpdate})
	s.LogInfo(ctx, "Donation exception recorded", slog.String("donation_id", donationID), slog.String("exception_type", string(exc.Type)))
	return donation, nil
}
