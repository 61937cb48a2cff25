package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/temple-trust/temple_finance_app/internal/apperrors"
	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	portsrepo "github.com/temple-trust/temple_finance_app/internal/core/ports/repositories"
	portssvc "github.com/temple-trust/temple_finance_app/internal/core/ports/services"
)

// reconciliationService orchestrates the manual review of unmatched records.
// It holds no state of its own: every call is one fetch cycle over the record
// store, and mutations delegate to the lifecycle service and classifier.
type reconciliationService struct {
	BaseService
	donationRepo portsrepo.DonationReader
	expenseRepo  portsrepo.ExpenseReader
	lifecycle    portssvc.LifecycleSvcFacade
	classifier   portssvc.ExceptionClassifierSvc
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(
	donationRepo portsrepo.DonationReader,
	expenseRepo portsrepo.ExpenseReader,
	lifecycle portssvc.LifecycleSvcFacade,
	classifier portssvc.ExceptionClassifierSvc,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		donationRepo: donationRepo,
		expenseRepo:  expenseRepo,
		lifecycle:    lifecycle,
		classifier:   classifier,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func donationItem(d domain.Donation) domain.ReconciliationItem {
	return domain.ReconciliationItem{
		ItemID:         d.DonationID,
		Type:           domain.ItemDonation,
		TransactionRef: d.TransactionRef,
		ProviderRef:    d.ProviderRef,
		Amount:         d.NetAmount,
		Date:           d.ReceivedAt,
		Status:         d.ReconStatus,
		MatchedWith:    d.MatchedWith,
		Exception:      d.Exception,
	}
}

// expenseItem projects an expense into the review queue. Paid expenses count
// as matched; pending and approved ones as unmatched. The vendor stands in
// for the provider reference.
func expenseItem(e domain.Expense) domain.ReconciliationItem {
	status := domain.ReconUnmatched
	if e.Status == domain.ExpensePaid {
		status = domain.ReconMatched
	}
	return domain.ReconciliationItem{
		ItemID:         e.ExpenseID,
		Type:           domain.ItemExpense,
		TransactionRef: e.ExpenseID,
		ProviderRef:    e.Vendor,
		Amount:         e.Amount,
		Date:           e.ExpenseDate,
		Status:         status,
	}
}

func (s *reconciliationService) fetchItems(ctx context.Context) ([]domain.ReconciliationItem, error) {
	donations, err := s.donationRepo.ListDonations(ctx, portsrepo.DonationListFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list donations for reconciliation: %w", err)
	}
	expenses, err := s.expenseRepo.ListExpenses(ctx, portsrepo.ExpenseListFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for reconciliation: %w", err)
	}

	items := make([]domain.ReconciliationItem, 0, len(donations)+len(expenses))
	for _, d := range donations {
		items = append(items, donationItem(d))
	}
	for _, e := range expenses {
		// Rejected expenses are dead; they never reach the review queue.
		if e.Status == domain.ExpenseRejected {
			continue
		}
		items = append(items, expenseItem(e))
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	return items, nil
}

// ListItems projects donations and non-rejected expenses into uniform
// reconciliation items, filtered by match state.
func (s *reconciliationService) ListItems(ctx context.Context, filter domain.ReconciliationFilter) ([]domain.ReconciliationItem, error) {
	items, err := s.fetchItems(ctx)
	if err != nil {
		return nil, err
	}

	switch filter {
	case domain.FilterAll, "":
		return items, nil
	case domain.FilterMatched:
		filtered := items[:0]
		for _, item := range items {
			if item.Status == domain.ReconMatched {
				filtered = append(filtered, item)
			}
		}
		return filtered, nil
	case domain.FilterUnmatched:
		filtered := items[:0]
		for _, item := range items {
			if item.Status == domain.ReconUnmatched {
				filtered = append(filtered, item)
			}
		}
		return filtered, nil
	default:
		return nil, fmt.Errorf("%w: unknown reconciliation filter %q", apperrors.ErrValidation, filter)
	}
}

// MarkMatched confirms an item against its external record. Donation items go
// through the unmatched -> matched transition, recording the reviewer's
// matchedWith reference; expense items settle an approved expense as paid.
func (s *reconciliationService) MarkMatched(ctx context.Context, itemID string, matchedWith string, reviewerUserID string) (*domain.ReconciliationItem, error) {
	donation, err := s.lifecycle.MatchDonation(ctx, itemID, matchedWith, reviewerUserID)
	if err == nil {
		item := donationItem(*donation)
		return &item, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	// Not a donation; try the expense side of the queue.
	expense, err := s.lifecycle.MarkExpensePaid(ctx, itemID, reviewerUserID)
	if err != nil {
		return nil, err
	}
	item := expenseItem(*expense)
	return &item, nil
}

// MarkException classifies an unmatched donation item as an exception.
// Expense items cannot carry exceptions; their failure mode is rejection.
func (s *reconciliationService) MarkException(ctx context.Context, itemID string, excType string, detail string, reviewerUserID string) (*domain.ReconciliationItem, error) {
	donation, err := s.classifier.Classify(ctx, itemID, excType, detail, reviewerUserID)
	if err != nil {
		return nil, err
	}
	item := donationItem(*donation)
	return &item, nil
}

// Stats summarises the review queue over one fetch cycle. ExceptionCounts
// tallies recorded classifications; MissingProviderRef is derived from empty
// provider refs and deliberately kept out of ExceptionCounts.
func (s *reconciliationService) Stats(ctx context.Context) (*domain.ReconciliationStats, error) {
	items, err := s.fetchItems(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.ReconciliationStats{
		ExceptionCounts: make(map[domain.ExceptionType]int),
	}
	for _, item := range items {
		stats.Total++
		switch item.Status {
		case domain.ReconMatched:
			stats.Matched++
		case domain.ReconUnmatched:
			stats.Unmatched++
		}
		if item.Exception != nil {
			stats.ExceptionCounts[item.Exception.Type]++
		}
		if item.ProviderRef == "" {
			stats.MissingProviderRef++
		}
	}
	return stats, nil
}
