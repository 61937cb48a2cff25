package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/temple-trust/temple_finance_app/internal/apperrors"
	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	portsrepo "github.com/temple-trust/temple_finance_app/internal/core/ports/repositories"
	portssvc "github.com/temple-trust/temple_finance_app/internal/core/ports/services"
)

var hundred = decimal.NewFromInt(100)

// reportingService computes time-bounded rollups over the record store.
// Generation is read-only and may observe a snapshot that concurrent writes
// have since moved past; reports are not linearizable with writers.
type reportingService struct {
	BaseService
	donationRepo portsrepo.DonationReader
	expenseRepo  portsrepo.ExpenseReader
	budgetRepo   portsrepo.BudgetReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(
	donationRepo portsrepo.DonationReader,
	expenseRepo portsrepo.ExpenseReader,
	budgetRepo portsrepo.BudgetReader,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		donationRepo: donationRepo,
		expenseRepo:  expenseRepo,
		budgetRepo:   budgetRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// Generate builds the full report for [from, to]. Donations are selected on
// received date, expenses on expense date with rejected ones excluded from
// every figure.
func (s *reportingService) Generate(ctx context.Context, from, to time.Time) (*domain.FinanceReport, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: report window end precedes start", apperrors.ErrValidation)
	}

	donations, err := s.donationRepo.ListDonations(ctx, portsrepo.DonationListFilter{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("failed to list donations for report: %w", err)
	}
	expenses, err := s.expenseRepo.ListExpenses(ctx, portsrepo.ExpenseListFilter{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for report: %w", err)
	}

	// Rejected expenses never contribute to totals or rollups.
	kept := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Status != domain.ExpenseRejected {
			kept = append(kept, e)
		}
	}
	expenses = kept

	report := &domain.FinanceReport{
		From:      from,
		To:        to,
		Donations: donations,
		Expenses:  expenses,
	}

	totalDonations := decimal.Zero
	for _, d := range donations {
		totalDonations = totalDonations.Add(d.NetAmount)
	}
	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.Amount)
	}
	report.TotalDonations = totalDonations
	report.TotalExpenses = totalExpenses
	report.NetIncome = totalDonations.Sub(totalExpenses)

	report.DonationsBySource = donationSourceRollup(donations)
	report.ExpensesByCategory = expenseCategoryRollup(expenses)
	report.TopDonors = rankDonors(donations)

	budgets, err := s.budgetRepo.ListBudgets(ctx, portsrepo.BudgetListFilter{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets for report: %w", err)
	}
	report.BudgetProgress = budgetProgress(budgets)

	s.LogInfo(ctx, "Finance report generated",
		slog.Time("from", from),
		slog.Time("to", to),
		slog.Int("donations", len(donations)),
		slog.Int("expenses", len(expenses)))
	return report, nil
}

// GenerateQuick resolves a calendar preset relative to now and generates.
func (s *reportingService) GenerateQuick(ctx context.Context, preset domain.ReportPreset, now time.Time) (*domain.FinanceReport, error) {
	from, to, err := resolvePreset(preset, now)
	if err != nil {
		return nil, err
	}
	return s.Generate(ctx, from, to)
}

// resolvePreset maps a preset to a concrete [from, to] window using calendar
// boundaries. The quarter containing now starts at month index (month/3)*3.
func resolvePreset(preset domain.ReportPreset, now time.Time) (time.Time, time.Time, error) {
	now = now.UTC()
	switch preset {
	case domain.PresetMonthly:
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
		return from, to, nil
	case domain.PresetQuarterly:
		quarterStart := time.Month((int(now.Month()-1)/3)*3 + 1)
		from := time.Date(now.Year(), quarterStart, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 3, 0).Add(-time.Nanosecond)
		return from, to, nil
	case domain.PresetAnnual:
		from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(1, 0, 0).Add(-time.Nanosecond)
		return from, to, nil
	case domain.PresetTrailing12:
		to := now
		from := now.AddDate(-1, 0, 0)
		return from, to, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown report preset %q", apperrors.ErrValidation, preset)
	}
}

func donationSourceRollup(donations []domain.Donation) []domain.CategoryTotal {
	totals := make(map[string]*domain.CategoryTotal)
	for _, d := range donations {
		source := string(d.Source)
		entry, ok := totals[source]
		if !ok {
			entry = &domain.CategoryTotal{Category: source, Total: decimal.Zero}
			totals[source] = entry
		}
		entry.Total = entry.Total.Add(d.NetAmount)
		entry.Count++
	}
	return sortedTotals(totals)
}

func expenseCategoryRollup(expenses []domain.Expense) []domain.CategoryTotal {
	totals := make(map[string]*domain.CategoryTotal)
	for _, e := range expenses {
		category := string(e.Category)
		entry, ok := totals[category]
		if !ok {
			entry = &domain.CategoryTotal{Category: category, Total: decimal.Zero}
			totals[category] = entry
		}
		entry.Total = entry.Total.Add(e.Amount)
		entry.Count++
	}
	return sortedTotals(totals)
}

// sortedTotals orders rollup rows by total descending, then name, so output
// is deterministic across runs.
func sortedTotals(totals map[string]*domain.CategoryTotal) []domain.CategoryTotal {
	rows := make([]domain.CategoryTotal, 0, len(totals))
	for _, entry := range totals {
		rows = append(rows, *entry)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// rankDonors groups donations by donor name, sums net amounts descending and
// tie-breaks by most recent donation date descending.
func rankDonors(donations []domain.Donation) []domain.TopDonor {
	byDonor := make(map[string]*domain.TopDonor)
	for _, d := range donations {
		entry, ok := byDonor[d.DonorName]
		if !ok {
			entry = &domain.TopDonor{DonorName: d.DonorName, TotalNet: decimal.Zero}
			byDonor[d.DonorName] = entry
		}
		entry.TotalNet = entry.TotalNet.Add(d.NetAmount)
		entry.DonationCount++
		if d.ReceivedAt.After(entry.LastDonationDate) {
			entry.LastDonationDate = d.ReceivedAt
		}
	}

	ranked := make([]domain.TopDonor, 0, len(byDonor))
	for _, entry := range byDonor {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].TotalNet.Equal(ranked[j].TotalNet) {
			return ranked[i].TotalNet.GreaterThan(ranked[j].TotalNet)
		}
		return ranked[i].LastDonationDate.After(ranked[j].LastDonationDate)
	})
	return ranked
}

// budgetProgress computes collection ratios. The display percent is clamped
// at 100; the raw ratio is kept so over-collection stays visible.
func budgetProgress(budgets []domain.Budget) []domain.BudgetProgress {
	rows := make([]domain.BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		row := domain.BudgetProgress{
			Category:        b.Category,
			TargetAmount:    b.TargetAmount,
			CollectedAmount: b.CollectedAmount,
		}
		if b.TargetAmount.IsPositive() {
			row.Ratio = b.CollectedAmount.Div(b.TargetAmount)
			row.PercentDisplay = row.Ratio.Mul(hundred)
			if row.PercentDisplay.GreaterThan(hundred) {
				row.PercentDisplay = hundred
			}
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Category < rows[j].Category
	})
	return rows
}
