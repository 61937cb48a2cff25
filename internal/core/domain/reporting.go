package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is one row of a group-by rollup.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// TopDonor is one row of the donor ranking: donations grouped by donor name,
// summed by net amount.
type TopDonor struct {
	DonorName        string          `json:"donorName"`
	TotalNet         decimal.Decimal `json:"totalNet"`
	DonationCount    int             `json:"donationCount"`
	LastDonationDate time.Time       `json:"lastDonationDate"`
}

// BudgetProgress reports collection against a budget target. PercentDisplay is
// clamped at 100 for dashboards; Ratio is the raw value so over-collection
// stays visible.
type BudgetProgress struct {
	Category        string          `json:"category"`
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	CollectedAmount decimal.Decimal `json:"collectedAmount"`
	Ratio           decimal.Decimal `json:"ratio"`
	PercentDisplay  decimal.Decimal `json:"percentDisplay"`
}

// FinanceReport is the full rollup for a time window. Rejected expenses are
// excluded from every expense figure.
type FinanceReport struct {
	From               time.Time        `json:"from"`
	To                 time.Time        `json:"to"`
	TotalDonations     decimal.Decimal  `json:"totalDonations"`
	TotalExpenses      decimal.Decimal  `json:"totalExpenses"`
	NetIncome          decimal.Decimal  `json:"netIncome"`
	DonationsBySource  []CategoryTotal  `json:"donationsBySource"`
	ExpensesByCategory []CategoryTotal  `json:"expensesByCategory"`
	TopDonors          []TopDonor       `json:"topDonors"`
	BudgetProgress     []BudgetProgress `json:"budgetProgress"`
	Donations          []Donation       `json:"donations"`
	Expenses           []Expense        `json:"expenses"`
}

// ReportPreset names a calendar-derived report window.
type ReportPreset string

const (
	PresetMonthly    ReportPreset = "monthly"
	PresetQuarterly  ReportPreset = "quarterly"
	PresetAnnual     ReportPreset = "annual"
	PresetTrailing12 ReportPreset = "trailing-12-months"
)
