package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the database representation of an expense row.
type Expense struct {
	ExpenseID       string          `db:"expense_id"`
	Description     string          `db:"description"`
	Vendor          string          `db:"vendor"`
	Amount          decimal.Decimal `db:"amount"`
	Category        string          `db:"category"`
	Status          string          `db:"status"`
	RejectionReason string          `db:"rejection_reason"`
	ApprovalDate    *time.Time      `db:"approval_date"` // Nullable
	ExpenseDate     time.Time       `db:"expense_date"`
	Notes           string          `db:"notes"`
	AuditFields
}
