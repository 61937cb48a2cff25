package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory is the free-form-but-enumerated classification of an expense.
type ExpenseCategory string

const (
	CategoryMaintenance ExpenseCategory = "maintenance"
	CategoryUtilities   ExpenseCategory = "utilities"
	CategorySalaries    ExpenseCategory = "salaries"
	CategoryMaterials   ExpenseCategory = "materials"
	CategoryEvents      ExpenseCategory = "events"
	CategoryOther       ExpenseCategory = "other"
)

// ExpenseStatus is the approval lifecycle state of an expense.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
	ExpensePaid     ExpenseStatus = "paid"
)

// IsTerminal reports whether no further transition is permitted.
func (s ExpenseStatus) IsTerminal() bool {
	return s == ExpenseRejected || s == ExpensePaid
}

// Expense represents money spent by the temple, subject to approval.
type Expense struct {
	ExpenseID       string          `json:"expenseID"`
	Description     string          `json:"description"`
	Vendor          string          `json:"vendor"`
	Amount          decimal.Decimal `json:"amount"`
	Category        ExpenseCategory `json:"category"`
	Status          ExpenseStatus   `json:"status"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	ApprovalDate    *time.Time      `json:"approvalDate,omitempty"` // stamped once on leaving pending
	ExpenseDate     time.Time       `json:"expenseDate"`            // when the expense occurred, distinct from CreatedAt
	Notes           string          `json:"notes"`
	AuditFields
}
