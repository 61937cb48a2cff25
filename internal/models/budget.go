package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetRequest is the database representation of a budget request row.
type BudgetRequest struct {
	RequestID       string           `db:"request_id"`
	Title           string           `db:"title"`
	Purpose         string           `db:"purpose"`
	CommunityID     string           `db:"community_id"`
	RequestedAmount decimal.Decimal  `db:"requested_amount"`
	ApprovedAmount  *decimal.Decimal `db:"approved_amount"` // Nullable until approved
	Status          string           `db:"status"`
	DecidedAt       *time.Time       `db:"decided_at"` // Nullable, written exactly once
	RejectionReason string           `db:"rejection_reason"`
	ApprovalNotes   string           `db:"approval_notes"`
	AuditFields
}

// Budget is the database representation of a budget target row.
type Budget struct {
	BudgetID        string          `db:"budget_id"`
	Category        string          `db:"category"`
	TargetAmount    decimal.Decimal `db:"target_amount"`
	CollectedAmount decimal.Decimal `db:"collected_amount"`
	PeriodStart     time.Time       `db:"period_start"`
	PeriodEnd       time.Time       `db:"period_end"`
	AuditFields
}
