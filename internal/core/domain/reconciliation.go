package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationItemType distinguishes the record behind a reconciliation item.
type ReconciliationItemType string

const (
	ItemDonation ReconciliationItemType = "donation"
	ItemExpense  ReconciliationItemType = "expense"
)

// ReconciliationItem is the uniform projection of a Donation or Expense as seen
// by the reconciliation review screen.
type ReconciliationItem struct {
	ItemID         string                 `json:"itemID"`
	Type           ReconciliationItemType `json:"type"`
	TransactionRef string                 `json:"transactionRef"`
	ProviderRef    string                 `json:"providerRef"`
	Amount         decimal.Decimal        `json:"amount"`
	Date           time.Time              `json:"date"`
	Status         ReconciliationStatus   `json:"status"`
	MatchedWith    string                 `json:"matchedWith,omitempty"`
	Exception      *Exception             `json:"exception,omitempty"`
}

// ReconciliationStats summarises the state of the review queue.
// MissingProviderRef is derived from empty provider refs on the fly; it is a
// separate signal from the recorded ExceptionCounts and the two are never
// combined.
type ReconciliationStats struct {
	Total              int                   `json:"total"`
	Matched            int                   `json:"matched"`
	Unmatched          int                   `json:"unmatched"`
	ExceptionCounts    map[ExceptionType]int `json:"exceptionCounts"`
	MissingProviderRef int                   `json:"missingProviderRef"`
}

// ReconciliationFilter selects which items list returns.
type ReconciliationFilter string

const (
	FilterAll       ReconciliationFilter = "all"
	FilterMatched   ReconciliationFilter = "matched"
	FilterUnmatched ReconciliationFilter = "unmatched"
)
