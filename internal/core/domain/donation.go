package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DonationSource classifies where a donation came from.
type DonationSource string

const (
	SourceWeb    DonationSource = "web"
	SourceHundi  DonationSource = "hundi"
	SourceManual DonationSource = "manual"
)

// DonationStatus is the payment status reported by the collection channel.
type DonationStatus string

const (
	DonationCompleted DonationStatus = "completed"
	DonationPending   DonationStatus = "pending"
	DonationFailed    DonationStatus = "failed"
)

// ReconciliationStatus tracks whether a donation has been confirmed against an
// external provider/bank record.
type ReconciliationStatus string

const (
	ReconUnmatched ReconciliationStatus = "unmatched"
	ReconMatched   ReconciliationStatus = "matched"
	ReconException ReconciliationStatus = "exception"
)

// IsTerminal reports whether no further reconciliation transition is permitted.
func (s ReconciliationStatus) IsTerminal() bool {
	return s == ReconMatched || s == ReconException
}

// Donation represents a single donation received by the temple.
// Invariant: NetAmount = GrossAmount - ProviderFees, at create and after every edit.
type Donation struct {
	DonationID     string               `json:"donationID"`
	DonorName      string               `json:"donorName"`
	GrossAmount    decimal.Decimal      `json:"grossAmount"`
	ProviderFees   decimal.Decimal      `json:"providerFees"`
	NetAmount      decimal.Decimal      `json:"netAmount"`
	Source         DonationSource       `json:"source"`
	Status         DonationStatus       `json:"status"`
	ReconStatus    ReconciliationStatus `json:"reconStatus"`
	Reconciled     bool                 `json:"reconciled"`
	MatchedWith    string               `json:"matchedWith,omitempty"` // external record named by the reviewer on match
	TransactionRef string               `json:"transactionRef"`
	ProviderRef    string               `json:"providerRef"` // empty when the provider never reported one
	ReceivedAt     time.Time            `json:"receivedAt"`  // when the money arrived, distinct from CreatedAt
	Notes          string               `json:"notes"`
	Exception      *Exception           `json:"exception,omitempty"`
	AuditFields
}
