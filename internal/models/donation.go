package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation is the database representation of a donation row.
type Donation struct {
	DonationID      string          `db:"donation_id"`
	DonorName       string          `db:"donor_name"`
	GrossAmount     decimal.Decimal `db:"gross_amount"`
	ProviderFees    decimal.Decimal `db:"provider_fees"`
	NetAmount       decimal.Decimal `db:"net_amount"`
	Source          string          `db:"source"`
	Status          string          `db:"status"`
	ReconStatus     string          `db:"recon_status"`
	Reconciled      bool            `db:"reconciled"`
	MatchedWith     string          `db:"matched_with"`
	TransactionRef  string          `db:"transaction_ref"`
	ProviderRef     string          `db:"provider_ref"`
	ReceivedAt      time.Time       `db:"received_at"`
	Notes           string          `db:"notes"`
	ExceptionType   *string         `db:"exception_type"` // Nullable, structured; never parsed out of notes
	ExceptionDetail *string         `db:"exception_detail"`
	AuditFields
}
