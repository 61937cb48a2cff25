package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/temple-trust/temple_finance_app/internal/core/domain"
)

// CreateDonationRequest defines the data needed to record a new donation.
// The net amount is derived server-side, never accepted from the client.
type CreateDonationRequest struct {
	DonorName      string          `json:"donorName" binding:"required"`
	GrossAmount    decimal.Decimal `json:"grossAmount" binding:"required"`
	ProviderFees   decimal.Decimal `json:"providerFees"`
	Source         string          `json:"source" binding:"required,oneof=web hundi manual"`
	Status         string          `json:"status" binding:"omitempty,oneof=completed pending failed"`
	TransactionRef string          `json:"transactionRef"`
	ProviderRef    string          `json:"providerRef"`
	ReceivedAt     time.Time       `json:"receivedAt" binding:"required"`
	Notes          string          `json:"notes"`
}

// UpdateDonationRequest defines the editable fields of a donation.
// Pointers distinguish "not provided" from zero values.
type UpdateDonationRequest struct {
	DonorName      *string          `json:"donorName"`
	GrossAmount    *decimal.Decimal `json:"grossAmount"`
	ProviderFees   *decimal.Decimal `json:"providerFees"`
	Source         *string          `json:"source" binding:"omitempty,oneof=web hundi manual"`
	Status         *string          `json:"status" binding:"omitempty,oneof=completed pending failed"`
	TransactionRef *string          `json:"transactionRef"`
	ProviderRef    *string          `json:"providerRef"`
	ReceivedAt     *time.Time       `json:"receivedAt"`
	Notes          *string          `json:"notes"`
}

// ListDonationsParams defines the query filters for listing donations.
// All filters are conjunctive.
type ListDonationsParams struct {
	Status      string     `form:"status" binding:"omitempty,oneof=completed pending failed"`
	ReconStatus string     `form:"reconStatus" binding:"omitempty,oneof=unmatched matched exception"`
	Source      string     `form:"source" binding:"omitempty,oneof=web hundi manual"`
	From        *time.Time `form:"from" time_format:"2006-01-02"`
	To          *time.Time `form:"to" time_format:"2006-01-02"`
}

// ExceptionResponse mirrors domain.Exception for API responses.
type ExceptionResponse struct {
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

// DonationResponse defines the data returned for a donation.
type DonationResponse struct {
	DonationID     string             `json:"donationID"`
	DonorName      string             `json:"donorName"`
	GrossAmount    decimal.Decimal    `json:"grossAmount"`
	ProviderFees   decimal.Decimal    `json:"providerFees"`
	NetAmount      decimal.Decimal    `json:"netAmount"`
	Source         string             `json:"source"`
	Status         string             `json:"status"`
	ReconStatus    string             `json:"reconStatus"`
	Reconciled     bool               `json:"reconciled"`
	TransactionRef string             `json:"transactionRef"`
	ProviderRef    string             `json:"providerRef"`
	ReceivedAt     time.Time          `json:"receivedAt"`
	Notes          string             `json:"notes"`
	Exception      *ExceptionResponse `json:"exception,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
}

// ToDonationResponse converts a domain.Donation to a DonationResponse DTO
func ToDonationResponse(d *domain.Donation) DonationResponse {
	resp := DonationResponse{
		DonationID:     d.DonationID,
		DonorName:      d.DonorName,
		GrossAmount:    d.GrossAmount,
		ProviderFees:   d.ProviderFees,
		NetAmount:      d.NetAmount,
		Source:         string(d.Source),
		Status:         string(d.Status),
		ReconStatus:    string(d.ReconStatus),
		Reconciled:     d.Reconciled,
		TransactionRef: d.TransactionRef,
		ProviderRef:    d.ProviderRef,
		ReceivedAt:     d.ReceivedAt,
		Notes:          d.Notes,
		CreatedAt:      d.CreatedAt,
		LastUpdatedAt:  d.LastUpdatedAt,
	}
	if d.Exception != nil {
		resp.Exception = &ExceptionResponse{Type: string(d.Exception.Type), Detail: d.Exception.Detail}
	}
	return resp
}

// ListDonationsResponse wraps a list of donations.
type ListDonationsResponse struct {
	Donations []DonationResponse `json:"donations"`
}
