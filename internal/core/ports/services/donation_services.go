package services

import (
	"context"

	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	"github.com/temple-trust/temple_finance_app/internal/dto"
)

// DonationReaderSvc defines read operations for donation data
type DonationReaderSvc interface {
	// GetDonationByID retrieves a specific donation by its ID.
	GetDonationByID(ctx context.Context, donationID string) (*domain.Donation, error)

	// ListDonations retrieves donations matching the query parameters.
	ListDonations(ctx context.Context, params dto.ListDonationsParams) ([]domain.Donation, error)
}

// DonationWriterSvc defines write operations for donation data
type DonationWriterSvc interface {
	// CreateDonation persists a new donation in the unmatched state.
	CreateDonation(ctx context.Context, req dto.CreateDonationRequest, creatorUserID string) (*domain.Donation, error)

	// UpdateDonation edits a donation's own fields, re-deriving the net amount.
	UpdateDonation(ctx context.Context, donationID string, req dto.UpdateDonationRequest, updaterUserID string) (*domain.Donation, error)
}

// DonationSvcFacade combines all donation-related service interfaces
type DonationSvcFacade interface {
	DonationReaderSvc
	DonationWriterSvc
}
