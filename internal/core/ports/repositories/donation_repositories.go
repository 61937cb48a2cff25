package repositories

import (
	"context"
	"time"

	"github.com/temple-trust/temple_finance_app/internal/core/domain"
)

// DonationListFilter narrows ListDonations results. Nil fields are ignored;
// set fields combine with AND.
type DonationListFilter struct {
	Status      *domain.DonationStatus
	ReconStatus *domain.ReconciliationStatus
	Source      *domain.DonationSource
	From        *time.Time // inclusive, on received_at
	To          *time.Time // inclusive, on received_at
}

// DonationReader defines read operations for donation data
type DonationReader interface {
	// FindDonationByID retrieves a specific donation by its unique identifier.
	FindDonationByID(ctx context.Context, donationID string) (*domain.Donation, error)

	// ListDonations retrieves donations matching the filter, newest received first.
	ListDonations(ctx context.Context, filter DonationListFilter) ([]domain.Donation, error)
}

// DonationWriter defines write operations for donation data
type DonationWriter interface {
	// SaveDonation persists a new donation.
	SaveDonation(ctx context.Context, donation domain.Donation) error

	// UpdateDonation persists edits to a donation's own fields. It never touches
	// recon_status, reconciled or the exception columns.
	UpdateDonation(ctx context.Context, donation domain.Donation) error
}

// DonationLifecycleWriter applies reconciliation transitions. Each call updates
// the row and appends the timeline event within a single database transaction,
// guarded on the row still being unmatched.
type DonationLifecycleWriter interface {
	// MarkDonationMatched transitions unmatched -> matched and sets reconciled.
	// Returns apperrors.ErrAlreadyTerminal when the row is no longer unmatched.
	MarkDonationMatched(ctx context.Context, donationID string, matchedWith string, event domain.TimelineEvent, updatedBy string, updatedAt time.Time) error

	// MarkDonationException transitions unmatched -> exception and records the
	// structured exception. Re-invocation on an exceptioned row overwrites the
	// exception (last write wins) without re-transitioning.
	MarkDonationException(ctx context.Context, donationID string, exc domain.Exception, event domain.TimelineEvent, updatedBy string, updatedAt time.Time) error
}

// DonationRepositoryFacade combines all donation-related repository interfaces
type DonationRepositoryFacade interface {
	DonationReader
	DonationWriter
	DonationLifecycleWriter
}
