package services

import (
	"context"

	"github.com/temple-trust/temple_finance_app/internal/core/domain"
)

// ExceptionClassifierSvc validates and records reconciliation exceptions.
// It is the only entry point that sets a record's exception.
type ExceptionClassifierSvc interface {
	// Classify attaches a typed exception to an unmatched donation and moves it
	// into the exception state. Re-classifying an exceptioned donation
	// overwrites the previous exception (last write wins).
	Classify(ctx context.Context, donationID string, excType string, detail string, reviewerUserID string) (*domain.Donation, error)
}

// ReconciliationSvcFacade orchestrates the manual reconciliation review.
type ReconciliationSvcFacade interface {
	// ListItems projects donations and non-rejected expenses into uniform
	// reconciliation items, optionally filtered by match state.
	ListItems(ctx context.Context, filter domain.ReconciliationFilter) ([]domain.ReconciliationItem, error)

	// MarkMatched confirms an item against its external record. For donations
	// this is the unmatched -> matched transition, persisting matchedWith as
	// the match reference; for expenses it settles an approved expense as paid.
	MarkMatched(ctx context.Context, itemID string, matchedWith string, reviewerUserID string) (*domain.ReconciliationItem, error)

	// MarkException classifies an unmatched donation item as an exception.
	MarkException(ctx context.Context, itemID string, excType string, detail string, reviewerUserID string) (*domain.ReconciliationItem, error)

	// Stats summarises the review queue. Recorded exception counts and the
	// derived missing-provider-ref count are reported separately.
	Stats(ctx context.Context) (*domain.ReconciliationStats, error)
}
