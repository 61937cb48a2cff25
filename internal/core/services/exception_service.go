package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/temple-trust/temple_finance_app/internal/apperrors"
	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	portssvc "github.com/temple-trust/temple_finance_app/internal/core/ports/services"
)

// exceptionClassifier validates exception classifications and hands them to
// the lifecycle service for the actual transition. It is the only entry point
// that constructs exceptions, so the enumerated-type and non-empty-detail
// rules hold for every exception that reaches storage.
type exceptionClassifier struct {
	BaseService
	lifecycle portssvc.DonationLifecycleSvc
}

// NewExceptionClassifier creates a new ExceptionClassifier.
func NewExceptionClassifier(lifecycle portssvc.DonationLifecycleSvc) portssvc.ExceptionClassifierSvc {
	return &exceptionClassifier{lifecycle: lifecycle}
}

var _ portssvc.ExceptionClassifierSvc = (*exceptionClassifier)(nil)

// Classify attaches a typed exception to a donation. Re-classifying an
// exceptioned donation overwrites the previous exception; classifying a
// matched donation fails.
func (s *exceptionClassifier) Classify(ctx context.Context, donationID string, excType string, detail string, reviewerUserID string) (*domain.Donation, error) {
	parsed := domain.ExceptionType(excType)
	if !parsed.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidExceptionType, excType)
	}
	if strings.TrimSpace(detail) == "" {
		return nil, apperrors.ErrMissingDetail
	}

	exc := domain.Exception{Type: parsed, Detail: detail}
	return s.lifecycle.RecordDonationException(ctx, donationID, exc, reviewerUserID)
}
