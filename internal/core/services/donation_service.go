package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/temple-trust/temple_finance_app/internal/apperrors"
	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	portsrepo "github.com/temple-trust/temple_finance_app/internal/core/ports/repositories"
	portssvc "github.com/temple-trust/temple_finance_app/internal/core/ports/services"
	"github.com/temple-trust/temple_finance_app/internal/dto"
	"github.com/temple-trust/temple_finance_app/internal/platform/events"
)

// donationService owns donation record CRUD. Reconciliation status and
// exception columns are off limits here; those belong to the lifecycle
// service and the exception classifier.
type donationService struct {
	BaseService
	donationRepo portsrepo.DonationRepositoryFacade
	publisher    events.Publisher
}

// NewDonationService creates a new DonationService.
func NewDonationService(donationRepo portsrepo.DonationRepositoryFacade, publisher events.Publisher) portssvc.DonationSvcFacade {
	return &donationService{
		donationRepo: donationRepo,
		publisher:    publisher,
	}
}

var _ portssvc.DonationSvcFacade = (*donationService)(nil)

// CreateDonation validates and persists a new donation. The net amount is
// always derived as gross minus fees.
func (s *donationService) CreateDonation(ctx context.Context, req dto.CreateDonationRequest, creatorUserID string) (*domain.Donation, error) {
	if req.GrossAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: gross amount must be positive", apperrors.ErrValidation)
	}
	if req.ProviderFees.IsNegative() {
		return nil, fmt.Errorf("%w: provider fees cannot be negative", apperrors.ErrValidation)
	}
	if req.ProviderFees.GreaterThan(req.GrossAmount) {
		return nil, fmt.Errorf("%w: provider fees cannot exceed gross amount", apperrors.ErrValidation)
	}

	status := domain.DonationStatus(req.Status)
	if status == "" {
		status = domain.DonationCompleted
	}

	now := time.Now().UTC()
	donation := domain.Donation{
		DonationID:     uuid.NewString(),
		DonorName:      req.DonorName,
		GrossAmount:    req.GrossAmount,
		ProviderFees:   req.ProviderFees,
		NetAmount:      req.GrossAmount.Sub(req.ProviderFees),
		Source:         domain.DonationSource(req.Source),
		Status:         status,
		ReconStatus:    domain.ReconUnmatched,
		Reconciled:     false,
		TransactionRef: req.TransactionRef,
		ProviderRef:    req.ProviderRef,
		ReceivedAt:     req.ReceivedAt,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.donationRepo.SaveDonation(ctx, donation); err != nil {
		s.LogError(ctx, err, "Failed to save donation")
		return nil, fmt.Errorf("failed to save donation: %w", err)
	}

	s.publisher.Publish(events.ChangeEvent{Table: events.TableDonations, Op: events.OpCreate})
	s.LogInfo(ctx, "Donation created", slog.String("donation_id", donation.DonationID))
	return &donation, nil
}

// GetDonationByID retrieves a donation by its ID.
func (s *donationService) GetDonationByID(ctx context.Context, donationID string) (*domain.Donation, error) {
	return s.donationRepo.FindDonationByID(ctx, donationID)
}

// ListDonations retrieves donations matching the query parameters.
func (s *donationService) ListDonations(ctx context.Context, params dto.ListDonationsParams) ([]domain.Donation, error) {
	filter := portsrepo.DonationListFilter{From: params.From, To: params.To}
	if params.Status != "" {
		status := domain.DonationStatus(params.Status)
		filter.Status = &status
	}
	if params.ReconStatus != "" {
		recon := domain.ReconciliationStatus(params.ReconStatus)
		filter.ReconStatus = &recon
	}
	if params.Source != "" {
		source := domain.DonationSource(params.Source)
		filter.Source = &source
	}
	return s.donationRepo.ListDonations(ctx, filter)
}

// UpdateDonation edits a donation's own fields. Whenever gross or fees change,
// the net amount is re-derived so the invariant holds after every edit.
func (s *donationService) UpdateDonation(ctx context.Context, donationID string, req dto.UpdateDonationRequest, updaterUserID string) (*domain.Donation, error) {
	donation, err := s.donationRepo.FindDonationByID(ctx, donationID)
	if err != nil {
		return nil, err
	}

	if req.DonorName != nil {
		donation.DonorName = *req.DonorName
	}
	if req.GrossAmount != nil {
		donation.GrossAmount = *req.GrossAmount
	}
	if req.ProviderFees != nil {
		donation.ProviderFees = *req.ProviderFees
	}
	if req.Source != nil {
		donation.Source = domain.DonationSource(*req.Source)
	}
	if req.Status != nil {
		donation.Status = domain.DonationStatus(*req.Status)
	}
	if req.TransactionRef != nil {
		donation.TransactionRef = *req.TransactionRef
	}
	if req.ProviderRef != nil {
		donation.ProviderRef = *req.ProviderRef
	}
	if req.ReceivedAt != nil {
		donation.ReceivedAt = *req.ReceivedAt
	}
	if req.Notes != nil {
		donation.Notes = *req.Notes
	}

	if donation.GrossAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: gross amount must be positive", apperrors.ErrValidation)
	}
	if donation.ProviderFees.IsNegative() {
		return nil, fmt.Errorf("%w: provider fees cannot be negative", apperrors.ErrValidation)
	}
	if donation.ProviderFees.GreaterThan(donation.GrossAmount) {
		return nil, fmt.Errorf("%w: provider fees cannot exceed gross amount", apperrors.ErrValidation)
	}
	donation.NetAmount = donation.GrossAmount.Sub(donation.ProviderFees)

	donation.LastUpdatedAt = time.Now().UTC()
	donation.LastUpdatedBy = updaterUserID

	if err := s.donationRepo.UpdateDonation(ctx, *donation); err != nil {
		s.LogError(ctx, err, "Failed to update donation", slog.String("donation_id", donationID))
		return nil, fmt.Errorf("failed to update donation: %w", err)
	}

	s.publisher.Publish(events.ChangeEvent{Table: events.TableDonations, Op: events.OpUpdate})
	s.LogInfo(ctx, "Donation updated", slog.String("donation_id", donationID))
	return donation, nil
}
