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

// budgetRequestService owns budget request creation and reads. Decisions are
// made by the lifecycle service.
type budgetRequestService struct {
	BaseService
	requestRepo portsrepo.BudgetRequestRepositoryFacade
	publisher   events.Publisher
}

// NewBudgetRequestService creates a new BudgetRequestService.
func NewBudgetRequestService(requestRepo portsrepo.BudgetRequestRepositoryFacade, publisher events.Publisher) portssvc.BudgetRequestSvcFacade {
	return &budgetRequestService{
		requestRepo: requestRepo,
		publisher:   publisher,
	}
}

var _ portssvc.BudgetRequestSvcFacade = (*budgetRequestService)(nil)

// CreateBudgetRequest validates and persists a new budget request.
func (s *budgetRequestService) CreateBudgetRequest(ctx context.Context, req dto.CreateBudgetRequestRequest, creatorUserID string) (*domain.BudgetRequest, error) {
	if req.RequestedAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: requested amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	request := domain.BudgetRequest{
		RequestID:       uuid.NewString(),
		Title:           req.Title,
		Purpose:         req.Purpose,
		CommunityID:     req.CommunityID,
		RequestedAmount: req.RequestedAmount,
		Status:          domain.BudgetRequestPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.requestRepo.SaveBudgetRequest(ctx, request); err != nil {
		s.LogError(ctx, err, "Failed to save budget request")
		return nil, fmt.Errorf("failed to save budget request: %w", err)
	}

	s.publisher.Publish(events.ChangeEvent{Table: events.TableBudgetRequests, Op: events.OpCreate})
	s.LogInfo(ctx, "Budget request created", slog.String("request_id", request.RequestID))
	return &request, nil
}

// UpdateBudgetRequest edits a pending budget request's own fields. Decided
// requests are immutable; their status and decision fields belong to the
// lifecycle service and are never touched here.
func (s *budgetRequestService) UpdateBudgetRequest(ctx context.Context, requestID string, req dto.UpdateBudgetRequestRequest, updaterUserID string) (*domain.BudgetRequest, error) {
	request, err := s.requestRepo.FindBudgetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.BudgetRequestPending {
		return nil, fmt.Errorf("%w: budget request is already %s", apperrors.ErrInvalidTransition, request.Status)
	}

	if req.Title != nil {
		request.Title = *req.Title
	}
	if req.Purpose != nil {
		request.Purpose = *req.Purpose
	}
	if req.CommunityID != nil {
		request.CommunityID = *req.CommunityID
	}
	if req.RequestedAmount != nil {
		request.RequestedAmount = *req.RequestedAmount
	}

	if request.RequestedAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: requested amount must be positive", apperrors.ErrValidation)
	}

	request.LastUpdatedAt = time.Now().UTC()
	request.LastUpdatedBy = updaterUserID

	if err := s.requestRepo.UpdateBudgetRequest(ctx, *request); err != nil {
		s.LogError(ctx, err, "Failed to update budget request", slog.String("request_id", requestID))
		return nil, err
	}

	s.publisher.Publish(events.ChangeEvent{Table: events.TableBudgetRequests, Op: events.OpUpdate})
	s.LogInfo(ctx, "Budget request updated", slog.String("request_id", requestID))
	return request, nil
}

// GetBudgetRequestByID retrieves a budget request by its ID.
func (s *budgetRequestService) GetBudgetRequestByID(ctx context.Context, requestID string) (*domain.BudgetRequest, error) {
	return s.requestRepo.FindBudgetRequestByID(ctx, requestID)
}

// ListBudgetRequests retrieves budget requests matching the query parameters.
func (s *budgetRequestService) ListBudgetRequests(ctx context.Context, params dto.ListBudgetRequestsParams) ([]domain.BudgetRequest, error) {
	filter := portsrepo.BudgetRequestListFilter{}
	if params.Status != "" {
		status := domain.BudgetRequestStatus(params.Status)
		filter.Status = &status
	}
	if params.CommunityID != "" {
		filter.CommunityID = &params.CommunityID
	}
	return s.requestRepo.ListBudgetRequests(ctx, filter)
}
