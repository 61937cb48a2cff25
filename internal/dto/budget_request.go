package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/temple-trust/temple_finance_app/internal/core/domain"
)

// CreateBudgetRequestRequest defines the data needed to raise a budget request.
type CreateBudgetRequestRequest struct {
	Title           string          `json:"title" binding:"required"`
	Purpose         string          `json:"purpose" binding:"required"`
	CommunityID     string          `json:"communityID"`
	RequestedAmount decimal.Decimal `json:"requestedAmount" binding:"required"`
}

// UpdateBudgetRequestRequest defines the editable fields of a pending budget
// request. Pointers distinguish "not provided" from zero values.
type UpdateBudgetRequestRequest struct {
	Title           *string          `json:"title"`
	Purpose         *string          `json:"purpose"`
	CommunityID     *string          `json:"communityID"`
	RequestedAmount *decimal.Decimal `json:"requestedAmount"`
}

// ApproveBudgetRequestRequest carries the optional decision fields.
// ApprovedAmount defaults to the requested amount when omitted.
type ApproveBudgetRequestRequest struct {
	ApprovedAmount *decimal.Decimal `json:"approvedAmount"`
	ApprovalNotes  string           `json:"approvalNotes"`
}

// RejectBudgetRequestRequest carries the mandatory rejection reason.
type RejectBudgetRequestRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListBudgetRequestsParams defines the query filters for listing budget requests.
type ListBudgetRequestsParams struct {
	Status      string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	CommunityID string `form:"communityID"`
}

// BudgetRequestResponse defines the data returned for a budget request.
type BudgetRequestResponse struct {
	RequestID       string           `json:"requestID"`
	Title           string           `json:"title"`
	Purpose         string           `json:"purpose"`
	CommunityID     string           `json:"communityID"`
	RequestedAmount decimal.Decimal  `json:"requestedAmount"`
	ApprovedAmount  *decimal.Decimal `json:"approvedAmount,omitempty"`
	Status          string           `json:"status"`
	DecidedAt       *time.Time       `json:"decidedAt,omitempty"`
	RejectionReason string           `json:"rejectionReason,omitempty"`
	ApprovalNotes   string           `json:"approvalNotes,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// ToBudgetRequestResponse converts a domain.BudgetRequest to its response DTO
func ToBudgetRequestResponse(r *domain.BudgetRequest) BudgetRequestResponse {
	return BudgetRequestResponse{
		RequestID:       r.RequestID,
		Title:           r.Title,
		Purpose:         r.Purpose,
		CommunityID:     r.CommunityID,
		RequestedAmount: r.RequestedAmount,
		ApprovedAmount:  r.ApprovedAmount,
		Status:          string(r.Status),
		DecidedAt:       r.DecidedAt,
		RejectionReason: r.RejectionReason,
		ApprovalNotes:   r.ApprovalNotes,
		CreatedAt:       r.CreatedAt,
	}
}

// ListBudgetRequestsResponse wraps a list of budget requests.
type ListBudgetRequestsResponse struct {
	BudgetRequests []BudgetRequestResponse `json:"budgetRequests"`
}
