package mapping

import (
	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	"github.com/temple-trust/temple_finance_app/internal/models"
)

// ToModelBudgetRequest converts a domain BudgetRequest to a model BudgetRequest
func ToModelBudgetRequest(d domain.BudgetRequest) models.BudgetRequest {
	return models.BudgetRequest{
		RequestID:       d.RequestID,
		Title:           d.Title,
		Purpose:         d.Purpose,
		CommunityID:     d.CommunityID,
		RequestedAmount: d.RequestedAmount,
		ApprovedAmount:  d.ApprovedAmount,
		Status:          string(d.Status),
		DecidedAt:       d.DecidedAt,
		RejectionReason: d.RejectionReason,
		ApprovalNotes:   d.ApprovalNotes,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudgetRequest converts a model BudgetRequest to a domain BudgetRequest
func ToDomainBudgetRequest(m models.BudgetRequest) domain.BudgetRequest {
	return domain.BudgetRequest{
		RequestID:       m.RequestID,
		Title:           m.Title,
		Purpose:         m.Purpose,
		CommunityID:     m.CommunityID,
		RequestedAmount: m.RequestedAmount,
		ApprovedAmount:  m.ApprovedAmount,
		Status:          domain.BudgetRequestStatus(m.Status),
		DecidedAt:       m.DecidedAt,
		RejectionReason: m.RejectionReason,
		ApprovalNotes:   m.ApprovalNotes,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBudgetRequestSlice converts a slice of model BudgetRequests to domain BudgetRequests
func ToDomainBudgetRequestSlice(ms []models.BudgetRequest) []domain.BudgetRequest {
	ds := make([]domain.BudgetRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudgetRequest(m)
	}
	return ds
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:        m.BudgetID,
		Category:        m.Category,
		TargetAmount:    m.TargetAmount,
		CollectedAmount: m.CollectedAmount,
		PeriodStart:     m.PeriodStart,
		PeriodEnd:       m.PeriodEnd,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:        d.BudgetID,
		Category:        d.Category,
		TargetAmount:    d.TargetAmount,
		CollectedAmount: d.CollectedAmount,
		PeriodStart:     d.PeriodStart,
		PeriodEnd:       d.PeriodEnd,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}
