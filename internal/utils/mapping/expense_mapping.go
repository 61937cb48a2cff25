package mapping

import (
	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	"github.com/temple-trust/temple_finance_app/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:       d.ExpenseID,
		Description:     d.Description,
		Vendor:          d.Vendor,
		Amount:          d.Amount,
		Category:        string(d.Category),
		Status:          string(d.Status),
		RejectionReason: d.RejectionReason,
		ApprovalDate:    d.ApprovalDate,
		ExpenseDate:     d.ExpenseDate,
		Notes:           d.Notes,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:       m.ExpenseID,
		Description:     m.Description,
		Vendor:          m.Vendor,
		Amount:          m.Amount,
		Category:        domain.ExpenseCategory(m.Category),
		Status:          domain.ExpenseStatus(m.Status),
		RejectionReason: m.RejectionReason,
		ApprovalDate:    m.ApprovalDate,
		ExpenseDate:     m.ExpenseDate,
		Notes:           m.Notes,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}
