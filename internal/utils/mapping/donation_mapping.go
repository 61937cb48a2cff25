package mapping

import (
	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	"github.com/temple-trust/temple_finance_app/internal/models"
)

// ToModelDonation converts a domain Donation to a model Donation
func ToModelDonation(d domain.Donation) models.Donation {
	m := models.Donation{
		DonationID:     d.DonationID,
		DonorName:      d.DonorName,
		GrossAmount:    d.GrossAmount,
		ProviderFees:   d.ProviderFees,
		NetAmount:      d.NetAmount,
		Source:         string(d.Source),
		Status:         string(d.Status),
		ReconStatus:    string(d.ReconStatus),
		Reconciled:     d.Reconciled,
		MatchedWith:    d.MatchedWith,
		TransactionRef: d.TransactionRef,
		ProviderRef:    d.ProviderRef,
		ReceivedAt:     d.ReceivedAt,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.Exception != nil {
		excType := string(d.Exception.Type)
		excDetail := d.Exception.Detail
		m.ExceptionType = &excType
		m.ExceptionDetail = &excDetail
	}
	return m
}

// ToDomainDonation converts a model Donation to a domain Donation
func ToDomainDonation(m models.Donation) domain.Donation {
	d := domain.Donation{
		DonationID:     m.DonationID,
		DonorName:      m.DonorName,
		GrossAmount:    m.GrossAmount,
		ProviderFees:   m.ProviderFees,
		NetAmount:      m.NetAmount,
		Source:         domain.DonationSource(m.Source),
		Status:         domain.DonationStatus(m.Status),
		ReconStatus:    domain.ReconciliationStatus(m.ReconStatus),
		Reconciled:     m.Reconciled,
		MatchedWith:    m.MatchedWith,
		TransactionRef: m.TransactionRef,
		ProviderRef:    m.ProviderRef,
		ReceivedAt:     m.ReceivedAt,
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.ExceptionType != nil {
		d.Exception = &domain.Exception{
			Type: domain.ExceptionType(*m.ExceptionType),
		}
		if m.ExceptionDetail != nil {
			d.Exception.Detail = *m.ExceptionDetail
		}
	}
	return d
}

// ToDomainDonationSlice converts a slice of model Donations to domain Donations
func ToDomainDonationSlice(ms []models.Donation) []domain.Donation {
	ds := make([]domain.Donation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDonation(m)
	}
	return ds
}
