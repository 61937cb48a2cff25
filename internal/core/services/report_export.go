package services

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/temple-trust/temple_finance_app/internal/core/domain"
)

// csvDateLayout is the date format used throughout the export.
const csvDateLayout = "2006-01-02"

// ExportCSV serialises a report into the fixed-section CSV contract consumed
// by downstream spreadsheets: a two-line preamble, then SUMMARY, DONATIONS
// and EXPENSES sections in that order. Numeric fields carry no thousands
// separators or currency symbols. The same report always produces
// byte-identical output.
func (s *reportingService) ExportCSV(report *domain.FinanceReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"Finance Report"},
		{fmt.Sprintf("Period: %s to %s", report.From.Format(csvDateLayout), report.To.Format(csvDateLayout))},
		{"=== SUMMARY ==="},
		{"Total Donations", report.TotalDonations.StringFixed(2)},
		{"Total Expenses", report.TotalExpenses.StringFixed(2)},
		{"Net Income", report.NetIncome.StringFixed(2)},
		{"=== DONATIONS ==="},
		{"Date", "Donor", "Amount", "Source", "Provider", "Status"},
	}

	for _, d := range report.Donations {
		records = append(records, []string{
			d.ReceivedAt.Format(csvDateLayout),
			d.DonorName,
			d.NetAmount.StringFixed(2),
			string(d.Source),
			d.ProviderRef,
			string(d.Status),
		})
	}

	records = append(records,
		[]string{"=== EXPENSES ==="},
		[]string{"Date", "Description", "Vendor", "Amount", "Category", "Status"},
	)
	for _, e := range report.Expenses {
		records = append(records, []string{
			e.ExpenseDate.Format(csvDateLayout),
			e.Description,
			e.Vendor,
			e.Amount.StringFixed(2),
			string(e.Category),
			string(e.Status),
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write report CSV: %w", err)
	}
	return buf.Bytes(), nil
}
