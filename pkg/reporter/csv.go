package reporter

import (
	"encoding/csv"
	"fmt"
	"io"
)

// GenerateCSV creates a CSV report
func GenerateCSV(report *Report, writer io.Writer) error {
	w := csv.NewWriter(writer)
	defer w.Flush()

	header := []string{
		"Service",
		"Resource",
		"Issue",
		"Estimated Savings ($)",
		"Confidence",
		"Explanation",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, f := range report.Summary.Findings {
		row := []string{
			f.Service,
			f.ResourceName,
			string(f.Issue),
			fmt.Sprintf("%.2f", f.EstimatedSavings),
			string(f.Confidence),
			f.Explanation,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	// Summary rows
	w.Write([]string{})
	w.Write([]string{"SUMMARY"})
	w.Write([]string{"Generated", report.Summary.Timestamp})
	w.Write([]string{"Findings", fmt.Sprintf("%d", report.Summary.NumFindings)})
	w.Write([]string{"Total Monthly Savings", fmt.Sprintf("$%.2f", report.Summary.TotalEstimatedMonthlySavings)})

	// Issue breakdown
	w.Write([]string{})
	w.Write([]string{"ISSUE BREAKDOWN"})
	w.Write([]string{"Issue", "Findings", "Savings"})
	for _, stat := range report.IssueStats {
		w.Write([]string{
			string(stat.Issue),
			fmt.Sprintf("%d", stat.Count),
			fmt.Sprintf("$%.2f", stat.TotalSavings),
		})
	}

	return nil
}
