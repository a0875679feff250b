package reporter

import (
	"fmt"
	"io"
	"strings"
)

// GenerateMarkdown creates a markdown report
func GenerateMarkdown(report *Report, writer io.Writer) error {
	var b strings.Builder

	b.WriteString("# Cloud Cost Advisory Report\n\n")
	if report.SourceName != "" {
		fmt.Fprintf(&b, "**Source:** %s  \n", report.SourceName)
	}
	fmt.Fprintf(&b, "**Generated:** %s  \n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "**Findings:** %d  \n", report.Summary.NumFindings)
	fmt.Fprintf(&b, "**Total Estimated Monthly Savings:** $%.2f\n\n", report.Summary.TotalEstimatedMonthlySavings)

	if report.Summary.NumFindings == 0 {
		b.WriteString("No savings opportunities found.\n")
		_, err := io.WriteString(writer, b.String())
		return err
	}

	if report.TopFinding != nil {
		fmt.Fprintf(&b, "Largest opportunity: **%s** (%s) at $%.2f/month.\n\n",
			report.TopFinding.ResourceName, report.TopFinding.Issue, report.TopFinding.EstimatedSavings)
	}

	b.WriteString("## Findings\n\n")
	b.WriteString("| Service | Resource | Issue | Savings ($/mo) | Confidence |\n")
	b.WriteString("|---------|----------|-------|----------------|------------|\n")
	for _, f := range report.Summary.Findings {
		fmt.Fprintf(&b, "| %s | %s | %s | %.2f | %s |\n",
			escapePipes(f.Service), escapePipes(f.ResourceName), f.Issue, f.EstimatedSavings, f.Confidence)
	}

	b.WriteString("\n## Issue Breakdown\n\n")
	b.WriteString("| Issue | Findings | Savings ($/mo) |\n")
	b.WriteString("|-------|----------|----------------|\n")
	for _, stat := range report.IssueStats {
		fmt.Fprintf(&b, "| %s | %d | %.2f |\n", stat.Issue, stat.Count, stat.TotalSavings)
	}

	b.WriteString("\n## Details\n\n")
	for _, f := range report.Summary.Findings {
		fmt.Fprintf(&b, "### %s (%s)\n\n", f.ResourceName, f.Issue)
		fmt.Fprintf(&b, "%s\n\n", f.Explanation)
		fmt.Fprintf(&b, "%s\n\n", f.ActionCommand)
	}

	_, err := io.WriteString(writer, b.String())
	return err
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
