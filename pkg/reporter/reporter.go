package reporter

import (
	"fmt"
	"io"
	"time"

	"github.com/cloudsaver/billing-advisor/pkg/models"
)

// ReportFormat represents the output format
type ReportFormat string

const (
	FormatMarkdown ReportFormat = "markdown"
	FormatCSV      ReportFormat = "csv"
	FormatHTML     ReportFormat = "html"
)

// Report contains all data for generating reports
type Report struct {
	SourceName      string
	GeneratedAt     time.Time
	Summary         *models.Summary
	IssueStats      map[models.IssueType]*IssueStats
	ConfidenceStats map[models.Confidence]int
	TopFinding      *models.Finding
}

// IssueStats holds statistics per issue type
type IssueStats struct {
	Issue        models.IssueType
	Count        int
	TotalSavings float64
}

// Reporter generates cost advisory reports
type Reporter struct {
	format ReportFormat
}

// New creates a new reporter
func New(format ReportFormat) *Reporter {
	return &Reporter{format: format}
}

// Generate builds a report from an analysis summary
func (r *Reporter) Generate(summary *models.Summary, sourceName string) (*Report, error) {
	if summary == nil {
		return nil, fmt.Errorf("summary is nil")
	}
	report := &Report{
		SourceName:      sourceName,
		GeneratedAt:     time.Now(),
		Summary:         summary,
		IssueStats:      make(map[models.IssueType]*IssueStats),
		ConfidenceStats: make(map[models.Confidence]int),
	}
	r.calculateStats(report)
	return report, nil
}

// Write renders the report in the reporter's format
func (r *Reporter) Write(report *Report, w io.Writer) error {
	switch r.format {
	case FormatCSV:
		return GenerateCSV(report, w)
	case FormatMarkdown:
		return GenerateMarkdown(report, w)
	case FormatHTML:
		return GenerateHTML(report, w)
	default:
		return fmt.Errorf("unsupported report format: %s", r.format)
	}
}

// calculateStats computes breakdowns over the findings
func (r *Reporter) calculateStats(report *Report) {
	for i := range report.Summary.Findings {
		f := &report.Summary.Findings[i]

		stat, exists := report.IssueStats[f.Issue]
		if !exists {
			stat = &IssueStats{Issue: f.Issue}
			report.IssueStats[f.Issue] = stat
		}
		stat.Count++
		stat.TotalSavings += f.EstimatedSavings

		report.ConfidenceStats[f.Confidence]++

		if report.TopFinding == nil || f.EstimatedSavings > report.TopFinding.EstimatedSavings {
			report.TopFinding = f
		}
	}
}
