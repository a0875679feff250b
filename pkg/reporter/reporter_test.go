package reporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cloudsaver/billing-advisor/pkg/models"
)

func testSummary() *models.Summary {
	return &models.Summary{
		Timestamp:                    "2026-01-15T10:00:00Z",
		TotalEstimatedMonthlySavings: 105.0,
		NumFindings:                  3,
		Findings: []models.Finding{
			{Service: "compute", ResourceName: "vm-1", Issue: models.IssueResizeInstance, EstimatedSavings: 45, Confidence: models.ConfidenceMedium, Explanation: "idle vm", ActionCommand: "resize"},
			{Service: "storage", ResourceName: "bucket-a", Issue: models.IssueMoveToColdStorage, EstimatedSavings: 40, Confidence: models.ConfidenceMedium, Explanation: "cold data", ActionCommand: "retier"},
			{Service: "compute", ResourceName: "vm-2", Issue: models.IssueResizeInstance, EstimatedSavings: 20, Confidence: models.ConfidenceLow, Explanation: "idle vm", ActionCommand: "resize"},
		},
	}
}

func TestGenerateStats(t *testing.T) {
	r := New(FormatMarkdown)

	report, err := r.Generate(testSummary(), "billing.csv")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	resize := report.IssueStats[models.IssueResizeInstance]
	if resize == nil || resize.Count != 2 {
		t.Fatalf("Expected 2 resize findings, got %+v", resize)
	}
	if resize.TotalSavings != 65 {
		t.Errorf("Expected resize savings 65, got %v", resize.TotalSavings)
	}

	if report.ConfidenceStats[models.ConfidenceMedium] != 2 {
		t.Errorf("Expected 2 medium findings, got %d", report.ConfidenceStats[models.ConfidenceMedium])
	}

	if report.TopFinding == nil || report.TopFinding.ResourceName != "vm-1" {
		t.Errorf("Expected vm-1 as top finding, got %+v", report.TopFinding)
	}
}

func TestGenerateNilSummary(t *testing.T) {
	r := New(FormatCSV)
	if _, err := r.Generate(nil, ""); err == nil {
		t.Error("Expected error for nil summary")
	}
}

func TestWriteCSV(t *testing.T) {
	r := New(FormatCSV)
	report, err := r.Generate(testSummary(), "billing.csv")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Write(report, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Service,Resource,Issue", "vm-1", "resize_instance", "Total Monthly Savings", "$105.00", "ISSUE BREAKDOWN"} {
		if !strings.Contains(out, want) {
			t.Errorf("CSV report missing %q", want)
		}
	}
}

func TestWriteMarkdown(t *testing.T) {
	r := New(FormatMarkdown)
	report, err := r.Generate(testSummary(), "billing.csv")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Write(report, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"# Cloud Cost Advisory Report", "$105.00", "| compute | vm-1 |", "## Issue Breakdown", "bucket-a"} {
		if !strings.Contains(out, want) {
			t.Errorf("Markdown report missing %q", want)
		}
	}
}

func TestWriteMarkdownEmpty(t *testing.T) {
	r := New(FormatMarkdown)
	report, err := r.Generate(&models.Summary{Findings: []models.Finding{}}, "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Write(report, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No savings opportunities found.") {
		t.Error("Expected empty-report message")
	}
}

func TestWriteHTML(t *testing.T) {
	r := New(FormatHTML)
	report, err := r.Generate(testSummary(), "billing.csv")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Write(report, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"<!DOCTYPE html>", "vm-1", "move_to_cold_storage", "$105.00/month"} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML report missing %q", want)
		}
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	r := New(ReportFormat("pdf"))
	report, err := r.Generate(testSummary(), "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if err := r.Write(report, &bytes.Buffer{}); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
