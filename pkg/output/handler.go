package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cloudsaver/billing-advisor/pkg/models"
)

// Handler defines the interface for output formatting
type Handler interface {
	DisplaySummary(ctx context.Context, summary *models.Summary) error
	Format() string
}

// NewHandler returns a handler for the requested format
func NewHandler(format string, w io.Writer) (Handler, error) {
	switch format {
	case "text":
		return &TextHandler{w: w}, nil
	case "json":
		return &JSONHandler{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s (want text or json)", format)
	}
}

// TextHandler prints a human-readable summary
type TextHandler struct {
	w io.Writer
}

func (h *TextHandler) Format() string { return "text" }

func (h *TextHandler) DisplaySummary(ctx context.Context, summary *models.Summary) error {
	fmt.Fprintf(h.w, "Cloud Cost Advisory - %s\n", summary.Timestamp)
	fmt.Fprintf(h.w, "%d finding(s), estimated $%.2f/month in savings\n\n",
		summary.NumFindings, summary.TotalEstimatedMonthlySavings)

	for i, f := range summary.Findings {
		fmt.Fprintf(h.w, "%d. [%s] %s", i+1, f.Confidence, f.ResourceName)
		if f.Service != "" {
			fmt.Fprintf(h.w, " (%s)", f.Service)
		}
		fmt.Fprintf(h.w, "\n")
		fmt.Fprintf(h.w, "   Issue: %s\n", f.Issue)
		fmt.Fprintf(h.w, "   Savings: $%.2f/month\n", f.EstimatedSavings)
		fmt.Fprintf(h.w, "   %s\n", f.Explanation)
		fmt.Fprintf(h.w, "   Action: %s\n\n", f.ActionCommand)
	}

	if summary.NumFindings == 0 {
		fmt.Fprintln(h.w, "No savings opportunities found.")
	}
	return nil
}

// JSONHandler prints the summary as indented JSON
type JSONHandler struct {
	w io.Writer
}

func (h *JSONHandler) Format() string { return "json" }

func (h *JSONHandler) DisplaySummary(ctx context.Context, summary *models.Summary) error {
	enc := json.NewEncoder(h.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}
