package explain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudsaver/billing-advisor/pkg/models"
)

type failingGenerator struct{}

func (failingGenerator) Explain(ctx context.Context, rec models.CanonicalRecord, issue models.IssueType, savings float64, confidence models.Confidence) (string, string, error) {
	return "", "", errors.New("quota exceeded")
}

type stubGenerator struct {
	explanation string
	actionPlan  string
}

func (g stubGenerator) Explain(ctx context.Context, rec models.CanonicalRecord, issue models.IssueType, savings float64, confidence models.Confidence) (string, string, error) {
	return g.explanation, g.actionPlan, nil
}

var testRecord = models.CanonicalRecord{
	Service:      "compute-engine",
	ResourceName: "vm-1",
	AvgCPU:       0.05,
	MonthlyCost:  100,
}

func TestWithFallbackNilGenerator(t *testing.T) {
	explanation, action := WithFallback(context.Background(), nil, testRecord, models.IssueResizeInstance, 45, models.ConfidenceMedium)

	want := "compute-engine resource vm-1 could be optimized. Consider resize_instance."
	if explanation != want {
		t.Errorf("Expected fallback explanation %q, got %q", want, explanation)
	}
	if action != "Manual review recommended." {
		t.Errorf("Expected manual review action, got %q", action)
	}
}

func TestWithFallbackOnGeneratorError(t *testing.T) {
	explanation, action := WithFallback(context.Background(), failingGenerator{}, testRecord, models.IssueRemoveGPU, 75, models.ConfidenceMedium)

	if !strings.Contains(explanation, "could be optimized") {
		t.Errorf("Expected fallback text on generator failure, got %q", explanation)
	}
	if action != "Manual review recommended." {
		t.Errorf("Expected manual review action, got %q", action)
	}
}

func TestWithFallbackPassesThroughSuccess(t *testing.T) {
	gen := stubGenerator{explanation: "The VM averages 5% CPU.", actionPlan: "Resize it."}

	explanation, action := WithFallback(context.Background(), gen, testRecord, models.IssueResizeInstance, 45, models.ConfidenceMedium)

	if explanation != gen.explanation || action != gen.actionPlan {
		t.Errorf("Expected generator output passed through, got %q / %q", explanation, action)
	}
}

func TestParseResponse(t *testing.T) {
	explanation, action, err := parseResponse(`{"explanation": "idle VM", "action_plan": "resize"}`)
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	if explanation != "idle VM" || action != "resize" {
		t.Errorf("Unexpected parse result: %q / %q", explanation, action)
	}
}

func TestParseResponseWrappedInProse(t *testing.T) {
	explanation, _, err := parseResponse("Sure! Here you go:\n{\"explanation\": \"idle VM\", \"action_plan\": \"resize\"}\nHope that helps.")
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	if explanation != "idle VM" {
		t.Errorf("Expected JSON extracted from prose, got %q", explanation)
	}
}

func TestParseResponseNoJSON(t *testing.T) {
	if _, _, err := parseResponse("no structured data here"); err == nil {
		t.Error("Expected error when no JSON object is present")
	}
}

func TestParseResponseFillsMissingKeys(t *testing.T) {
	explanation, action, err := parseResponse(`{"explanation": "idle VM"}`)
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	if explanation != "idle VM" {
		t.Errorf("Unexpected explanation: %q", explanation)
	}
	if action != "No action plan provided. Manual review recommended." {
		t.Errorf("Expected default action plan, got %q", action)
	}
}

func TestBuildPromptIncludesMetrics(t *testing.T) {
	prompt := buildPrompt(testRecord, models.IssueResizeInstance, 45, models.ConfidenceMedium)

	for _, want := range []string{
		"compute-engine",
		"vm-1",
		"5.0%",
		"$100.00",
		"$45.00",
		"medium",
		Suggestion(models.IssueResizeInstance),
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}

func TestSuggestionUnknownIssue(t *testing.T) {
	if got := Suggestion(models.IssueType("custom_tag")); got != "custom_tag" {
		t.Errorf("Expected unknown issue to pass through, got %q", got)
	}
}
