package explain

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/cloudsaver/billing-advisor/pkg/models"
)

// WithFallback runs the generator and guarantees usable text: any failure,
// including a nil generator, degrades to the deterministic template instead
// of propagating an error. One attempt, no retry.
func WithFallback(ctx context.Context, g Generator, rec models.CanonicalRecord, issue models.IssueType, savings float64, confidence models.Confidence) (string, string) {
	if g != nil {
		explanation, actionPlan, err := g.Explain(ctx, rec, issue, savings, confidence)
		if err == nil {
			return explanation, actionPlan
		}
		log.Warn().
			Err(err).
			Str("resource", rec.ResourceName).
			Str("issue", string(issue)).
			Msg("explanation generator failed, using fallback text")
	}
	return FallbackText(rec, issue)
}

// FallbackText is the deterministic explanation used when no generator is
// configured or the external call fails.
func FallbackText(rec models.CanonicalRecord, issue models.IssueType) (string, string) {
	explanation := fmt.Sprintf("%s resource %s could be optimized. Consider %s.",
		rec.Service, rec.ResourceName, issue)
	return explanation, "Manual review recommended."
}
