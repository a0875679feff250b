package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/cloudsaver/billing-advisor/pkg/config"
	"github.com/cloudsaver/billing-advisor/pkg/explain"
	"github.com/cloudsaver/billing-advisor/pkg/ingest"
	"github.com/cloudsaver/billing-advisor/pkg/models"
	"github.com/cloudsaver/billing-advisor/pkg/normalizer"
	"github.com/cloudsaver/billing-advisor/pkg/recommender"
)

// Analyzer runs the normalization and scoring pipeline over a billing
// export. Each run is independent; there is no cross-request state.
type Analyzer struct {
	normalizer  *normalizer.Normalizer
	recommender *recommender.Recommender
	generator   explain.Generator // nil disables external explanations
}

// New builds an Analyzer from configuration. An OpenAI-backed explanation
// generator is wired only when an API key is configured.
func New(cfg *config.Config) *Analyzer {
	var gen explain.Generator
	if cfg.OpenAIAPIKey != "" {
		gen = explain.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	return NewWithGenerator(cfg, gen)
}

// NewWithGenerator builds an Analyzer with an explicit explanation
// generator; pass nil to always use the fallback text.
func NewWithGenerator(cfg *config.Config, gen explain.Generator) *Analyzer {
	return &Analyzer{
		normalizer:  normalizer.New(cfg.INRToUSD),
		recommender: recommender.NewFromConfig(cfg),
		generator:   gen,
	}
}

// Analyze is the main entry: parse, normalize rows, apply the heuristics,
// attach explanations, and return the summary. Rows are processed in input
// order; a failing row is logged and skipped without aborting the batch.
// Only an unparseable CSV is a fatal error.
func (a *Analyzer) Analyze(ctx context.Context, csvText string) (*models.Summary, error) {
	rows, err := ingest.Parse(csvText)
	if err != nil {
		return nil, fmt.Errorf("ingestion failed: %w", err)
	}
	log.Info().Int("rows", len(rows)).Msg("parsed billing CSV")

	findings := make([]models.Finding, 0)
	for i, row := range rows {
		finding, ok := a.scoreRow(ctx, i, row)
		if ok {
			findings = append(findings, finding)
		}
	}
	return Summarize(findings), nil
}

// scoreRow processes a single row. A panic from an unexpected edge case is
// contained here so one malformed row cannot take down the batch.
func (a *Analyzer) scoreRow(ctx context.Context, index int, row models.RawRow) (finding models.Finding, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Int("row", index).Interface("panic", r).Msg("failed processing row, skipping")
			ok = false
		}
	}()

	rec := a.normalizer.Normalize(row)
	issue, savings, confidence := a.recommender.Score(rec)
	if issue == models.IssueNone {
		return models.Finding{}, false
	}

	explanation, actionPlan := explain.WithFallback(ctx, a.generator, rec, issue, savings, confidence)

	return models.Finding{
		ID:               uuid.New().String(),
		Service:          rec.Service,
		ResourceName:     rec.ResourceName,
		Issue:            issue,
		EstimatedSavings: savings,
		Confidence:       confidence,
		Explanation:      explanation,
		ActionCommand:    actionPlan,
	}, true
}

// Summarize aggregates findings into the terminal summary. Pure
// aggregation: input order is preserved and nothing is filtered.
func Summarize(findings []models.Finding) *models.Summary {
	if findings == nil {
		findings = make([]models.Finding, 0)
	}
	total := decimal.Zero
	for _, f := range findings {
		total = total.Add(decimal.NewFromFloat(f.EstimatedSavings))
	}
	return &models.Summary{
		Timestamp:                    time.Now().UTC().Format(time.RFC3339),
		TotalEstimatedMonthlySavings: total.Round(2).InexactFloat64(),
		NumFindings:                  len(findings),
		Findings:                     findings,
	}
}
