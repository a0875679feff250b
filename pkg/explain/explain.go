package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/cloudsaver/billing-advisor/pkg/models"
)

// Generator produces a human-readable explanation and action plan for a
// scored finding. Implementations may call out to an external service and
// fail; callers should go through WithFallback.
type Generator interface {
	Explain(ctx context.Context, rec models.CanonicalRecord, issue models.IssueType, savings float64, confidence models.Confidence) (explanation, actionPlan string, err error)
}

// suggestionText gives each issue tag a descriptive phrasing used in both
// the prompt and the fallback text.
var suggestionText = map[models.IssueType]string{
	models.IssueResizeInstance:    "Rightsizing (e.g., downsize instance type) for a VM with low CPU and memory utilization.",
	models.IssueMoveToColdStorage: "Move infrequently accessed data to a cheaper storage class (e.g., Nearline/Coldline/Archive).",
	models.IssueRemoveGPU:         "Remove an underutilized GPU or switch to on-demand batch processing.",
	models.IssueReviewBigQuery:    "Review BigQuery table for optimization. Check partitioning, clustering, or if data qualifies for long-term storage.",
}

// Suggestion returns the descriptive text for an issue tag, falling back to
// the tag itself for unknown values.
func Suggestion(issue models.IssueType) string {
	if text, ok := suggestionText[issue]; ok {
		return text
	}
	return string(issue)
}

// OpenAIGenerator asks a chat-completion model for the explanation and
// action plan, constrained to a JSON object response.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a generator backed by the OpenAI chat completions API
func NewOpenAI(apiKey, model string) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

type generatedText struct {
	Explanation string `json:"explanation"`
	ActionPlan  string `json:"action_plan"`
}

// Explain performs a single attempt against the model; there is no retry.
func (g *OpenAIGenerator) Explain(ctx context.Context, rec models.CanonicalRecord, issue models.IssueType, savings float64, confidence models.Confidence) (string, string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(rec, issue, savings, confidence)},
		},
		MaxTokens:      500,
		Temperature:    0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	})
	if err != nil {
		return "", "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", "", fmt.Errorf("chat completion returned no choices")
	}
	return parseResponse(resp.Choices[0].Message.Content)
}

// parseResponse extracts the JSON object from the model output. Models
// occasionally wrap the object in prose despite instructions, so the first
// balanced-looking object substring is taken.
func parseResponse(text string) (string, string, error) {
	match := jsonObjectPattern.FindString(strings.TrimSpace(text))
	if match == "" {
		return "", "", fmt.Errorf("no JSON object found in model response")
	}
	var gen generatedText
	if err := json.Unmarshal([]byte(match), &gen); err != nil {
		return "", "", fmt.Errorf("failed to decode model response: %w", err)
	}
	if gen.Explanation == "" {
		gen.Explanation = "No explanation provided."
	}
	if gen.ActionPlan == "" {
		gen.ActionPlan = "No action plan provided. Manual review recommended."
	}
	return gen.Explanation, gen.ActionPlan, nil
}

func buildPrompt(rec models.CanonicalRecord, issue models.IssueType, savings float64, confidence models.Confidence) string {
	return fmt.Sprintf(`You are an expert Google Cloud (GCP) and AWS FinOps assistant. Your task is to provide a clear, actionable optimization plan for an engineer.
You MUST return ONLY a single, valid JSON object with two keys: "explanation" and "action_plan". Do not include any text before or after the JSON.

Given the following resource summary:
- Service: %s
- Resource Name: %s
- Average CPU Utilization: %.1f%%
- Average Memory Utilization: %.1f%%
- Monthly Cost: $%.2f
- Suggested Fix: %s
- Estimated Monthly Savings: $%.2f
- Confidence: %s

Generate the following:
1. "explanation": A concise, one-paragraph explanation of *why* this resource is inefficient, referencing its specific metrics.
2. "action_plan": A detailed, step-by-step guide for an engineer to execute this fix.
   - Use **markdown** for formatting.
   - For CLI commands (gcloud, aws-cli), provide the *exact* command in a code block. Use placeholders like '<resource_name>' or '<new_machine_type>' where appropriate.
   - For console (UI) actions, provide a numbered list of steps (e.g., "1. Navigate to the Compute Engine console...").
   - Be specific and practical.`,
		rec.Service, rec.ResourceName, rec.AvgCPU*100, rec.AvgMem*100,
		rec.MonthlyCost, Suggestion(issue), savings, confidence)
}
