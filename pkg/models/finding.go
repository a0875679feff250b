package models

// IssueType identifies which heuristic produced a finding
type IssueType string

const (
	IssueNone              IssueType = ""
	IssueResizeInstance    IssueType = "resize_instance"
	IssueMoveToColdStorage IssueType = "move_to_cold_storage"
	IssueReviewBigQuery    IssueType = "review_bigquery_optimization"
	IssueRemoveGPU         IssueType = "remove_gpu_or_schedule_batch"
)

// Confidence is a qualitative reliability tag, not a statistical measure
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
)

// Finding is one actionable recommendation for a single resource.
// Created once per qualifying record and never mutated afterward.
type Finding struct {
	ID               string     `json:"id"`
	Service          string     `json:"service"`
	ResourceName     string     `json:"resource_name"`
	Issue            IssueType  `json:"issue"`
	EstimatedSavings float64    `json:"estimated_savings"`
	Confidence       Confidence `json:"confidence"`
	Explanation      string     `json:"explanation"`
	ActionCommand    string     `json:"action_command"`
}

// Summary is the terminal artifact of one analysis run
type Summary struct {
	Timestamp                    string    `json:"timestamp"`
	TotalEstimatedMonthlySavings float64   `json:"total_estimated_monthly_savings"`
	NumFindings                  int       `json:"num_findings"`
	Findings                     []Finding `json:"findings"`
}
