package recommender

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cloudsaver/billing-advisor/pkg/config"
	"github.com/cloudsaver/billing-advisor/pkg/models"
)

// service-name keywords per rule family
var (
	computeServices = []string{"compute", "instance", "vm", "dataproc", "gce", "computeengine", "ec2"}
	storageServices = []string{"cloud_storage", "storage", "bucket", "filestore"}
	gpuServices     = []string{"gpu", "tpu"}
)

// cpuTargetUtilization is the benchmark a healthy instance should run at;
// the idleness rule measures unused capacity against it.
const cpuTargetUtilization = 0.5

// Recommender evaluates the heuristic rule families against a normalized
// billing record. Thresholds live on the struct so they can be tuned
// without code changes.
type Recommender struct {
	idleCPUThreshold  float64
	lowIOPSThreshold  float64
	highCostThreshold float64
	gpuLowUtil        float64
	gpuCostThreshold  float64
	minUsageHours     float64
}

// New creates a Recommender with the default thresholds
func New() *Recommender {
	return NewFromConfig(config.NewConfig())
}

// NewFromConfig creates a Recommender using the configured thresholds
func NewFromConfig(cfg *config.Config) *Recommender {
	return &Recommender{
		idleCPUThreshold:  cfg.IdleCPUThreshold,
		lowIOPSThreshold:  cfg.LowIOPSThreshold,
		highCostThreshold: cfg.HighCostThreshold,
		gpuLowUtil:        cfg.GPULowUtil,
		gpuCostThreshold:  cfg.GPUCostThreshold,
		minUsageHours:     cfg.MinUsageHours,
	}
}

type candidate struct {
	issue      models.IssueType
	savings    float64
	confidence models.Confidence
}

// Score evaluates all rule families against a record. Rules are not
// mutually exclusive; each may propose a candidate, and a later rule only
// replaces the running best when its savings are strictly larger, so ties
// keep the earlier rule. Savings are rounded to cents.
func (r *Recommender) Score(rec models.CanonicalRecord) (models.IssueType, float64, models.Confidence) {
	best := candidate{issue: models.IssueNone, confidence: models.ConfidenceLow}

	rules := []func(models.CanonicalRecord) (candidate, bool){
		r.computeIdleness,
		r.storageColdTier,
		r.bigQueryReview,
		r.gpuUnderutilization,
	}
	for _, rule := range rules {
		if c, ok := rule(rec); ok && c.savings > best.savings {
			best = c
		}
	}

	return best.issue, roundUSD(best.savings), best.confidence
}

// computeIdleness flags chronically idle compute instances. Savings credit
// only half the unused capacity below the target utilization.
func (r *Recommender) computeIdleness(rec models.CanonicalRecord) (candidate, bool) {
	service := strings.ToLower(rec.Service)
	if !containsAny(service, computeServices) {
		return candidate{}, false
	}
	if rec.AvgCPU >= r.idleCPUThreshold || rec.UsageHours < r.minUsageHours || rec.MonthlyCost <= r.highCostThreshold {
		return candidate{}, false
	}

	unusedFraction := clamp(1-rec.AvgCPU/cpuTargetUtilization, 0.1, 0.9)
	confidence := models.ConfidenceLow
	if rec.AvgCPU < 0.1 {
		confidence = models.ConfidenceMedium
	}
	return candidate{
		issue:      models.IssueResizeInstance,
		savings:    rec.MonthlyCost * unusedFraction * 0.5,
		confidence: confidence,
	}, true
}

// storageColdTier flags buckets with no observable IO. Fires even when the
// export carried no IOPS column at all, since missing IOPS normalizes to 0.
func (r *Recommender) storageColdTier(rec models.CanonicalRecord) (candidate, bool) {
	service := strings.ToLower(rec.Service)
	if !containsAny(service, storageServices) {
		return candidate{}, false
	}
	if rec.IOPS >= r.lowIOPSThreshold || rec.MonthlyCost <= r.highCostThreshold {
		return candidate{}, false
	}
	return candidate{
		issue:      models.IssueMoveToColdStorage,
		savings:    rec.MonthlyCost * 0.5,
		confidence: models.ConfidenceMedium,
	}, true
}

// bigQueryReview flags high-spend BigQuery projects for a manual look at
// partitioning and clustering. BigQuery billing magnitudes differ from the
// other services, so the cost bar is five times the base threshold and the
// savings multiplier is deliberately small.
func (r *Recommender) bigQueryReview(rec models.CanonicalRecord) (candidate, bool) {
	service := strings.ToLower(rec.Service)
	if !strings.Contains(service, "bigquery") {
		return candidate{}, false
	}
	if rec.MonthlyCost <= r.highCostThreshold*5 {
		return candidate{}, false
	}
	return candidate{
		issue:      models.IssueReviewBigQuery,
		savings:    rec.MonthlyCost * 0.2,
		confidence: models.ConfidenceLow,
	}, true
}

// gpuUnderutilization flags expensive accelerators sitting mostly idle.
// A record qualifies by service name or by carrying any GPU utilization
// signal at all.
func (r *Recommender) gpuUnderutilization(rec models.CanonicalRecord) (candidate, bool) {
	service := strings.ToLower(rec.Service)
	if !containsAny(service, gpuServices) && rec.AvgGPUUtil <= 0 {
		return candidate{}, false
	}
	if rec.AvgGPUUtil >= r.gpuLowUtil || rec.MonthlyCost <= r.gpuCostThreshold {
		return candidate{}, false
	}
	return candidate{
		issue:      models.IssueRemoveGPU,
		savings:    rec.MonthlyCost * 0.5,
		confidence: models.ConfidenceMedium,
	}, true
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundUSD rounds a dollar amount to cents
func roundUSD(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
