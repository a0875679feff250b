package normalizer

import (
	"strings"

	"github.com/cloudsaver/billing-advisor/pkg/models"
)

// canonical field targets
const (
	fieldService      = "service"
	fieldResourceName = "resource_name"
	fieldUsageHours   = "usage_hours"
	fieldAvgCPU       = "avg_cpu"
	fieldAvgMem       = "avg_mem"
	fieldMonthlyCost  = "monthly_cost"
	fieldIOPS         = "iops"
	fieldAvgGPUUtil   = "avg_gpu_util"
)

// columnAliases maps known vendor header spellings (after lowercasing and
// space/hyphen to underscore) to canonical fields.
var columnAliases = map[string]string{
	"service_name":           fieldService,
	"service":                fieldService,
	"product":                fieldService,
	"resource_id":            fieldResourceName,
	"resource_name":          fieldResourceName,
	"resource":               fieldResourceName,
	"instance_id":            fieldResourceName,
	"usage_quantity":         fieldUsageHours,
	"usage_hours":            fieldUsageHours,
	"cpu_utilization_(%)":    fieldAvgCPU,
	"cpu_utilization":        fieldAvgCPU,
	"cpu_utilization_%":      fieldAvgCPU,
	"avg_cpu":                fieldAvgCPU,
	"memory_utilization_(%)": fieldAvgMem,
	"memory_utilization":     fieldAvgMem,
	"avg_mem":                fieldAvgMem,
	"total_cost_(inr)":       fieldMonthlyCost,
	"total_cost":             fieldMonthlyCost,
	"rounded_cost":           fieldMonthlyCost,
	"unrounded_cost":         fieldMonthlyCost,
	"monthly_cost":           fieldMonthlyCost,
	"cost":                   fieldMonthlyCost,
	"cost_per_quantity_($)":  fieldMonthlyCost,
	"iops":                   fieldIOPS,
	"avg_gpu_util":           fieldAvgGPUUtil,
	"gpu_utilization":        fieldAvgGPUUtil,
	"gpu_utilization_(%)":    fieldAvgGPUUtil,
}

// fallbackRules are tried in order when no alias matches; first substring
// hit wins.
var fallbackRules = []struct {
	substr string
	field  string
}{
	{"cpu", fieldAvgCPU},
	{"memory", fieldAvgMem},
	{"cost", fieldMonthlyCost},
}

// inrMarkers flag a cost column priced in rupees; checked against the
// original header text, not the canonicalized key.
var inrMarkers = []string{"inr", "rs", "rupee", "₹"}

// Normalizer maps raw billing rows to canonical records
type Normalizer struct {
	inrToUSD float64
}

// New creates a Normalizer with the given INR to USD exchange rate
func New(inrToUSD float64) *Normalizer {
	return &Normalizer{inrToUSD: inrToUSD}
}

// canonicalKey lowercases a header and collapses spaces and hyphens to
// underscores so vendor spellings line up with the alias table.
func canonicalKey(header string) string {
	key := strings.ToLower(strings.TrimSpace(header))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return key
}

// resolveTarget returns the canonical field for a header key, or "" if the
// column is unrecognized and should be ignored.
func resolveTarget(key string) string {
	if field, ok := columnAliases[key]; ok {
		return field
	}
	for _, rule := range fallbackRules {
		if strings.Contains(key, rule.substr) {
			return rule.field
		}
	}
	return ""
}

// Normalize maps a raw row to a fully-populated CanonicalRecord.
// Unrecognized headers are skipped; billing exports carry many irrelevant
// columns. When multiple headers resolve to the same field, last-seen-wins.
func (n *Normalizer) Normalize(row models.RawRow) models.CanonicalRecord {
	var rec models.CanonicalRecord

	for _, cell := range row {
		key := canonicalKey(cell.Key)
		if key == "" {
			continue
		}
		switch resolveTarget(key) {
		case fieldService:
			rec.Service = cell.Value
		case fieldResourceName:
			rec.ResourceName = cell.Value
		case fieldUsageHours:
			// usage quantity is not always hours; keep the raw number
			rec.UsageHours = CoerceNumber(cell.Value)
		case fieldAvgCPU:
			rec.AvgCPU = PercentOrFraction(cell.Value)
		case fieldAvgMem:
			rec.AvgMem = PercentOrFraction(cell.Value)
		case fieldMonthlyCost:
			cost := CoerceNumber(cell.Value)
			if headerMentionsINR(cell.Key) {
				cost *= n.inrToUSD
			}
			rec.MonthlyCost = cost
		case fieldIOPS:
			rec.IOPS = CoerceNumber(cell.Value)
		case fieldAvgGPUUtil:
			rec.AvgGPUUtil = PercentOrFraction(cell.Value)
		}
	}

	// assume the resource ran the full month when usage is unknown
	if rec.UsageHours == 0 {
		rec.UsageHours = 720
	}
	return rec
}

func headerMentionsINR(header string) bool {
	h := strings.ToLower(header)
	for _, marker := range inrMarkers {
		if strings.Contains(h, marker) {
			return true
		}
	}
	return false
}
