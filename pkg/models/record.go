package models

// RawField is one cell of a parsed CSV record, keyed by its original
// (trimmed) header text.
type RawField struct {
	Key   string
	Value string
}

// RawRow is a single CSV record in original column order. Order matters:
// duplicate headers mapping to the same canonical field resolve
// last-seen-wins, which is only deterministic if we preserve the file's
// column order.
type RawRow []RawField

// CanonicalRecord is the normalized resource-usage row consumed by the
// scoring rules. Every field is populated after normalization, so the
// rules never have to handle missing keys.
type CanonicalRecord struct {
	Service      string
	ResourceName string
	UsageHours   float64 // defaults to 720 (full month) when absent
	AvgCPU       float64 // fraction in [0,1]
	AvgMem       float64 // fraction in [0,1]
	AvgGPUUtil   float64 // fraction in [0,1]
	MonthlyCost  float64 // USD
	IOPS         float64
}
