package normalizer

import (
	"regexp"
	"strconv"
	"strings"
)

var numberPattern = regexp.MustCompile(`-?\d+(\.\d+)?`)

// currency symbols and separators stripped before number extraction
var symbolReplacer = strings.NewReplacer(",", "", "₹", "", "$", "", "€", "", "£", "")

// CoerceNumber returns a float for many loosely-formatted numeric strings:
// currency symbols, thousands separators, trailing unit text ("50 INR").
// Failure degrades to 0 rather than an error; a malformed cell in a billing
// export should not abort the whole analysis.
func CoerceNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	switch strings.ToLower(s) {
	case "nan", "none", "null":
		return 0
	}
	s = strings.TrimSpace(symbolReplacer.Replace(s))
	m := numberPattern.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// PercentOrFraction converts utilization values to a fraction. Values in
// [0,1] are taken as fractions already; anything larger is assumed to be a
// 0-100 percentage and divided by 100. The two cases are indistinguishable
// below 1, and sub-1% utilization is rare enough that the tie goes to
// "fraction".
func PercentOrFraction(raw string) float64 {
	v := CoerceNumber(raw)
	if v >= 0 && v <= 1 {
		return v
	}
	return v / 100
}
