package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cloudsaver/billing-advisor/pkg/models"
)

// delimiter candidates tried by the sniffer, in preference order
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// sniffSampleLines is how many lines the delimiter sniffer inspects
const sniffSampleLines = 10

// DecodeText converts uploaded bytes to a string suitable for Parse.
// Invalid UTF-8 sequences become replacement characters instead of failing
// the upload.
func DecodeText(data []byte) string {
	return strings.ToValidUTF8(string(data), "�")
}

// Parse reads raw CSV text into rows keyed by the (trimmed) header line.
// A leading byte-order-mark is stripped, the delimiter is sniffed from the
// first lines, and comma is retried as the universal fallback on any parse
// failure. Empty or header-only input yields zero rows and no error; only
// a structurally unparseable file is an error.
func Parse(text string) ([]models.RawRow, error) {
	text = strings.TrimPrefix(text, "\uFEFF")

	delim := sniffDelimiter(text)
	rows, err := parseWith(text, delim)
	if err != nil && delim != ',' {
		rows, err = parseWith(text, ',')
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}

// sniffDelimiter picks the candidate that appears a consistent, non-zero
// number of times across the sample lines. Comma is the fallback.
func sniffDelimiter(text string) rune {
	var sample []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		sample = append(sample, line)
		if len(sample) == sniffSampleLines {
			break
		}
	}
	if len(sample) == 0 {
		return ','
	}

	best := ','
	bestCount := 0
	for _, cand := range delimiterCandidates {
		count := strings.Count(sample[0], string(cand))
		if count == 0 {
			continue
		}
		consistent := true
		for _, line := range sample[1:] {
			if strings.Count(line, string(cand)) != count {
				consistent = false
				break
			}
		}
		if consistent && count > bestCount {
			best = cand
			bestCount = count
		}
	}
	return best
}

func parseWith(text string, delim rune) ([]models.RawRow, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1 // tolerate ragged rows
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []models.RawRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(models.RawRow, 0, len(header))
		for i, value := range record {
			if i >= len(header) {
				break
			}
			row = append(row, models.RawField{Key: header[i], Value: value})
		}
		rows = append(rows, row)
	}
	return rows, nil
}
