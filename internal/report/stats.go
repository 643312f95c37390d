package report

import (
	"math"
	"sort"
)

// TermStats aggregates the numeric Terms_Count values of a group of rows.
type TermStats struct {
	Part   string  `json:"part"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Stats holds the document-wide aggregate and one aggregate per part,
// sorted by part title.
type Stats struct {
	Document TermStats   `json:"document"`
	Parts    []TermStats `json:"parts"`
}

// DocumentLabel names the document-wide statistics row.
const DocumentLabel = "Entire Document"

// ComputeStats aggregates term counts over rows that have tables. Parts
// sharing a title are grouped together.
func ComputeStats(rows []BreakdownRow) Stats {
	var all []int
	byPart := make(map[string][]int)
	for _, row := range rows {
		if row.TermsCount == nil {
			continue
		}
		all = append(all, *row.TermsCount)
		byPart[row.Part] = append(byPart[row.Part], *row.TermsCount)
	}

	stats := Stats{Document: summarize(DocumentLabel, all)}

	parts := make([]string, 0, len(byPart))
	for part := range byPart {
		parts = append(parts, part)
	}
	sort.Strings(parts)
	for _, part := range parts {
		stats.Parts = append(stats.Parts, summarize(part, byPart[part]))
	}
	return stats
}

func summarize(label string, values []int) TermStats {
	return TermStats{
		Part:   label,
		Count:  len(values),
		Mean:   mean(values),
		StdDev: sampleStdDev(values),
	}
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum int
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// sampleStdDev uses the n-1 denominator and is 0 below two values.
func sampleStdDev(values []int) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		d := float64(v) - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)-1))
}
