package report

import (
	"strconv"
	"strings"

	"github.com/dgallion1/docstat/internal/outline"
)

// DefaultMarker flags a node as unfinished when it appears in the node's prose.
const DefaultMarker = "TODO"

const (
	StatusDone       = "Done"
	StatusUnfinished = "Unfinished"
)

// Report is the computed view of an outline, shared by every renderer.
type Report struct {
	Source    string         `json:"source"`
	Marker    string         `json:"marker"`
	Summary   []SummaryRow   `json:"summary"`
	Breakdown []BreakdownRow `json:"breakdown"`
	Stats     Stats          `json:"stats"`
}

// SummaryRow counts the sections and subsections of one part.
type SummaryRow struct {
	Part                  string `json:"part"`
	Sections              int    `json:"sections"`
	SectionsUnfinished    int    `json:"sections_unfinished"`
	Subsections           int    `json:"subsections"`
	SubsectionsUnfinished int    `json:"subsections_unfinished"`
}

// BreakdownRow describes one section or subsection. Nil lengths render as "-".
type BreakdownRow struct {
	Part            string `json:"part"`
	Number          string `json:"number"`
	Title           string `json:"title"`
	Level           string `json:"level"`
	TermsCount      *int   `json:"terms_count"`
	IntroLength     *int   `json:"intro_length"`
	TextLength      *int   `json:"text_length"`
	QuoteHintLength *int   `json:"quote_hint_length"`
	Status          string `json:"status"`
}

// Analyze classifies the outline and computes every table of the report.
func Analyze(o *outline.Outline, marker string) *Report {
	if marker == "" {
		marker = DefaultMarker
	}
	Classify(o, marker)

	rows := Breakdown(o)
	return &Report{
		Source:    o.Title,
		Marker:    marker,
		Summary:   Summarize(o),
		Breakdown: rows,
		Stats:     ComputeStats(rows),
	}
}

// Classify sets Unfinished on every node, once. A node without tables is
// judged by its body text; a node with tables by its quote/hint text. Intro
// text never counts.
func Classify(o *outline.Outline, marker string) {
	outline.Walk(o, func(_ *outline.Part, _ string, n *outline.Node) {
		text := n.QuoteHint
		if !n.HasTable {
			text = n.Body()
		}
		n.Unfinished = strings.Contains(text, marker)
	})
}

// Summarize counts sections and subsections per part. Parts without any
// section are left out.
func Summarize(o *outline.Outline) []SummaryRow {
	var rows []SummaryRow
	for _, part := range o.Parts {
		if len(part.Sections) == 0 {
			continue
		}
		row := SummaryRow{Part: part.Title, Sections: len(part.Sections)}
		for _, sec := range part.Sections {
			if sec.Unfinished {
				row.SectionsUnfinished++
			}
			row.Subsections += len(sec.Subsections)
			for _, sub := range sec.Subsections {
				if sub.Unfinished {
					row.SubsectionsUnfinished++
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Breakdown lists every node in document order. Exactly one of TermsCount
// and TextLength is set per row.
func Breakdown(o *outline.Outline) []BreakdownRow {
	var rows []BreakdownRow
	outline.Walk(o, func(part *outline.Part, number string, n *outline.Node) {
		row := BreakdownRow{
			Part:            part.Title,
			Number:          number,
			Title:           n.Title,
			Level:           "h" + strconv.Itoa(n.Level),
			IntroLength:     positive(n.IntroLength),
			QuoteHintLength: positive(n.QuoteHintLength),
			Status:          StatusDone,
		}
		if n.HasTable {
			row.TermsCount = intPtr(n.Terms())
		} else {
			row.TextLength = intPtr(outline.TextLength(n.Body()))
		}
		if n.Unfinished {
			row.Status = StatusUnfinished
		}
		rows = append(rows, row)
	})
	return rows
}

func positive(v int) *int {
	if v <= 0 {
		return nil
	}
	return intPtr(v)
}

func intPtr(v int) *int {
	return &v
}

// Cell renders an optional count, "-" when absent.
func Cell(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
