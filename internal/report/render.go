package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = cellStyle.Bold(true)
)

// Render prints the part summary, the detailed breakdown and the terms
// statistics as console tables.
func Render(w io.Writer, r *Report) error {
	summary := make([][]string, 0, len(r.Summary))
	for _, row := range r.Summary {
		summary = append(summary, []string{
			row.Part,
			withUnfinished(row.Sections, row.SectionsUnfinished),
			withUnfinished(row.Subsections, row.SubsectionsUnfinished),
		})
	}

	breakdown := make([][]string, 0, len(r.Breakdown))
	for _, row := range r.Breakdown {
		breakdown = append(breakdown, breakdownCells(row))
	}

	stats := [][]string{statsCells(r.Stats.Document)}
	for _, ps := range r.Stats.Parts {
		stats = append(stats, statsCells(ps))
	}

	_, err := fmt.Fprintf(w, "%s\n\nDetailed breakdown:\n\n%s\n\n--- Terms Count Statistics ---\n%s\n",
		newTable([]string{"Part", "#Sections", "#Subsections"}, summary),
		newTable([]string{"Part", "No.", "Title", "Level", "Terms Count", "Intro Length", "Text Length", "Quote/Hint Length", "Status"}, breakdown),
		newTable([]string{"Part", "Avg Terms/Section", "Std Dev"}, stats),
	)
	return err
}

func newTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}

// withUnfinished formats "N (U)".
func withUnfinished(n, unfinished int) string {
	return strconv.Itoa(n) + " (" + strconv.Itoa(unfinished) + ")"
}

func statsCells(s TermStats) []string {
	return []string{s.Part, fmt.Sprintf("%.2f", s.Mean), fmt.Sprintf("%.2f", s.StdDev)}
}
