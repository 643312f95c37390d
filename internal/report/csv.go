package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

var (
	summaryHeader   = []string{"Part", "Sections", "Sections_Unfinished", "Subsections", "Subsections_Unfinished"}
	breakdownHeader = []string{"Part", "Number", "Title", "Level", "Terms_Count", "Intro_Length", "Text_Length", "Quote_Hint_Length", "Status"}
)

// WriteSummaryCSV writes the part-level summary.
func WriteSummaryCSV(w io.Writer, rows []SummaryRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, summaryHeader)
	for _, r := range rows {
		records = append(records, []string{
			r.Part,
			strconv.Itoa(r.Sections),
			strconv.Itoa(r.SectionsUnfinished),
			strconv.Itoa(r.Subsections),
			strconv.Itoa(r.SubsectionsUnfinished),
		})
	}
	return writeRecords(w, records)
}

// WriteBreakdownCSV writes one row per section and subsection.
func WriteBreakdownCSV(w io.Writer, rows []BreakdownRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, breakdownHeader)
	for _, r := range rows {
		records = append(records, breakdownCells(r))
	}
	return writeRecords(w, records)
}

func breakdownCells(r BreakdownRow) []string {
	return []string{
		r.Part,
		r.Number,
		r.Title,
		r.Level,
		Cell(r.TermsCount),
		Cell(r.IntroLength),
		Cell(r.TextLength),
		Cell(r.QuoteHintLength),
		r.Status,
	}
}

// writeRecords ends rows in CRLF, the same bytes Python's csv module writes.
func writeRecords(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// CSVPaths returns the summary and breakdown file paths for a source
// document named base, inside dir.
func CSVPaths(dir, base string) (summary, breakdown string) {
	return filepath.Join(dir, base+"_summary.csv"), filepath.Join(dir, base+"_breakdown.csv")
}

// WriteCSVFiles writes <source>_summary.csv and <source>_breakdown.csv into
// dir and returns their paths.
func WriteCSVFiles(dir string, r *Report) (summaryPath, breakdownPath string, err error) {
	summaryPath, breakdownPath = CSVPaths(dir, r.Source)

	if err := writeFile(summaryPath, func(w io.Writer) error {
		return WriteSummaryCSV(w, r.Summary)
	}); err != nil {
		return "", "", err
	}
	if err := writeFile(breakdownPath, func(w io.Writer) error {
		return WriteBreakdownCSV(w, r.Breakdown)
	}); err != nil {
		return "", "", err
	}
	return summaryPath, breakdownPath, nil
}

// writeFile closes the file on every path and reports a failed close.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
