package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSummaryCSV(&buf, []SummaryRow{
		{Part: "Fundamentals, basics", Sections: 2, SectionsUnfinished: 1, Subsections: 3, SubsectionsUnfinished: 0},
	})
	require.NoError(t, err)
	assert.Equal(t,
		"Part,Sections,Sections_Unfinished,Subsections,Subsections_Unfinished\r\n"+
			"\"Fundamentals, basics\",2,1,3,0\r\n",
		buf.String())
}

func TestWriteBreakdownCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteBreakdownCSV(&buf, []BreakdownRow{
		{Part: "P", Number: "0.1", Title: "Networking", Level: "h2", TermsCount: intPtr(3), IntroLength: intPtr(11), Status: StatusDone},
		{Part: "P", Number: "0.1.1", Title: "Routing", Level: "h3", TextLength: intPtr(28), Status: StatusUnfinished},
	})
	require.NoError(t, err)
	assert.Equal(t,
		"Part,Number,Title,Level,Terms_Count,Intro_Length,Text_Length,Quote_Hint_Length,Status\r\n"+
			"P,0.1,Networking,h2,3,11,-,-,Done\r\n"+
			"P,0.1.1,Routing,h3,-,-,28,-,Unfinished\r\n",
		buf.String())
}

func TestWriteCSVFiles(t *testing.T) {
	dir := t.TempDir()
	r := Analyze(sampleOutline(), DefaultMarker)

	summaryPath, breakdownPath, err := WriteCSVFiles(dir, r)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ITdictionary_summary.csv"), summaryPath)
	assert.Equal(t, filepath.Join(dir, "ITdictionary_breakdown.csv"), breakdownPath)

	summary, err := os.ReadFile(summaryPath)
	require.NoError(t, err)
	assert.Contains(t, string(summary), "Fundamentals,2,0,2,2\r\n")

	breakdown, err := os.ReadFile(breakdownPath)
	require.NoError(t, err)
	assert.Contains(t, string(breakdown), "Fundamentals,0.1.1,Routing,h3,-,-,28,-,Unfinished\r\n")
}

func TestWriteCSVFiles_MissingDir(t *testing.T) {
	r := Analyze(sampleOutline(), DefaultMarker)
	_, _, err := WriteCSVFiles(filepath.Join(t.TempDir(), "missing"), r)
	assert.Error(t, err)
}
