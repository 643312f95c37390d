package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/docstat/internal/outline"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Heading 1-3 paragraph styles open parts,
// sections and subsections; body-level tables are counted by row.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) ([]outline.Element, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "docstat-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var elems []outline.Element
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			text := docxParagraphText(it)
			switch level := docxHeadingLevel(it); {
			case level >= 1 && level <= 3:
				elems = append(elems, outline.Element{Kind: outline.Kind(level), Text: text})
			case level > 3:
				// Deeper headings are not part of the outline.
			case docxIsQuote(it):
				elems = append(elems, outline.Element{Kind: outline.Quote, Text: text})
				elems = append(elems, outline.Element{Kind: outline.Paragraph, Text: text})
			default:
				elems = append(elems, outline.Element{Kind: outline.Paragraph, Text: text})
			}
		case *docx.Table:
			// Cell paragraphs live under the table and are never emitted.
			elems = append(elems, outline.Element{Kind: outline.Table, Rows: len(it.TableRows)})
		}
	}

	return elems, nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	style := docxStyle(para)
	for level := 1; level <= 6; level++ {
		if strings.EqualFold(style, fmt.Sprintf("Heading%d", level)) ||
			strings.EqualFold(style, fmt.Sprintf("heading %d", level)) {
			return level
		}
	}
	return 0
}

// docxIsQuote reports the built-in "Quote" and "Intense Quote" styles. Word
// has no container for quotes, so the paragraph is emitted as prose too,
// the same way an HTML <blockquote><p> is.
func docxIsQuote(para *docx.Paragraph) bool {
	style := strings.ToLower(strings.ReplaceAll(docxStyle(para), " ", ""))
	return style == "quote" || style == "intensequote"
}

func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
