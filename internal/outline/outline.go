package outline

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind identifies a content element in a flattened document.
type Kind int

const (
	Heading1 Kind = iota + 1
	Heading2
	Heading3
	Table
	Paragraph
	Quote
)

func (k Kind) String() string {
	switch k {
	case Heading1:
		return "h1"
	case Heading2:
		return "h2"
	case Heading3:
		return "h3"
	case Table:
		return "table"
	case Paragraph:
		return "p"
	case Quote:
		return "blockquote"
	}
	return "unknown"
}

// Element is one typed content node, in document order.
type Element struct {
	Kind    Kind
	Text    string // Trimmed text content (headings, paragraphs)
	Rows    int    // Total row count including the header (tables)
	InTable bool   // Paragraph nested inside a table
}

// Outline is the root of a reconstructed document outline.
type Outline struct {
	Title string  // Source name, without extension
	Parts []*Part // Top-level divisions in document order
}

// Part is a top-level division started by a level-1 heading.
type Part struct {
	Title    string
	Sections []*Node
}

// Node is a Section (level 2) or Subsection (level 3).
type Node struct {
	Title string
	Level int

	Tables    []int    // Term count per table
	Fragments []string // Prose not yet classified

	IntroLength     int
	QuoteHintLength int
	QuoteHint       string // Committed quote/hint text, kept for classification

	HasTable   bool
	Unfinished bool

	Subsections []*Node // Always empty for level 3
}

// Body joins the node's pending prose with single spaces.
func (n *Node) Body() string {
	return strings.Join(n.Fragments, " ")
}

// Terms sums the term counts of every table under the node.
func (n *Node) Terms() int {
	total := 0
	for _, c := range n.Tables {
		total += c
	}
	return total
}

// Finalize commits prose that follows a node's tables as quote/hint text.
// Nodes without a table keep their fragments as body text. Calling it twice
// is harmless.
func (o *Outline) Finalize() {
	for _, part := range o.Parts {
		for _, sec := range part.Sections {
			commitQuoteHint(sec)
			for _, sub := range sec.Subsections {
				commitQuoteHint(sub)
			}
		}
	}
}

func commitQuoteHint(n *Node) {
	if !n.HasTable || len(n.Fragments) == 0 {
		return
	}
	n.QuoteHint = n.Body()
	n.QuoteHintLength = TextLength(n.QuoteHint)
	n.Fragments = nil
}

// Walk visits every Section and Subsection in document order. number is the
// dotted position: the part index is 0-based, sections and subsections are
// 1-based ("0.1", "0.1.2").
func Walk(o *Outline, fn func(part *Part, number string, n *Node)) {
	for pi, part := range o.Parts {
		for si, sec := range part.Sections {
			secNum := strconv.Itoa(pi) + "." + strconv.Itoa(si+1)
			fn(part, secNum, sec)
			for ui, sub := range sec.Subsections {
				fn(part, secNum+"."+strconv.Itoa(ui+1), sub)
			}
		}
	}
}

// TextLength counts characters, not bytes.
func TextLength(s string) int {
	return utf8.RuneCountInString(s)
}
