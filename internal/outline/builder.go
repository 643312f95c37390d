package outline

import "strings"

// Builder assembles an Outline from a stream of elements. It holds the cursor
// over the currently open Part, Section and Subsection.
type Builder struct {
	outline    *Outline
	part       *Part
	section    *Node
	subsection *Node
}

func NewBuilder(title string) *Builder {
	return &Builder{outline: &Outline{Title: title}}
}

// Add attributes one element to the open position. Content with no valid
// position (a table before any section, an h3 with no open h2) is dropped.
func (b *Builder) Add(e Element) {
	e.Text = strings.TrimSpace(e.Text)

	switch e.Kind {
	case Heading1:
		if e.Text == "" {
			return
		}
		b.part = &Part{Title: e.Text}
		b.outline.Parts = append(b.outline.Parts, b.part)
		b.section = nil
		b.subsection = nil

	case Heading2:
		if b.part == nil || e.Text == "" {
			return
		}
		b.section = &Node{Title: e.Text, Level: 2}
		b.part.Sections = append(b.part.Sections, b.section)
		b.subsection = nil

	case Heading3:
		if b.section == nil || e.Text == "" {
			return
		}
		b.subsection = &Node{Title: e.Text, Level: 3}
		b.section.Subsections = append(b.section.Subsections, b.subsection)

	case Table:
		target := b.target()
		if target == nil {
			return
		}
		// Only the first table sees pending prose; the buffer is empty afterwards.
		if len(target.Fragments) > 0 {
			target.IntroLength = TextLength(target.Body())
			target.Fragments = nil
		}
		target.HasTable = true
		target.Tables = append(target.Tables, max(e.Rows-1, 0))

	case Paragraph:
		if e.InTable {
			return
		}
		target := b.target()
		if target == nil {
			return
		}
		target.Fragments = append(target.Fragments, e.Text)

	case Quote:
		// Quote blocks contribute only through the paragraphs they contain.
	}
}

// Outline finalizes and returns the assembled outline.
func (b *Builder) Outline() *Outline {
	b.outline.Finalize()
	return b.outline
}

func (b *Builder) target() *Node {
	if b.subsection != nil {
		return b.subsection
	}
	return b.section
}

// Build runs a fresh Builder over elems.
func Build(title string, elems []Element) *Outline {
	b := NewBuilder(title)
	for _, e := range elems {
		b.Add(e)
	}
	return b.Outline()
}
