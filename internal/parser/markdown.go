package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docstat/internal/outline"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark with GFM tables.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) ([]outline.Element, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(src))

	var elems []outline.Element
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level <= 3 {
				elems = append(elems, outline.Element{
					Kind: outline.Kind(node.Level), // Heading1..Heading3 are 1..3
					Text: inlineText(node, src),
				})
			}
			return ast.WalkSkipChildren, nil
		case *extast.Table:
			// Header row plus body rows, matching an HTML <tr> count.
			elems = append(elems, outline.Element{
				Kind: outline.Table,
				Rows: node.ChildCount(),
			})
			return ast.WalkSkipChildren, nil
		case *ast.Blockquote:
			elems = append(elems, outline.Element{Kind: outline.Quote})
		case *ast.Paragraph:
			elems = append(elems, outline.Element{
				Kind: outline.Paragraph,
				Text: inlineText(node, src),
			})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}

	return elems, nil
}

// inlineText collects the literal text under an inline container.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.AutoLink:
			buf.Write(t.Label(src))
		case *ast.RawHTML:
			// Inline markup carries no prose.
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
