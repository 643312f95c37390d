package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docstat/internal/outline"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) ([]outline.Element, error) {
	doc, err := parseAsWritten(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var elems []outline.Element

	// Every descendant is visited, so headings or paragraphs nested inside
	// other elements are still seen in document order.
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			case "h1", "h2", "h3":
				elems = append(elems, outline.Element{
					Kind: headingKind(n.Data),
					Text: textContent(n),
				})
			case "table":
				elems = append(elems, outline.Element{
					Kind: outline.Table,
					Rows: countRows(n),
				})
			case "p":
				elems = append(elems, outline.Element{
					Kind:    outline.Paragraph,
					Text:    textContent(n),
					InTable: hasAncestor(n, "table"),
				})
			case "blockquote":
				elems = append(elems, outline.Element{
					Kind: outline.Quote,
					Text: textContent(n),
				})
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	root := findBody(doc)
	if root == nil {
		root = doc
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}

	return elems, nil
}

// voidElements never take children.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// parseAsWritten builds a node tree that nests elements exactly as the markup
// does, without HTML5 foster parenting: a stray <p> directly inside <table>
// stays inside it. An end tag closes the nearest open element with the same
// name; unmatched end tags are ignored.
func parseAsWritten(r io.Reader) (*html.Node, error) {
	z := html.NewTokenizer(r)
	doc := &html.Node{Type: html.DocumentNode}
	open := []*html.Node{doc}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, err
			}
			return doc, nil
		case html.TextToken:
			open[len(open)-1].AppendChild(&html.Node{
				Type: html.TextNode,
				Data: string(z.Text()),
			})
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			n := &html.Node{
				Type:     html.ElementNode,
				Data:     tok.Data,
				DataAtom: tok.DataAtom,
				Attr:     tok.Attr,
			}
			open[len(open)-1].AppendChild(n)
			if tt == html.StartTagToken && !voidElements[tok.Data] {
				open = append(open, n)
			}
		case html.EndTagToken:
			tok := z.Token()
			for i := len(open) - 1; i > 0; i-- {
				if open[i].Data == tok.Data {
					open = open[:i]
					break
				}
			}
		}
	}
}

func headingKind(tag string) outline.Kind {
	switch tag {
	case "h1":
		return outline.Heading1
	case "h2":
		return outline.Heading2
	}
	return outline.Heading3
}

// textContent trims every descendant text node and concatenates the pieces
// without a separator.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

// countRows counts every <tr> under a table, nested tables included.
func countRows(n *html.Node) int {
	rows := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "tr" {
			rows++
		}
		rows += countRows(c)
	}
	return rows
}

func hasAncestor(n *html.Node, tag string) bool {
	for a := n.Parent; a != nil; a = a.Parent {
		if a.Type == html.ElementNode && a.Data == tag {
			return true
		}
	}
	return false
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
