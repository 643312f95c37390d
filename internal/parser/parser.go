package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docstat/internal/outline"
)

// Parser flattens a source document into content elements in document order.
type Parser interface {
	Parse(r io.Reader, filename string) ([]outline.Element, error)
}

// SupportedExtensions lists file extensions docstat can analyze.
var SupportedExtensions = map[string]bool{
	".html":     true,
	".htm":      true,
	".md":       true,
	".markdown": true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// BaseName strips directories and the extension: "dir/ITdictionary.html"
// becomes "ITdictionary".
func BaseName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Read parses r with the parser registered for filename and builds its outline.
func Read(r io.Reader, filename string) (*outline.Outline, error) {
	p, err := ForFile(filename)
	if err != nil {
		return nil, err
	}
	elems, err := p.Parse(r, filename)
	if err != nil {
		return nil, err
	}
	return outline.Build(BaseName(filename), elems), nil
}

// Load opens the document at path and builds its outline.
func Load(path string) (*outline.Outline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	return Read(f, path)
}
