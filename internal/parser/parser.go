package parser

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dgallion1/docsbot/internal/richtext"
)

// Parser converts raw document bytes into a rich-text Document. name is
// the item name used as the fallback title.
type Parser interface {
	Parse(r io.Reader, name string) (*richtext.Document, error)
}

// Options carries parser tuning shared across formats.
type Options struct {
	PDFFallbackPdftotext bool
}

// ForContentType returns the parser for a response Content-Type,
// falling back to the URL path extension when the type is missing or
// too generic.
func ForContentType(contentType, urlPath string, opts Options) (Parser, error) {
	mt := contentType
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	mt = strings.ToLower(strings.TrimSpace(mt))

	switch mt {
	case "text/html", "application/xhtml+xml":
		return &HTMLParser{}, nil
	case "text/markdown", "text/x-markdown":
		return &MarkdownParser{}, nil
	case "application/pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return &DOCXParser{}, nil
	case "text/plain", "application/octet-stream", "":
		return ForPath(urlPath, opts)
	}
	return nil, fmt.Errorf("unsupported content type: %s", mt)
}

// ForPath returns the parser for a URL path by extension. Paths without
// a recognized extension are treated as HTML, the common case for docs
// pages served at extensionless routes.
func ForPath(urlPath string, opts Options) (Parser, error) {
	switch strings.ToLower(path.Ext(urlPath)) {
	case ".html", ".htm", "":
		return &HTMLParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".txt":
		return &TextParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	}
	return nil, fmt.Errorf("unsupported document extension: %s", path.Ext(urlPath))
}
