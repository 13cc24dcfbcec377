package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/docsbot/internal/richtext"
	"github.com/fumiama/go-docx"
)

// DOCXParser extracts text from .docx documents. Heading-styled
// paragraphs open description sections; everything else becomes text
// paragraphs.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, name string) (*richtext.Document, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "docsbot-docx-*.docx")
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

	parsed, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	doc := &richtext.Document{
		Title: richtext.Run{richtext.Text(name)},
	}

	var current *richtext.Section
	flush := func() {
		if current != nil && len(current.Paragraphs) > 0 {
			doc.Description = append(doc.Description, *current)
		}
		current = nil
	}

	for _, item := range parsed.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}

		level := docxHeadingLevel(para)
		text := docxParagraphText(para)
		if text == "" {
			continue
		}

		if level > 0 {
			flush()
			current = &richtext.Section{Heading: richtext.Run{richtext.Text(text)}}
			continue
		}
		if current == nil {
			current = &richtext.Section{}
		}
		current.Paragraphs = append(current.Paragraphs, richtext.Paragraph{
			Kind: richtext.ParagraphText,
			Run:  richtext.Run{richtext.Text(text)},
		})
	}
	flush()

	return doc, nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := para.Properties.Style.Val
	switch {
	case strings.EqualFold(style, "Heading1") || strings.EqualFold(style, "heading 1"):
		return 1
	case strings.EqualFold(style, "Heading2") || strings.EqualFold(style, "heading 2"):
		return 2
	case strings.EqualFold(style, "Heading3") || strings.EqualFold(style, "heading 3"):
		return 3
	case strings.EqualFold(style, "Heading4") || strings.EqualFold(style, "heading 4"):
		return 4
	case strings.EqualFold(style, "Heading5") || strings.EqualFold(style, "heading 5"):
		return 5
	case strings.EqualFold(style, "Heading6") || strings.EqualFold(style, "heading 6"):
		return 6
	}
	return 0
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
