package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docsbot/internal/richtext"
)

// TextParser handles plain text: blank-line-separated paragraphs in a
// single heading-less section.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, name string) (*richtext.Document, error) {
	paragraphs, err := scanParagraphs(r)
	if err != nil {
		return nil, err
	}

	doc := &richtext.Document{
		Title: richtext.Run{richtext.Text(name)},
	}
	if len(paragraphs) > 0 {
		doc.Description = []richtext.Section{{Paragraphs: paragraphs}}
	}
	return doc, nil
}

func scanParagraphs(r io.Reader) ([]richtext.Paragraph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []richtext.Paragraph
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			paragraphs = append(paragraphs, richtext.Paragraph{
				Kind: richtext.ParagraphText,
				Run:  richtext.Run{richtext.Text(current.String())},
			})
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return paragraphs, nil
}

func splitParagraphs(text string) []richtext.Paragraph {
	paragraphs, _ := scanParagraphs(strings.NewReader(text))
	return paragraphs
}
