package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/docsbot/internal/richtext"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser converts Markdown docs into the rich-text model using
// goldmark. The first level-1 heading is the title; deeper headings
// open description sections. Markdown produces no tabular listings.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, name string) (*richtext.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	doc := &richtext.Document{}
	var current *richtext.Section
	flush := func() {
		if current != nil && len(current.Paragraphs) > 0 {
			doc.Description = append(doc.Description, *current)
		}
		current = nil
	}
	addParagraph := func(para richtext.Paragraph) {
		if current == nil {
			current = &richtext.Section{}
		}
		current.Paragraphs = append(current.Paragraphs, para)
	}

	var handleBlock func(n ast.Node)
	handleBlock = func(n ast.Node) {
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && len(doc.Title) == 0 && current == nil && len(doc.Description) == 0 {
				doc.Title = mdInline(nil, node, src)
				return
			}
			flush()
			current = &richtext.Section{Heading: mdInline(nil, node, src)}
		case *ast.Paragraph, *ast.TextBlock:
			run := mdInline(nil, n, src)
			if len(run) > 0 {
				addParagraph(richtext.Paragraph{Kind: richtext.ParagraphText, Run: run})
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			code := blockLines(n, src)
			if code != "" {
				addParagraph(richtext.Paragraph{Kind: richtext.ParagraphCode, Run: richtext.Run{richtext.Text(code)}})
			}
		case *ast.List:
			var items []richtext.Run
			for li := node.FirstChild(); li != nil; li = li.NextSibling() {
				var item richtext.Run
				for c := li.FirstChild(); c != nil; c = c.NextSibling() {
					item = mdInline(item, c, src)
				}
				items = append(items, item)
			}
			if len(items) > 0 {
				addParagraph(richtext.Paragraph{Kind: richtext.ParagraphList, Items: items})
			}
		case *ast.Blockquote:
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				handleBlock(c)
			}
		case *ast.ThematicBreak, *ast.HTMLBlock:
		}
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		handleBlock(n)
	}
	flush()

	if len(doc.Title) == 0 {
		doc.Title = richtext.Run{richtext.Text(name)}
	}

	return doc, nil
}

// mdInline appends the inline content of a goldmark node as balanced
// rich-text parts.
func mdInline(run richtext.Run, n ast.Node, src []byte) richtext.Run {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			run = append(run, richtext.Text(string(node.Value(src))))
			if node.HardLineBreak() || node.SoftLineBreak() {
				run = append(run, richtext.Text("\n"))
			}
		case *ast.String:
			run = append(run, richtext.Text(string(node.Value)))
		case *ast.Emphasis:
			style := richtext.Italic()
			if node.Level == 2 {
				style = richtext.Bold()
			}
			run = append(run, richtext.Begin(style))
			run = mdInline(run, node, src)
			run = append(run, richtext.End())
		case *ast.Link:
			run = append(run, richtext.Begin(richtext.Link(string(node.Destination))))
			run = mdInline(run, node, src)
			run = append(run, richtext.End())
		case *ast.AutoLink:
			url := string(node.URL(src))
			run = append(run,
				richtext.Begin(richtext.Link(url)),
				richtext.Text(string(node.Label(src))),
				richtext.End(),
			)
		case *ast.CodeSpan:
			run = append(run, richtext.Begin(richtext.Monospaced()))
			run = mdInline(run, node, src)
			run = append(run, richtext.End())
		case *ast.Image:
			run = append(run, richtext.Image(string(node.Destination)))
		case *ast.RawHTML:
		default:
			run = mdInline(run, c, src)
		}
	}
	return run
}

// blockLines joins a block node's source lines.
func blockLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return strings.Trim(buf.String(), "\n")
}
