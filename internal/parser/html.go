package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docsbot/internal/richtext"
	"golang.org/x/net/html"
)

// HTMLParser converts a docs HTML page into the rich-text model.
//
// Shape assumed: a leading h1 is the document title; a pre before any
// h2 is the declaration; an h2 immediately followed by a table opens a
// tabular listing; every other h2 opens a description section.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, name string) (*richtext.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	container := findBody(root)
	if container == nil {
		container = root
	}
	if m := findElement(container, "main", "article"); m != nil {
		container = m
	}

	blocks := collectBlocks(container)

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

	seenH2 := false
	for i := 0; i < len(blocks); i++ {
		b := blocks[i]
		switch b.Data {
		case "h1":
			if len(doc.Title) == 0 {
				doc.Title = inlineRun(b)
			}
		case "h2":
			seenH2 = true
			flush()
			if i+1 < len(blocks) && blocks[i+1].Data == "table" {
				doc.Listings = append(doc.Listings, richtext.Listing{
					Heading: inlineRun(b),
					Rows:    tableRows(blocks[i+1]),
				})
				i++
			} else {
				current = &richtext.Section{Heading: inlineRun(b)}
			}
		case "h3", "h4", "h5", "h6":
			run := append(richtext.Run{richtext.Begin(richtext.Bold())}, inlineRun(b)...)
			run = append(run, richtext.End())
			addParagraph(richtext.Paragraph{Kind: richtext.ParagraphText, Run: run})
		case "p", "blockquote":
			run := inlineRun(b)
			if len(run) > 0 {
				addParagraph(richtext.Paragraph{Kind: richtext.ParagraphText, Run: run})
			}
		case "ul", "ol":
			var items []richtext.Run
			for c := b.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.Data == "li" {
					items = append(items, inlineRun(c))
				}
			}
			if len(items) > 0 {
				addParagraph(richtext.Paragraph{Kind: richtext.ParagraphList, Items: items})
			}
		case "pre":
			text := rawText(b)
			if text == "" {
				continue
			}
			if !seenH2 && len(doc.Declaration) == 0 && current == nil {
				doc.Declaration = richtext.Run{
					richtext.Begin(richtext.Monospaced()),
					richtext.Text(text),
					richtext.End(),
				}
				continue
			}
			addParagraph(richtext.Paragraph{Kind: richtext.ParagraphCode, Run: richtext.Run{richtext.Text(text)}})
		case "table":
			addParagraph(richtext.Paragraph{Kind: richtext.ParagraphText, Run: richtext.Run{richtext.Table()}})
		}
	}
	flush()

	if len(doc.Title) == 0 {
		if t := findTitle(root); t != "" {
			doc.Title = richtext.Run{richtext.Text(t)}
		} else {
			doc.Title = richtext.Run{richtext.Text(name)}
		}
	}

	return doc, nil
}

// blockTags are the elements collected in document order; collection
// does not descend into them.
var blockTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "pre": true, "ul": true, "ol": true, "table": true,
	"blockquote": true,
}

func collectBlocks(n *html.Node) []*html.Node {
	var blocks []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			}
			if blockTags[n.Data] {
				blocks = append(blocks, n)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return blocks
}

// inlineRun converts an element's children into a run with balanced
// Begin/End parts.
func inlineRun(n *html.Node) richtext.Run {
	return appendInline(nil, n)
}

func appendInline(run richtext.Run, n *html.Node) richtext.Run {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			run = append(run, richtext.Text(c.Data))
		case html.ElementNode:
			switch c.Data {
			case "a":
				run = append(run, richtext.Begin(richtext.Link(attr(c, "href"))))
				run = appendInline(run, c)
				run = append(run, richtext.End())
			case "b", "strong":
				run = wrapInline(run, c, richtext.Bold())
			case "i", "em":
				run = wrapInline(run, c, richtext.Italic())
			case "u", "ins":
				run = wrapInline(run, c, richtext.Underline())
			case "s", "del", "strike":
				run = wrapInline(run, c, richtext.Strikethrough())
			case "code", "tt", "kbd", "samp":
				run = wrapInline(run, c, richtext.Monospaced())
			case "img":
				run = append(run, richtext.Image(attr(c, "src")))
			case "table":
				run = append(run, richtext.Table())
			case "br":
				run = append(run, richtext.Text("\n"))
			case "script", "style":
			default:
				run = appendInline(run, c)
			}
		}
	}
	return run
}

func wrapInline(run richtext.Run, n *html.Node, style richtext.Style) richtext.Run {
	run = append(run, richtext.Begin(style))
	run = appendInline(run, n)
	return append(run, richtext.End())
}

// tableRows extracts the first two cells of every body row as
// name/summary item rows. Header rows (th cells only) are skipped.
func tableRows(table *html.Node) []richtext.ItemRow {
	var rows []richtext.ItemRow
	for _, tr := range findAll(table, "tr") {
		var cells []*html.Node
		header := false
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "td":
				cells = append(cells, c)
			case "th":
				header = true
			}
		}
		if header || len(cells) == 0 {
			continue
		}
		row := richtext.ItemRow{Name: inlineRun(cells[0])}
		if len(cells) > 1 {
			row.Summary = inlineRun(cells[1])
		}
		rows = append(rows, row)
	}
	return rows
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// rawText concatenates text nodes without collapsing; pre content keeps
// its internal whitespace.
func rawText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Trim(buf.String(), "\n")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return strings.TrimSpace(rawText(n))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
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

func findElement(n *html.Node, tags ...string) *html.Node {
	if n.Type == html.ElementNode {
		for _, tag := range tags {
			if n.Data == tag {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := findElement(c, tags...); m != nil {
			return m
		}
	}
	return nil
}
