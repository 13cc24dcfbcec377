package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/docsbot/internal/richtext"
)

const mdPage = "# Widget\n\n" +
	"A **widget** does *things*, see [Other](other.md) and `new()`.\n\n" +
	"## Usage\n\n" +
	"Call it like so:\n\n" +
	"```\nlet w = Widget::new();\nw.run();\n```\n\n" +
	"- one\n- two\n"

func TestMarkdownParserDocument(t *testing.T) {
	var p MarkdownParser
	doc, err := p.Parse(strings.NewReader(mdPage), "Widget")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := richtext.Plain(doc.Title); got != "Widget" {
		t.Errorf("title = %q", got)
	}
	if len(doc.Description) != 2 {
		t.Fatalf("got %d sections, want 2", len(doc.Description))
	}

	intro := doc.Description[0]
	if len(intro.Heading) != 0 {
		t.Errorf("intro heading = %v, want none", intro.Heading)
	}
	if len(intro.Paragraphs) != 1 {
		t.Fatalf("intro paragraphs = %d, want 1", len(intro.Paragraphs))
	}
	styles := styleKinds(intro.Paragraphs[0].Run)
	want := []richtext.StyleKind{
		richtext.StyleBold, richtext.StyleItalic, richtext.StyleLink, richtext.StyleMonospaced,
	}
	if len(styles) != len(want) {
		t.Fatalf("styles = %v, want %v", styles, want)
	}
	for i := range want {
		if styles[i] != want[i] {
			t.Errorf("style %d = %v, want %v", i, styles[i], want[i])
		}
	}

	usage := doc.Description[1]
	if got := richtext.Plain(usage.Heading); got != "Usage" {
		t.Errorf("section heading = %q", got)
	}
	if len(usage.Paragraphs) != 3 {
		t.Fatalf("usage paragraphs = %d, want 3", len(usage.Paragraphs))
	}
	code := usage.Paragraphs[1]
	if code.Kind != richtext.ParagraphCode {
		t.Fatalf("paragraph 1 kind = %v, want code", code.Kind)
	}
	if got := code.Run[0].Text; got != "let w = Widget::new();\nw.run();" {
		t.Errorf("code = %q", got)
	}
	list := usage.Paragraphs[2]
	if list.Kind != richtext.ParagraphList || len(list.Items) != 2 {
		t.Fatalf("list = kind %v with %d items", list.Kind, len(list.Items))
	}
	if got := richtext.Plain(list.Items[1]); got != "two" {
		t.Errorf("item 1 = %q", got)
	}
}

func TestMarkdownParserLinkDestination(t *testing.T) {
	var p MarkdownParser
	doc, err := p.Parse(strings.NewReader("# T\n\n[label](https://example.com/x)\n"), "T")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	run := doc.Description[0].Paragraphs[0].Run
	found := false
	for _, part := range run {
		if part.Kind == richtext.PartBeginStyle && part.Style.Kind == richtext.StyleLink {
			found = true
			if part.Style.Href != "https://example.com/x" {
				t.Errorf("href = %q", part.Style.Href)
			}
		}
	}
	if !found {
		t.Fatal("link style missing")
	}
	if got := richtext.Plain(run); got != "label" {
		t.Errorf("text = %q, want label", got)
	}
}

func TestMarkdownParserNoTitleFallsBack(t *testing.T) {
	var p MarkdownParser
	doc, err := p.Parse(strings.NewReader("plain paragraph only\n"), "fallback")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := richtext.Plain(doc.Title); got != "fallback" {
		t.Errorf("title = %q, want fallback", got)
	}
	if len(doc.Description) != 1 {
		t.Fatalf("sections = %d, want 1", len(doc.Description))
	}
}

func styleKinds(run richtext.Run) []richtext.StyleKind {
	var kinds []richtext.StyleKind
	for _, part := range run {
		if part.Kind == richtext.PartBeginStyle {
			kinds = append(kinds, part.Style.Kind)
		}
	}
	return kinds
}
