package render

import (
	"net/url"
	"strings"

	"github.com/dgallion1/docsbot/internal/richtext"
)

// DefaultPageLimit is the rendered-length budget of one page, counted
// in visible (whitespace-collapsed, unescaped) characters.
const DefaultPageLimit = 1000

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

func escapeText(s string) string { return textEscaper.Replace(s) }
func escapeAttr(s string) string { return attrEscaper.Replace(s) }

// Writer accumulates rendered rich text into budget-bounded pages. One
// Writer covers one section run; start is the absolute index of its
// first page, so navigation payloads address the whole Documentation.
type Writer struct {
	base    *url.URL
	limit   int
	start   int
	pages   []Page
	buf     strings.Builder
	styles  StyleStack
	written int
}

func NewWriter(base *url.URL, start, limit int) *Writer {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	return &Writer{base: base, limit: limit, start: start}
}

// writeString appends literal text: whitespace collapses outside code
// spans, the visible length counter grows by the collapsed length, and
// the buffer receives the HTML-escaped form.
func (w *Writer) writeString(text string) {
	if !w.styles.InCode() {
		text = richtext.CollapseSpace(text)
	}
	w.written += len(text)
	w.buf.WriteString(escapeText(text))
}

// Write renders an inline run into the current buffer.
func (w *Writer) Write(run richtext.Run) {
	for _, part := range run {
		switch part.Kind {
		case richtext.PartText:
			w.writeString(part.Text)
		case richtext.PartImage:
			w.writeLinked("(image)", part.Src)
		case richtext.PartTable:
			href := ""
			if w.base != nil {
				href = w.base.String()
			}
			w.writeLinked("(table)", href)
		case richtext.PartBeginStyle:
			w.buf.WriteString(w.styles.Push(part.Style, w.base))
		case richtext.PartEndStyle:
			w.buf.WriteString(w.styles.Pop())
		}
	}
}

// writeLinked renders placeholder text wrapped in a link. Inside a code
// span the placeholder is emitted bare so the span is not disturbed.
func (w *Writer) writeLinked(placeholder, href string) {
	if w.styles.InCode() {
		w.writeString(placeholder)
		return
	}
	w.buf.WriteString(w.styles.Push(richtext.Link(href), w.base))
	w.writeString(placeholder)
	w.buf.WriteString(w.styles.Pop())
}

// WriteTitle renders a title run in an isolated style context: titles
// never inherit ambient open styles and never trigger a page break.
func (w *Writer) WriteTitle(title richtext.Run) {
	saved := w.styles
	w.styles = StyleStack{}
	for _, part := range title {
		switch part.Kind {
		case richtext.PartText:
			w.writeString(part.Text)
		case richtext.PartImage, richtext.PartTable:
		case richtext.PartBeginStyle:
			w.buf.WriteString(w.styles.Push(part.Style, w.base))
		case richtext.PartEndStyle:
			w.buf.WriteString(w.styles.Pop())
		}
	}
	w.styles = saved
}

// LineBreak appends one line break unless the page is already at its
// budget.
func (w *Writer) LineBreak() {
	if w.written < w.limit {
		w.buf.WriteByte('\n')
		w.written++
	}
}

func (w *Writer) writeHeader(title richtext.Run) {
	w.WriteTitle(title)
	w.LineBreak()
	w.LineBreak()
}

// WriteParagraphs paginates one description section: unit = paragraph.
func (w *Writer) WriteParagraphs(title richtext.Run, paragraphs []richtext.Paragraph) {
	w.writeUnits(title, len(paragraphs), func(i int) {
		w.writeParagraph(paragraphs[i])
	})
}

// WriteItemRows paginates one tabular listing: unit = item row.
func (w *Writer) WriteItemRows(title richtext.Run, rows []richtext.ItemRow) {
	w.writeUnits(title, len(rows), func(i int) {
		w.Write(rows[i].Name)
		w.LineBreak()
		w.Write(rows[i].Summary)
	})
}

// writeUnits is the accumulation core. Each section run starts on a
// fresh page: any buffered content is sealed first. Each unit renders
// into a fresh buffer; if joining it to the page in progress would
// exceed the budget, the previous buffer is sealed as a page and the
// unit becomes the first on a new page, prefixed with the title. Units
// are atomic: a single unit larger than the budget still ships whole.
func (w *Writer) writeUnits(title richtext.Run, n int, renderUnit func(i int)) {
	w.sealPage()

	for i := 0; i < n; i++ {
		prevBuf := w.buf.String()
		prevWritten := w.written
		w.buf.Reset()
		w.written = 0

		if prevBuf == "" {
			w.writeHeader(title)
			renderUnit(i)
			continue
		}
		renderUnit(i)

		// 1: the joining line break.
		if w.written+prevWritten+1 > w.limit {
			w.pages = append(w.pages, Page{Text: prevBuf})
			unit := w.buf.String()
			unitWritten := w.written
			w.buf.Reset()
			w.written = 0
			w.writeHeader(title)
			w.buf.WriteString(unit)
			w.written += unitWritten
		} else {
			unit := w.buf.String()
			unitWritten := w.written
			w.buf.Reset()
			w.buf.WriteString(prevBuf)
			w.written = prevWritten
			w.LineBreak()
			w.buf.WriteString(unit)
			w.written += unitWritten
		}
	}
}

func (w *Writer) writeParagraph(p richtext.Paragraph) {
	switch p.Kind {
	case richtext.ParagraphText:
		w.Write(p.Run)
	case richtext.ParagraphList:
		for i, item := range p.Items {
			if i > 0 {
				w.LineBreak()
			}
			w.writeString("• ")
			w.Write(item)
		}
	case richtext.ParagraphCode:
		w.buf.WriteString(w.styles.Push(richtext.Monospaced(), w.base))
		w.Write(p.Run)
		w.buf.WriteString(w.styles.Pop())
	}
}

// sealPage flushes a non-empty buffer as a completed page.
func (w *Writer) sealPage() {
	if w.buf.Len() > 0 {
		w.pages = append(w.pages, Page{Text: w.buf.String()})
		w.buf.Reset()
		w.written = 0
	}
}

// Finalize flushes the in-progress buffer and, when the section spans
// more than one page, attaches the sequential navigation row to every
// page. It returns the section's pages.
func (w *Writer) Finalize() []Page {
	w.sealPage()
	attachNavigation(w.pages, w.start)
	return w.pages
}
