package render

import (
	"strings"
	"testing"

	"github.com/dgallion1/docsbot/internal/richtext"
)

func textPara(s string) richtext.Paragraph {
	return richtext.Paragraph{Kind: richtext.ParagraphText, Run: richtext.Run{richtext.Text(s)}}
}

// assertBalanced walks the page markup and fails on any tag that closes
// out of order or never closes. Escaped text cannot contain a raw '<',
// so every '<' starts a tag.
func assertBalanced(t *testing.T, page string) {
	t.Helper()
	var stack []string
	for i := 0; i < len(page); i++ {
		if page[i] != '<' {
			continue
		}
		j := strings.IndexByte(page[i:], '>')
		if j < 0 {
			t.Fatalf("unterminated tag in page %q", page)
		}
		tag := page[i+1 : i+j]
		i += j
		if name, ok := strings.CutPrefix(tag, "/"); ok {
			if len(stack) == 0 || stack[len(stack)-1] != name {
				t.Fatalf("unbalanced close </%s> in page %q", name, page)
			}
			stack = stack[:len(stack)-1]
		} else {
			name, _, _ := strings.Cut(tag, " ")
			stack = append(stack, name)
		}
	}
	if len(stack) != 0 {
		t.Fatalf("unclosed tags %v in page %q", stack, page)
	}
}

func TestWriterSinglePage(t *testing.T) {
	w := NewWriter(nil, 0, DefaultPageLimit)
	title := richtext.Run{richtext.Text("Title")}
	w.WriteParagraphs(title, []richtext.Paragraph{textPara("alpha"), textPara("beta")})
	pages := w.Finalize()

	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	want := "Title\n\nalpha\nbeta"
	if pages[0].Text != want {
		t.Errorf("page text = %q, want %q", pages[0].Text, want)
	}
	if pages[0].Nav != nil {
		t.Errorf("single page got nav row %v", pages[0].Nav)
	}
}

func TestWriterPageBreak(t *testing.T) {
	// Title(1) + two breaks = 3; each unit is 7 long; joins cost 1.
	// 3+7=10, +1+7=18 fits in 20, +1+7=26 does not.
	w := NewWriter(nil, 0, 20)
	title := richtext.Run{richtext.Text("T")}
	w.WriteParagraphs(title, []richtext.Paragraph{
		textPara("AAAAAAA"), textPara("BBBBBBB"), textPara("CCCCCCC"),
	})
	pages := w.Finalize()

	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if want := "T\n\nAAAAAAA\nBBBBBBB"; pages[0].Text != want {
		t.Errorf("page 0 = %q, want %q", pages[0].Text, want)
	}
	// The continuation page reprints the title.
	if want := "T\n\nCCCCCCC"; pages[1].Text != want {
		t.Errorf("page 1 = %q, want %q", pages[1].Text, want)
	}
}

func TestWriterSealsBetweenRuns(t *testing.T) {
	w := NewWriter(nil, 0, DefaultPageLimit)
	w.WriteParagraphs(richtext.Run{richtext.Text("A")}, []richtext.Paragraph{textPara("one")})
	w.WriteParagraphs(richtext.Run{richtext.Text("B")}, []richtext.Paragraph{textPara("two")})
	pages := w.Finalize()

	// A new run seals the page in progress even far under budget.
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if want := "A\n\none"; pages[0].Text != want {
		t.Errorf("page 0 = %q, want %q", pages[0].Text, want)
	}
	if want := "B\n\ntwo"; pages[1].Text != want {
		t.Errorf("page 1 = %q, want %q", pages[1].Text, want)
	}
	// The runs share one navigation sequence.
	if pages[0].Nav == nil || pages[1].Nav == nil {
		t.Error("nav rows missing across runs")
	}
}

func TestWriterExactBudgetBoundary(t *testing.T) {
	title := richtext.Run{richtext.Text("T")}
	paras := []richtext.Paragraph{textPara("AAAAAAA"), textPara("BBBBBBB")}

	// 3+7+1+7 = 18: exactly at the budget stays on one page.
	w := NewWriter(nil, 0, 18)
	w.WriteParagraphs(title, paras)
	if pages := w.Finalize(); len(pages) != 1 {
		t.Fatalf("limit 18: got %d pages, want 1", len(pages))
	}

	// One under splits.
	w = NewWriter(nil, 0, 17)
	w.WriteParagraphs(title, paras)
	if pages := w.Finalize(); len(pages) != 2 {
		t.Fatalf("limit 17: got %d pages, want 2", len(pages))
	}
}

func TestWriterOversizedUnitShipsWhole(t *testing.T) {
	w := NewWriter(nil, 0, 10)
	title := richtext.Run{richtext.Text("T")}
	long := strings.Repeat("x", 30)
	w.WriteParagraphs(title, []richtext.Paragraph{textPara(long)})
	pages := w.Finalize()

	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	if !strings.Contains(pages[0].Text, long) {
		t.Errorf("oversized unit was split: %q", pages[0].Text)
	}
	if pages[0].Nav != nil {
		t.Errorf("single oversized page got nav row")
	}
}

func TestWriterNavigationRows(t *testing.T) {
	w := NewWriter(nil, 0, 20)
	title := richtext.Run{richtext.Text("T")}
	w.WriteParagraphs(title, []richtext.Paragraph{
		textPara(strings.Repeat("a", 15)),
		textPara(strings.Repeat("b", 15)),
		textPara(strings.Repeat("c", 15)),
	})
	pages := w.Finalize()
	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}

	first := pages[0].Nav
	if len(first) != 2 || first[0].Text != "🏠 1 / 3" || first[0].CallbackData != NoopCallback {
		t.Errorf("first page nav = %v", first)
	}
	if first[1].Text != "2 >" || first[1].CallbackData != "1" {
		t.Errorf("first page next = %v", first[1])
	}

	mid := pages[1].Nav
	if len(mid) != 3 {
		t.Fatalf("interior page nav = %v", mid)
	}
	if mid[0].Text != "< 1" || mid[0].CallbackData != "0" {
		t.Errorf("interior prev = %v", mid[0])
	}
	if mid[1].Text != "🏠 2 / 3" || mid[1].CallbackData != NoopCallback {
		t.Errorf("interior home = %v", mid[1])
	}
	if mid[2].Text != "3 >" || mid[2].CallbackData != "2" {
		t.Errorf("interior next = %v", mid[2])
	}

	last := pages[2].Nav
	if len(last) != 2 || last[0].Text != "< 2" || last[0].CallbackData != "1" {
		t.Errorf("last page prev = %v", last)
	}
	if last[1].Text != "🏠 3 / 3" || last[1].CallbackData != NoopCallback {
		t.Errorf("last page home = %v", last[1])
	}
}

func TestWriterNavigationStartOffset(t *testing.T) {
	// A section starting at absolute page 5 must address pages 5 and 6.
	w := NewWriter(nil, 5, 20)
	title := richtext.Run{richtext.Text("T")}
	w.WriteParagraphs(title, []richtext.Paragraph{
		textPara(strings.Repeat("a", 15)),
		textPara(strings.Repeat("b", 15)),
	})
	pages := w.Finalize()
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if got := pages[0].Nav[1].CallbackData; got != "6" {
		t.Errorf("next payload = %q, want 6", got)
	}
	if got := pages[1].Nav[0].CallbackData; got != "5" {
		t.Errorf("prev payload = %q, want 5", got)
	}
	// The label stays section-relative while the payload is absolute.
	if got := pages[0].Nav[0].Text; got != "🏠 1 / 2" {
		t.Errorf("home label = %q, want 🏠 1 / 2", got)
	}
}

func TestWriterStyledUnitsBalancePerPage(t *testing.T) {
	w := NewWriter(nil, 0, 20)
	title := richtext.Run{richtext.Text("T")}
	bold := func(s string) richtext.Paragraph {
		return richtext.Paragraph{Kind: richtext.ParagraphText, Run: richtext.Run{
			richtext.Begin(richtext.Bold()), richtext.Text(s), richtext.End(),
		}}
	}
	w.WriteParagraphs(title, []richtext.Paragraph{
		bold(strings.Repeat("a", 12)),
		bold(strings.Repeat("b", 12)),
		bold(strings.Repeat("c", 12)),
	})
	pages := w.Finalize()
	if len(pages) < 2 {
		t.Fatalf("got %d pages, want at least 2", len(pages))
	}
	for i, p := range pages {
		assertBalanced(t, p.Text)
		if !strings.Contains(p.Text, "<b>") {
			t.Errorf("page %d lost bold markup: %q", i, p.Text)
		}
	}
}

func TestWriterMarkupExcludedFromBudget(t *testing.T) {
	// 3 title + 7 + 1 + 7 = 18 visible; the <b> tags must not count.
	w := NewWriter(nil, 0, 18)
	title := richtext.Run{richtext.Text("T")}
	boldPara := richtext.Paragraph{Kind: richtext.ParagraphText, Run: richtext.Run{
		richtext.Begin(richtext.Bold()), richtext.Text("AAAAAAA"), richtext.End(),
	}}
	w.WriteParagraphs(title, []richtext.Paragraph{boldPara, textPara("BBBBBBB")})
	if pages := w.Finalize(); len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
}

func TestWriterEscapesText(t *testing.T) {
	w := NewWriter(nil, 0, DefaultPageLimit)
	title := richtext.Run{richtext.Text("T")}
	w.WriteParagraphs(title, []richtext.Paragraph{textPara("a<b>&c")})
	pages := w.Finalize()
	if want := "T\n\na&lt;b&gt;&amp;c"; pages[0].Text != want {
		t.Errorf("page = %q, want %q", pages[0].Text, want)
	}
}

func TestWriterCollapsesWhitespace(t *testing.T) {
	w := NewWriter(nil, 0, DefaultPageLimit)
	title := richtext.Run{richtext.Text("T")}
	w.WriteParagraphs(title, []richtext.Paragraph{textPara("x  \n\t y")})
	pages := w.Finalize()
	if want := "T\n\nx y"; pages[0].Text != want {
		t.Errorf("page = %q, want %q", pages[0].Text, want)
	}
}

func TestWriterCodeBlockPreservesWhitespace(t *testing.T) {
	w := NewWriter(nil, 0, DefaultPageLimit)
	title := richtext.Run{richtext.Text("T")}
	code := richtext.Paragraph{Kind: richtext.ParagraphCode, Run: richtext.Run{
		richtext.Text("if x {\n    y\n}"),
	}}
	w.WriteParagraphs(title, []richtext.Paragraph{code})
	pages := w.Finalize()
	if want := "T\n\n<code>if x {\n    y\n}</code>"; pages[0].Text != want {
		t.Errorf("page = %q, want %q", pages[0].Text, want)
	}
}

func TestWriterBulletList(t *testing.T) {
	w := NewWriter(nil, 0, DefaultPageLimit)
	title := richtext.Run{richtext.Text("T")}
	list := richtext.Paragraph{Kind: richtext.ParagraphList, Items: []richtext.Run{
		{richtext.Text("one")}, {richtext.Text("two")},
	}}
	w.WriteParagraphs(title, []richtext.Paragraph{list})
	pages := w.Finalize()
	if want := "T\n\n• one\n• two"; pages[0].Text != want {
		t.Errorf("page = %q, want %q", pages[0].Text, want)
	}
}

func TestWriterImagePlaceholder(t *testing.T) {
	w := NewWriter(nil, 0, DefaultPageLimit)
	title := richtext.Run{richtext.Text("T")}
	para := richtext.Paragraph{Kind: richtext.ParagraphText, Run: richtext.Run{
		richtext.Image("https://example.com/pic.png"),
	}}
	w.WriteParagraphs(title, []richtext.Paragraph{para})
	pages := w.Finalize()
	want := `T` + "\n\n" + `<a href="https://example.com/pic.png">(image)</a>`
	if pages[0].Text != want {
		t.Errorf("page = %q, want %q", pages[0].Text, want)
	}
}

func TestWriterItemRows(t *testing.T) {
	w := NewWriter(nil, 0, DefaultPageLimit)
	title := richtext.Run{richtext.Text("Fields")}
	rows := []richtext.ItemRow{
		{Name: richtext.Run{richtext.Text("alpha")}, Summary: richtext.Run{richtext.Text("first")}},
		{Name: richtext.Run{richtext.Text("beta")}, Summary: richtext.Run{richtext.Text("second")}},
	}
	w.WriteItemRows(title, rows)
	pages := w.Finalize()
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	want := "Fields\n\nalpha\nfirst\nbeta\nsecond"
	if pages[0].Text != want {
		t.Errorf("page = %q, want %q", pages[0].Text, want)
	}
}

func TestWriterItemRowAtomicity(t *testing.T) {
	// Each row is 11 visible (5 name + 1 break + 5 summary); with the
	// title header at 3 the second row cannot join under a limit of 20,
	// and its name/summary must move together.
	w := NewWriter(nil, 0, 20)
	title := richtext.Run{richtext.Text("T")}
	rows := []richtext.ItemRow{
		{Name: richtext.Run{richtext.Text("aaaaa")}, Summary: richtext.Run{richtext.Text("AAAAA")}},
		{Name: richtext.Run{richtext.Text("bbbbb")}, Summary: richtext.Run{richtext.Text("BBBBB")}},
	}
	w.WriteItemRows(title, rows)
	pages := w.Finalize()
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if want := "T\n\naaaaa\nAAAAA"; pages[0].Text != want {
		t.Errorf("page 0 = %q, want %q", pages[0].Text, want)
	}
	if want := "T\n\nbbbbb\nBBBBB"; pages[1].Text != want {
		t.Errorf("page 1 = %q, want %q", pages[1].Text, want)
	}
}
