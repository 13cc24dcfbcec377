package render

import (
	"net/url"
	"strconv"

	"github.com/dgallion1/docsbot/internal/richtext"
	"github.com/dgallion1/docsbot/internal/telegram"
)

// Build renders a document into its Documentation. The lead section
// (title, declaration, description) is one writer run; each tabular
// listing is its own run starting at the current page count. Jump links
// to the listings are grouped and attached to every lead page; listing
// pages carry a single "back to main" group instead.
func Build(doc *richtext.Document, base *url.URL, limit int) *Documentation {
	var pages []Page

	w := NewWriter(base, 0, limit)
	if len(doc.Declaration) > 0 {
		w.WriteTitle(doc.Title)
		w.LineBreak()
		w.LineBreak()
		w.Write(doc.Declaration)
	}
	if len(doc.Description) == 0 && len(doc.Declaration) == 0 {
		w.WriteTitle(doc.Title)
	}
	// Each section starts on a fresh page headed by its own heading,
	// falling back to the document title.
	for _, sec := range doc.Description {
		heading := sec.Heading
		if len(heading) == 0 {
			heading = doc.Title
		}
		w.WriteParagraphs(heading, sec.Paragraphs)
	}
	pages = w.Finalize()
	mainEnd := len(pages)

	var grouping Grouping
	for _, listing := range doc.Listings {
		pageNum := len(pages)
		lw := NewWriter(base, pageNum, limit)
		lw.WriteItemRows(listing.Heading, listing.Rows)
		listingPages := lw.Finalize()
		if len(listingPages) == 0 {
			continue
		}
		backRow := []telegram.InlineKeyboardButton{{Text: "» Main", CallbackData: "0"}}
		for i := range listingPages {
			listingPages[i].Additionals = [][][]telegram.InlineKeyboardButton{{backRow}}
		}
		pages = append(pages, listingPages...)
		grouping.Append([]telegram.InlineKeyboardButton{{
			Text:         richtext.Plain(listing.Heading),
			CallbackData: strconv.Itoa(pageNum),
		}})
	}

	additionals := grouping.Finalize()
	for i := range pages[:mainEnd] {
		pages[i].Additionals = additionals
	}

	return &Documentation{Pages: pages}
}
