package render

import "github.com/dgallion1/docsbot/internal/telegram"

// Callback payloads. A bare decimal string jumps to that absolute page
// index and resets the displayed additional group to 0. GroupPrefix
// followed by a decimal keeps the page and switches the displayed
// group. NoopCallback is the inert home button; consumers accept it and
// change nothing.
const (
	NoopCallback = "noop"
	GroupPrefix  = "g"
)

// Page is one bounded chunk of rendered markup with its navigation
// metadata: an optional sequential nav row and the additional button
// groups addressable by group index.
type Page struct {
	Text        string
	Nav         []telegram.InlineKeyboardButton
	Additionals [][][]telegram.InlineKeyboardButton
}

// BuildKeyboard combines the nav row (if any) with the rows of the
// selected additional group (if present). With neither it returns nil.
func (p *Page) BuildKeyboard(group int) *telegram.InlineKeyboardMarkup {
	var rows [][]telegram.InlineKeyboardButton
	if len(p.Nav) > 0 {
		rows = append(rows, p.Nav)
	}
	if group >= 0 && group < len(p.Additionals) {
		rows = append(rows, p.Additionals[group]...)
	}
	if len(rows) == 0 {
		return nil
	}
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// Documentation is the ordered, immutable page sequence for one
// document path. Built once, then shared read-only from the cache.
type Documentation struct {
	Pages []Page
}
