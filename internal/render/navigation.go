package render

import (
	"fmt"
	"strconv"

	"github.com/dgallion1/docsbot/internal/telegram"
)

// attachNavigation decorates a contiguous section run with its
// "page i/N" row. start is the absolute index of pages[0]; jump
// payloads carry absolute page indexes. The home button is inert on
// every page. Single-page sections get no row.
func attachNavigation(pages []Page, start int) {
	n := len(pages)
	if n < 2 {
		return
	}
	for i := range pages {
		abs := start + i
		home := telegram.InlineKeyboardButton{
			Text:         fmt.Sprintf("🏠 %d / %d", i+1, n),
			CallbackData: NoopCallback,
		}
		prev := telegram.InlineKeyboardButton{
			Text:         fmt.Sprintf("< %d", i),
			CallbackData: strconv.Itoa(abs - 1),
		}
		next := telegram.InlineKeyboardButton{
			Text:         fmt.Sprintf("%d >", i+2),
			CallbackData: strconv.Itoa(abs + 1),
		}
		switch {
		case i == 0:
			pages[i].Nav = []telegram.InlineKeyboardButton{home, next}
		case i == n-1:
			pages[i].Nav = []telegram.InlineKeyboardButton{prev, home}
		default:
			pages[i].Nav = []telegram.InlineKeyboardButton{prev, home, next}
		}
	}
}
