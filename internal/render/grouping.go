package render

import (
	"strconv"

	"github.com/dgallion1/docsbot/internal/telegram"
)

// groupSize caps how many rows one additional group holds.
const groupSize = 3

// Grouping batches secondary navigation rows (one per tabular listing)
// into groups of at most three; each finalized group is itself a
// navigable page of buttons.
type Grouping struct {
	groups [][][]telegram.InlineKeyboardButton
}

// Append adds a row to the current group, starting a new group when the
// current one is full.
func (g *Grouping) Append(row []telegram.InlineKeyboardButton) {
	if n := len(g.groups); n > 0 && len(g.groups[n-1]) < groupSize {
		g.groups[n-1] = append(g.groups[n-1], row)
		return
	}
	g.groups = append(g.groups, [][]telegram.InlineKeyboardButton{row})
}

// Finalize attaches group-switch controls when more than one group
// exists and returns the groups. Switch payloads are GroupPrefix plus
// the absolute group index, distinguishing them from page jumps.
func (g *Grouping) Finalize() [][][]telegram.InlineKeyboardButton {
	if len(g.groups) > 1 {
		last := len(g.groups) - 1
		for i := range g.groups {
			var row []telegram.InlineKeyboardButton
			if i < last {
				row = append(row, telegram.InlineKeyboardButton{
					Text:         "↓",
					CallbackData: GroupPrefix + strconv.Itoa(i+1),
				})
			}
			if i > 0 {
				row = append(row, telegram.InlineKeyboardButton{
					Text:         "↑",
					CallbackData: GroupPrefix + strconv.Itoa(i-1),
				})
			}
			g.groups[i] = append(g.groups[i], row)
		}
	}
	return g.groups
}
