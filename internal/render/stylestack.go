package render

import (
	"net/url"
	"strings"

	"github.com/dgallion1/docsbot/internal/richtext"
)

// markerPair holds the markup emitted when a style opens and closes.
type markerPair struct {
	open  string
	close string
}

// StyleStack tracks currently-open inline styles so they can be closed
// and reopened around page boundaries and suppressed inside code spans.
type StyleStack struct {
	open       []markerPair
	inCode     bool
	suppressed int
}

// InCode reports whether a Monospaced span is active.
func (s *StyleStack) InCode() bool { return s.inCode }

// Push records a style and returns the markup to emit now. Inside a
// code span every inline style is suppressed. A Link whose href cannot
// be resolved against base is tracked as an empty marker pair: the
// style is dropped but the stack stays balanced for the matching Pop.
func (s *StyleStack) Push(st richtext.Style, base *url.URL) string {
	if s.inCode {
		s.suppressed++
		return ""
	}
	switch st.Kind {
	case richtext.StyleLink:
		href := resolveHref(st.Href, base)
		if href == "" {
			s.open = append(s.open, markerPair{})
			return ""
		}
		open := `<a href="` + escapeAttr(href) + `">`
		s.open = append(s.open, markerPair{open: open, close: "</a>"})
		return open
	case richtext.StyleBold:
		return s.push("<b>", "</b>")
	case richtext.StyleItalic:
		return s.push("<i>", "</i>")
	case richtext.StyleUnderline:
		return s.push("<u>", "</u>")
	case richtext.StyleStrikethrough:
		return s.push("<s>", "</s>")
	case richtext.StyleMonospaced:
		// Open styles are closed but not popped: they stay tracked so
		// Pop can reopen them when the code span ends.
		out := s.CloseAll() + "<code>"
		s.inCode = true
		return out
	}
	return ""
}

func (s *StyleStack) push(open, close string) string {
	s.open = append(s.open, markerPair{open: open, close: close})
	return open
}

// Pop closes the most recently opened style. Leaving a code span
// reopens the suppressed styles in their original order.
func (s *StyleStack) Pop() string {
	if s.inCode {
		if s.suppressed > 0 {
			s.suppressed--
			return ""
		}
		s.inCode = false
		return "</code>" + s.ReopenAll()
	}
	if len(s.open) == 0 {
		return ""
	}
	last := s.open[len(s.open)-1]
	s.open = s.open[:len(s.open)-1]
	return last.close
}

// CloseAll emits close markers for every tracked style, innermost
// first, without popping anything.
func (s *StyleStack) CloseAll() string {
	var buf strings.Builder
	for i := len(s.open) - 1; i >= 0; i-- {
		buf.WriteString(s.open[i].close)
	}
	return buf.String()
}

// ReopenAll emits open markers for every tracked style in original
// order.
func (s *StyleStack) ReopenAll() string {
	var buf strings.Builder
	for _, p := range s.open {
		buf.WriteString(p.open)
	}
	return buf.String()
}

// resolveHref resolves href against base, returning "" when the href
// is unusable.
func resolveHref(href string, base *url.URL) string {
	if href == "" {
		return ""
	}
	if base == nil {
		u, err := url.Parse(href)
		if err != nil {
			return ""
		}
		return u.String()
	}
	u, err := base.Parse(href)
	if err != nil {
		return ""
	}
	return u.String()
}
