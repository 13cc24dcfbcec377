package richtext

import (
	"regexp"
	"strings"
)

var spaceRe = regexp.MustCompile(`\s+`)

// Plain flattens a run to unstyled text, suitable for button labels.
// Whitespace collapses to single spaces outside code spans; images and
// tables contribute nothing.
func Plain(run Run) string {
	var buf strings.Builder
	depth := 0
	inCode := 0
	for _, part := range run {
		switch part.Kind {
		case PartText:
			text := part.Text
			if inCode == 0 {
				text = spaceRe.ReplaceAllString(text, " ")
			}
			buf.WriteString(text)
		case PartImage, PartTable:
		case PartBeginStyle:
			depth++
			if part.Style.Kind == StyleMonospaced {
				inCode = depth
			}
		case PartEndStyle:
			if inCode == depth {
				inCode = 0
			}
			depth--
		}
	}
	return buf.String()
}

// CollapseSpace collapses whitespace runs to single spaces.
func CollapseSpace(s string) string {
	return spaceRe.ReplaceAllString(s, " ")
}
