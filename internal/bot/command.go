package bot

import "strings"

// Command is a tokenized bot command: "/docs serde::Deserialize" splits
// into Label "/docs" and Rest "serde::Deserialize". A "@botname"
// suffix on the label (group-chat addressing) is stripped.
type Command struct {
	Label string
	Rest  string
}

// ParseCommand tokenizes a message text. ok is false when the text is
// not a command.
func ParseCommand(text string) (Command, bool) {
	if !strings.HasPrefix(text, "/") {
		return Command{}, false
	}
	label, rest, _ := strings.Cut(text, " ")
	if at := strings.IndexByte(label, '@'); at >= 0 {
		label = label[:at]
	}
	return Command{Label: label, Rest: strings.TrimSpace(rest)}, true
}
