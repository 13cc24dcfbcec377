package docpath

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DocPath is a validated item path such as "serde::de::Deserialize":
// `::`-separated segments of [a-zA-Z0-9_-]. Module segments are
// normalized from hyphens to underscores; the leading segment keeps its
// spelling (package names may legitimately carry hyphens).
type DocPath struct {
	Segments []string
}

// ErrEmpty reports a missing path argument.
var ErrEmpty = errors.New("empty doc path")

// InvalidCharError reports a path segment with a disallowed character.
type InvalidCharError struct {
	Pos int
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("invalid character in doc path at %d", e.Pos)
}

// Parse tokenizes and validates a /docs argument.
func Parse(s string) (DocPath, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DocPath{}, ErrEmpty
	}

	parts := strings.Split(s, "::")
	segments := make([]string, 0, len(parts))
	for i, part := range parts {
		if pos := strings.IndexFunc(part, isDisallowed); pos >= 0 {
			return DocPath{}, &InvalidCharError{Pos: pos}
		}
		if part == "" {
			return DocPath{}, &InvalidCharError{Pos: 0}
		}
		if i > 0 {
			part = strings.ReplaceAll(part, "-", "_")
		}
		segments = append(segments, part)
	}
	return DocPath{Segments: segments}, nil
}

func isDisallowed(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return false
	case c == '_' || c == '-':
		return false
	}
	return true
}

// Key is the cache key for this path.
func (p DocPath) Key() string {
	return strings.Join(p.Segments, "::")
}

// Item is the final segment, used as the fallback document title.
func (p DocPath) Item() string {
	return p.Segments[len(p.Segments)-1]
}

// URL joins the path segments onto the docs base URL.
func (p DocPath) URL(base *url.URL) *url.URL {
	return base.JoinPath(p.Segments...)
}
