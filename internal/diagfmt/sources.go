package diagfmt

import "strings"

// Sources gives renderers access to the text the diagnostics point into.
type Sources struct {
	lines map[string][]string
}

// NewSources returns an empty set.
func NewSources() *Sources {
	return &Sources{lines: make(map[string][]string)}
}

// Add registers the content of one file.
func (s *Sources) Add(file, content string) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	s.lines[file] = strings.Split(content, "\n")
}

// Line returns the 0-based line of file.
func (s *Sources) Line(file string, line int) (string, bool) {
	if s == nil {
		return "", false
	}
	lines, ok := s.lines[file]
	if !ok || line < 0 || line >= len(lines) {
		return "", false
	}
	return lines[line], true
}
