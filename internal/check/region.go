package check

import (
	"strings"

	"tptpfmt/internal/format"
)

type pos struct {
	line int
	col  int
}

// region is the raw source text of one span, with its first line number, so
// offsets can be mapped back to document positions.
type region struct {
	text  string
	first int
	// starts[i] is the offset where line first+i begins in text
	starts []int
}

func (c *checker) region(sp format.Span) region {
	end := min(sp.EndLine+1, len(c.lines))
	start := min(max(sp.Line, 0), end)
	text := strings.Join(c.lines[start:end], "\n")

	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return region{text: text, first: start, starts: starts}
}

// pos maps a byte offset in the region to a document position.
func (r region) pos(off int) pos {
	off = min(max(off, 0), len(r.text))
	line := 0
	for line+1 < len(r.starts) && r.starts[line+1] <= off {
		line++
	}
	return pos{line: r.first + line, col: off - r.starts[line]}
}

func (r region) skipSpace(off int) int {
	for off < len(r.text) && (r.text[off] == ' ' || r.text[off] == '\t' || r.text[off] == '\n') {
		off++
	}
	return off
}

// find returns the position of the first occurrence of s after the opening
// parenthesis, or of the statement start when s is not found.
func (r region) find(s string) pos {
	open := strings.IndexByte(r.text, '(')
	if open < 0 || s == "" {
		return r.pos(r.skipSpace(0))
	}
	if i := strings.Index(r.text[open:], s); i >= 0 {
		return r.pos(open + i)
	}
	return r.pos(r.skipSpace(0))
}

// trailing returns the offset of the first non-space text after the ")." that
// closes the statement's opening parenthesis, when the span continues past it.
func (r region) trailing() (int, bool) {
	open := strings.IndexByte(r.text, '(')
	if open < 0 {
		return 0, false
	}
	depth := 0
	for i := open; i < len(r.text); i++ {
		switch r.text[i] {
		case '\'', '"':
			end := closingQuote(r.text, i)
			if end < 0 {
				return 0, false
			}
			i = end
		case '(', '[':
			depth++
		case ')', ']':
			depth--
			if depth != 0 {
				continue
			}
			if i+1 >= len(r.text) || r.text[i+1] != '.' {
				return 0, false
			}
			off := r.skipSpace(i + 2)
			return off, off < len(r.text)
		}
	}
	return 0, false
}
