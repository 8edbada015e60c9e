package format

import "strings"

// SplitTopLevel splits text on delim, ignoring delimiters nested inside
// parentheses/brackets or quoted atoms ('...' and "..."). A backslash inside a
// quoted atom escapes the next character.
//
// The result always round-trips: strings.Join(SplitTopLevel(s, d), d) == s.
// Unbalanced input never fails; the scan just ends with a residual depth.
func SplitTopLevel(text, delim string) []string {
	if delim == "" {
		return []string{text}
	}

	var (
		parts []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if quote != 0 {
			switch ch {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"':
			quote = ch
			continue
		case '(', '[':
			depth++
			continue
		case ')', ']':
			depth--
			continue
		}
		if depth == 0 && strings.HasPrefix(text[i:], delim) {
			parts = append(parts, text[start:i])
			i += len(delim) - 1
			start = i + 1
		}
	}
	return append(parts, text[start:])
}

// balanceState reports the residual bracket depth, whether a closing bracket
// ever had no opener, and whether a quoted atom was left open at the end of
// text.
func balanceState(text string) (depth int, underflow, openQuote bool) {
	var quote byte
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if quote != 0 {
			switch ch {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"':
			quote = ch
		case '(', '[':
			depth++
		case ')', ']':
			depth--
			if depth < 0 {
				underflow = true
			}
		}
	}
	return depth, underflow, quote != 0
}

// IsBalanced reports whether brackets and quoted atoms in text are closed.
// A closer before its opener, as in "p). f(b", is unbalanced even when the
// counts match.
func IsBalanced(text string) bool {
	depth, underflow, open := balanceState(text)
	return depth == 0 && !underflow && !open
}
