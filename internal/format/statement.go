package format

import "strings"

// Kinds lists the statement keywords the formatter restructures.
var Kinds = []string{"thf", "tff", "fof", "cnf", "tpi"}

// IsKind reports whether kw is a restructurable statement keyword.
func IsKind(kw string) bool {
	for _, k := range Kinds {
		if k == kw {
			return true
		}
	}
	return false
}

// Components are the top-level parts of an annotated formula body.
type Components struct {
	Name    string
	Role    string
	Formula string
	// Source is the trailing annotation text, verbatim; empty when absent.
	Source string
}

// HasSource reports whether a trailing annotation is present.
func (c Components) HasSource() bool {
	return c.Source != ""
}

// Extract recovers name, role, formula and optional source from the text
// between a statement's outer parentheses. ok is false when fewer than three
// top-level comma-separated parts exist.
func Extract(inner string) (c Components, ok bool) {
	parts := SplitTopLevel(inner, ",")
	if len(parts) < 3 {
		return Components{}, false
	}
	c = Components{
		Name:    strings.TrimSpace(parts[0]),
		Role:    strings.TrimSpace(parts[1]),
		Formula: strings.TrimSpace(parts[2]),
	}
	if len(parts) > 3 {
		c.Source = strings.TrimSpace(strings.Join(parts[3:], ","))
	}
	return c, true
}

// header is the statement keyword and the body between the outer parentheses.
type header struct {
	Kind  string
	Inner string
}

// splitHeader cuts "kind( inner )." into its keyword and body. ok is false
// when there is no opening parenthesis or the text does not end with ").".
func splitHeader(stmt string) (h header, ok bool) {
	stmt = strings.TrimSpace(stmt)
	open := strings.IndexByte(stmt, '(')
	if open <= 0 || !strings.HasSuffix(stmt, ").") || len(stmt) < open+3 {
		return header{}, false
	}
	return header{
		Kind:  strings.TrimSpace(stmt[:open]),
		Inner: stmt[open+1 : len(stmt)-2],
	}, true
}

// Keyword returns the leading keyword of a statement (text before the first
// '('), trimmed. It returns "" when the statement has no '('.
func Keyword(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	open := strings.IndexByte(stmt, '(')
	if open < 0 {
		return ""
	}
	return strings.TrimSpace(stmt[:open])
}
