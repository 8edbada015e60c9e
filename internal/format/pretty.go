package format

import "strings"

// stopChars end an unquoted atom. '<' is included so that "p<=>q" splits
// into the atom and the connective.
const stopChars = "()[]&|~@,:=><"

// binders are quantifier-like symbols; they act as binders only when a
// variable list '[' follows. Longer symbols come first.
var binders = []string{"!>", "?*", "@+", "@-", "!", "?", "^"}

// FormatFormula lays out a formula body. It never fails: on any internal
// inconsistency the input is returned unchanged.
func FormatFormula(formula string) string {
	out, ok := formatFormula(formula)
	if !ok {
		return formula
	}
	return out
}

func formatFormula(formula string) (out string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			out, ok = "", false
		}
	}()

	body := stripOuterParens(strings.TrimSpace(formula))
	c := &cursor{src: body, w: NewWriter(2 * len(body))}
	if !c.run() {
		return "", false
	}
	return c.w.String(), true
}

// cursor is the per-formula scan state. It is created for one call and
// dropped afterwards.
type cursor struct {
	src string
	pos int
	w   *Writer
}

func (c *cursor) run() bool {
	for {
		c.skipSpace()
		if c.pos >= len(c.src) {
			return true
		}
		before := c.pos
		c.step()
		if c.pos <= before {
			return false
		}
	}
}

func (c *cursor) step() {
	rest := c.src[c.pos:]

	// multi-character operators first
	switch {
	case strings.HasPrefix(rest, "<=>"), strings.HasPrefix(rest, "<~>"):
		c.connective(rest[:3])
		return
	case strings.HasPrefix(rest, "=>"):
		c.implication()
		return
	case strings.HasPrefix(rest, "<="), strings.HasPrefix(rest, "~|"), strings.HasPrefix(rest, "~&"):
		c.connective(rest[:2])
		return
	case strings.HasPrefix(rest, "-->"):
		c.w.Raw(" --> ")
		c.pos += 3
		return
	case strings.HasPrefix(rest, ":="):
		c.w.Raw(" := ")
		c.pos += 2
		return
	case strings.HasPrefix(rest, "!="):
		c.w.Token("!=")
		c.pos += 2
		return
	}

	if sym, ok := c.binder(rest); ok {
		c.quantifier(sym)
		return
	}

	switch rest[0] {
	case '~':
		c.w.Token("~ ")
		c.pos++
	case '&', '|':
		c.connective(rest[:1])
	case '(':
		c.w.Token("( ")
		c.pos++
	case ')':
		c.w.Raw(" )")
		c.pos++
		if c.peek() == ')' {
			c.w.IndentPop()
		}
	case '@':
		c.w.Raw(" @ ")
		c.pos++
	case ',':
		c.w.Raw(",")
		c.pos++
	case ':':
		c.w.Raw(": ")
		c.pos++
	case '>':
		c.w.Raw(" > ")
		c.pos++
	default:
		end := c.scanAtom()
		c.w.Token(c.src[c.pos:end])
		c.pos = end
	}
}

// binder reports whether rest starts with a quantifier symbol followed,
// after optional whitespace, by a variable list.
func (c *cursor) binder(rest string) (string, bool) {
	for _, sym := range binders {
		if !strings.HasPrefix(rest, sym) {
			continue
		}
		after := strings.TrimLeft(rest[len(sym):], " \t\n")
		if strings.HasPrefix(after, "[") {
			return sym, true
		}
	}
	return "", false
}

// quantifier emits "sym [vars]" and, when a colon follows, " :" plus a line
// break one level deeper.
func (c *cursor) quantifier(sym string) {
	c.w.Token(sym + " ")
	c.pos += len(sym)
	c.skipSpace()

	end := c.matchBracket(c.pos)
	c.w.Raw(c.src[c.pos:end])
	c.pos = end

	if c.peek() == ':' && !strings.HasPrefix(c.src[c.skipped():], ":=") {
		c.skipSpace()
		c.pos++
		c.w.LineEnd(" :\n")
		c.w.IndentPush()
	}
}

func (c *cursor) implication() {
	c.w.IndentPush()
	c.w.Break("=> ")
	c.pos += 2
}

func (c *cursor) connective(op string) {
	c.w.Break(op + " ")
	c.pos += len(op)
}

// matchBracket returns the index just past the ']' closing the '[' at start,
// or len(src) when the list is unterminated.
func (c *cursor) matchBracket(start int) int {
	depth := 0
	var quote byte
	for i := start; i < len(c.src); i++ {
		ch := c.src[i]
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
		case '[', '(':
			depth++
		case ']', ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(c.src)
}

// scanAtom returns the end of the maximal atom starting at pos. Quoted
// parts are skipped as a whole, honoring backslash escapes. A lone stop
// character is returned as a one-character atom.
func (c *cursor) scanAtom() int {
	i := c.pos
	var quote byte
	for i < len(c.src) {
		ch := c.src[i]
		if quote != 0 {
			if ch == '\\' {
				i += 2
				continue
			}
			if ch == quote {
				quote = 0
			}
			i++
			continue
		}
		if ch == '\'' || ch == '"' {
			quote = ch
			i++
			continue
		}
		if isSpace(ch) || strings.IndexByte(stopChars, ch) >= 0 {
			break
		}
		i++
	}
	i = min(i, len(c.src))
	if i == c.pos {
		i++
	}
	return i
}

func (c *cursor) skipSpace() {
	c.pos = c.skipped()
}

// skipped returns the position of the next non-whitespace byte.
func (c *cursor) skipped() int {
	i := c.pos
	for i < len(c.src) && isSpace(c.src[i]) {
		i++
	}
	return i
}

// peek returns the next non-whitespace byte, or 0 at end of input.
func (c *cursor) peek() byte {
	i := c.skipped()
	if i >= len(c.src) {
		return 0
	}
	return c.src[i]
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

// stripOuterParens removes one pair of parentheses when it encloses the
// whole expression, i.e. depth first returns to zero at the last byte.
func stripOuterParens(s string) string {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s
	}
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
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
			if depth == 0 && i != len(s)-1 {
				return s
			}
		}
	}
	if depth != 0 {
		return s
	}
	return strings.TrimSpace(s[1 : len(s)-1])
}
