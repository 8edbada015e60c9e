// Package check implements a lightweight structural checker for TPTP
// documents. It is not a parser: it reports what the formatter's scanners can
// see (terminators, keywords, bracket balance, quoting, component count) plus
// a few cheap lints.
package check

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"tptpfmt/internal/diag"
	"tptpfmt/internal/format"
)

// Roles lists the formula roles of the TPTP syntax. A role may carry a
// "-subrole" suffix.
var Roles = []string{
	"axiom", "hypothesis", "definition", "assumption", "lemma", "theorem",
	"corollary", "conjecture", "negated_conjecture", "plain", "type",
	"interpretation", "fi_domain", "fi_functors", "fi_predicates", "unknown",
	"logic",
}

// Options tunes a check run.
type Options struct {
	// MaxDiagnostics caps the result size (<= 0 means no limit).
	MaxDiagnostics int
}

// Check inspects content and returns diagnostics sorted by line, column and
// severity. filename is only copied into the records.
func Check(content, filename string) []diag.Diagnostic {
	return CheckWithOptions(content, filename, Options{})
}

// CheckWithOptions is Check with explicit options.
func CheckWithOptions(content, filename string, opts Options) []diag.Diagnostic {
	c := &checker{
		file:  filename,
		lines: strings.Split(normalizeNewlines(content), "\n"),
		bag:   diag.NewBag(0),
		names: make(map[string]int),
	}
	for _, sp := range format.SplitSpans(content) {
		switch sp.Kind {
		case format.SpanComment:
			c.comment(sp)
		case format.SpanStatement:
			c.statement(sp)
		}
	}

	c.bag.Sort()
	items := c.bag.Items()
	if opts.MaxDiagnostics > 0 && len(items) > opts.MaxDiagnostics {
		items = items[:opts.MaxDiagnostics]
	}
	return items
}

type checker struct {
	file  string
	lines []string
	bag   *diag.Bag
	// statement name -> line of first definition
	names map[string]int
}

func (c *checker) report(sev diag.Severity, code diag.Code, p pos, width int, msg string) {
	c.bag.Add(diag.New(sev, code, c.file, p.line, p.col, p.col+width, msg))
}

func (c *checker) comment(sp format.Span) {
	if sp.Terminated {
		return
	}
	p := c.firstNonSpace(sp.Line)
	c.report(diag.SevError, diag.LexUnterminatedComment, p, 2, "block comment is never closed")
}

func (c *checker) statement(sp format.Span) {
	r := c.region(sp)
	kwPos := r.pos(r.skipSpace(0))
	kw := format.Keyword(sp.Text)

	if kw == "" {
		c.report(diag.SevError, diag.SynUnknownKeyword, kwPos, 1, "expected a statement of the form kind(name,role,formula).")
		return
	}
	if !format.IsKind(kw) && kw != "include" {
		c.report(diag.SevError, diag.SynUnknownKeyword, kwPos, len(kw), fmt.Sprintf("unknown statement keyword %q", kw))
	}
	if !sp.Terminated {
		endPos := r.pos(len(r.text))
		c.report(diag.SevError, diag.SynUnterminatedStatement, endPos, 0, "statement is not terminated by ').'")
	}

	balanced := c.brackets(r)
	if !format.IsKind(kw) || !sp.Terminated || !balanced {
		return
	}

	if off, ok := r.trailing(); ok {
		rest := r.text[off:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[:nl]
		}
		c.report(diag.SevError, diag.SynTrailingText, r.pos(off), len(strings.TrimRight(rest, " \t")),
			"statement ends before this text; put each statement on its own line")
		return
	}

	_, comp, reason := format.Parse(sp.Text)
	if reason == format.ReasonInvalidStructure {
		c.report(diag.SevError, diag.SynTooFewComponents, kwPos, len(kw), "statement needs name, role and formula separated by commas")
		return
	}
	if reason != format.ReasonNone {
		return
	}

	if comp.Formula == "" {
		c.report(diag.SevError, diag.SynEmptyFormula, kwPos, len(kw), "formula is empty")
	}
	if !knownRole(comp.Role) {
		msg := fmt.Sprintf("unknown role %q", comp.Role)
		if hint, ok := roleHint(comp.Role); ok {
			msg += fmt.Sprintf(" (did you mean %q?)", hint)
		}
		c.report(diag.SevWarning, diag.SemaUnknownRole, r.find(comp.Role), len(comp.Role), msg)
	}
	if first, dup := c.names[comp.Name]; dup {
		c.report(diag.SevWarning, diag.SemaDuplicateName, r.find(comp.Name), len(comp.Name),
			fmt.Sprintf("statement name %q already used on line %d", comp.Name, first+1))
	} else {
		c.names[comp.Name] = kwPos.line
	}
}

type opener struct {
	ch  byte
	off int
}

// brackets reports unbalanced ( ) [ ] and unterminated quoted atoms, and
// lints quoted atoms for NFC. It returns true when everything is balanced.
func (c *checker) brackets(r region) bool {
	var stack []opener
	ok := true
	text := r.text
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch ch {
		case '\'', '"':
			end := closingQuote(text, i)
			if end < 0 {
				c.report(diag.SevError, diag.LexUnterminatedQuote, r.pos(i), 1, "quoted atom is never closed")
				return false
			}
			if atom := text[i : end+1]; !norm.NFC.IsNormalString(atom) {
				c.report(diag.SevWarning, diag.LexNotNFC, r.pos(i), len(atom), "quoted atom is not in Unicode NFC form")
			}
			i = end
		case '(', '[':
			stack = append(stack, opener{ch: ch, off: i})
		case ')', ']':
			want := byte('(')
			code := diag.SynUnbalancedParen
			if ch == ']' {
				want = '['
				code = diag.SynUnbalancedBracket
			}
			if len(stack) == 0 || stack[len(stack)-1].ch != want {
				c.report(diag.SevError, code, r.pos(i), 1, fmt.Sprintf("unexpected %q", ch))
				ok = false
				continue
			}
			stack = stack[:len(stack)-1]
		}
	}
	for _, o := range stack {
		code := diag.SynUnbalancedParen
		if o.ch == '[' {
			code = diag.SynUnbalancedBracket
		}
		c.report(diag.SevError, code, r.pos(o.off), 1, fmt.Sprintf("%q is never closed", o.ch))
		ok = false
	}
	return ok
}

// closingQuote returns the index of the quote closing the one at start, or
// -1 when the atom runs to the end of text.
func closingQuote(text string, start int) int {
	q := text[start]
	for i := start + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case q:
			return i
		}
	}
	return -1
}

func knownRole(role string) bool {
	base, _, _ := strings.Cut(role, "-")
	for _, r := range Roles {
		if r == base {
			return true
		}
	}
	return false
}

// roleHint suggests the known role that role matches after case folding.
// Roles are case-sensitive in TPTP, so "Axiom" is unknown but fixable.
func roleHint(role string) (string, bool) {
	folded := cases.Fold().String(role)
	if folded == role || !knownRole(folded) {
		return "", false
	}
	return folded, true
}

func (c *checker) firstNonSpace(line int) pos {
	if line < 0 || line >= len(c.lines) {
		return pos{line: line}
	}
	l := c.lines[line]
	return pos{line: line, col: len(l) - len(strings.TrimLeft(l, " \t"))}
}

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
