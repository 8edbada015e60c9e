package format

import (
	"strings"
)

// Outcome says whether a statement was restructured or passed through.
type Outcome uint8

const (
	// Formatted means Result.Text is the canonical layout.
	Formatted Outcome = iota + 1
	// Passthrough means Result.Text is the original statement text.
	Passthrough
)

func (o Outcome) String() string {
	switch o {
	case Formatted:
		return "formatted"
	case Passthrough:
		return "passthrough"
	default:
		return "unknown"
	}
}

// Reason explains a Passthrough outcome.
type Reason uint8

const (
	// ReasonNone: the statement was formatted.
	ReasonNone Reason = iota
	// ReasonUnknownKind: the keyword is not thf/tff/fof/cnf/tpi.
	ReasonUnknownKind
	// ReasonUnterminated: the statement does not end with ").".
	ReasonUnterminated
	// ReasonInvalidStructure: fewer than three top-level components, or
	// brackets and quoted atoms that do not nest.
	ReasonInvalidStructure
	// ReasonRecovered: the formula scanner gave up on the fragment.
	ReasonRecovered
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonUnknownKind:
		return "unknown statement kind"
	case ReasonUnterminated:
		return "unterminated statement"
	case ReasonInvalidStructure:
		return "invalid statement structure"
	case ReasonRecovered:
		return "formula not restructurable"
	default:
		return "unknown"
	}
}

// Result is the outcome of formatting one statement. Callers never need to
// handle errors: Text is always usable.
type Result struct {
	Text    string
	Outcome Outcome
	Reason  Reason
}

func passthrough(stmt string, reason Reason) Result {
	return Result{Text: stmt, Outcome: Passthrough, Reason: reason}
}

// Parse recovers the keyword and components of a statement. reason is
// ReasonNone on success and explains the failure otherwise.
func Parse(stmt string) (kind string, comp Components, reason Reason) {
	if !IsKind(Keyword(stmt)) {
		return "", Components{}, ReasonUnknownKind
	}
	h, ok := splitHeader(stmt)
	if !ok {
		return "", Components{}, ReasonUnterminated
	}
	if !IsBalanced(h.Inner) {
		return h.Kind, Components{}, ReasonInvalidStructure
	}
	comp, ok = Extract(h.Inner)
	if !ok {
		return h.Kind, Components{}, ReasonInvalidStructure
	}
	return h.Kind, comp, ReasonNone
}

// FormatStatement formats one annotated formula. Statements that cannot be
// restructured come back character-for-character unchanged.
func FormatStatement(stmt string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = passthrough(stmt, ReasonRecovered)
		}
	}()

	kind, comp, reason := Parse(stmt)
	if reason != ReasonNone {
		return passthrough(stmt, reason)
	}
	formula, ok := formatFormula(comp.Formula)
	if !ok {
		return passthrough(stmt, ReasonRecovered)
	}

	var sb strings.Builder
	sb.Grow(len(stmt) + len(formula) + 32)
	sb.WriteString("    ")
	sb.WriteString(kind)
	sb.WriteByte('(')
	sb.WriteString(comp.Name)
	sb.WriteByte(',')
	sb.WriteString(comp.Role)
	sb.WriteString(",\n")
	sb.WriteString(formula)
	if comp.HasSource() {
		sb.WriteString(",\n        ")
		sb.WriteString(comp.Source)
	}
	sb.WriteString(" ).")
	return Result{Text: sb.String(), Outcome: Formatted}
}

// Report summarizes a document formatting run.
type Report struct {
	Comments    int `json:"comments"`
	Statements  int `json:"statements"`
	Formatted   int `json:"formatted"`
	Passthrough int `json:"passthrough"`
}

// FormatDocument runs the direct pipeline over a whole document: comments
// are copied verbatim followed by a line break, statements are formatted (or
// passed through) and followed by a blank line; trailing whitespace is
// trimmed from the result.
func FormatDocument(text string) (string, Report) {
	var (
		sb  strings.Builder
		rep Report
	)
	sb.Grow(len(text) + len(text)/2)

	for _, sp := range SplitSpans(text) {
		switch sp.Kind {
		case SpanComment:
			rep.Comments++
			sb.WriteString(sp.Text)
			sb.WriteByte('\n')
		case SpanStatement:
			rep.Statements++
			res := FormatStatement(sp.Text)
			if res.Outcome == Formatted {
				rep.Formatted++
			} else {
				rep.Passthrough++
			}
			sb.WriteString(res.Text)
			sb.WriteString("\n\n")
		}
	}

	return strings.TrimRight(sb.String(), " \t\r\n"), rep
}

// Format is FormatDocument without the report.
func Format(text string) string {
	out, _ := FormatDocument(text)
	return out
}
