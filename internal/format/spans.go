package format

import "strings"

// SpanKind classifies a raw piece of a document.
type SpanKind uint8

const (
	// SpanComment is a '%' line comment or a '/* ... */' block comment.
	SpanComment SpanKind = iota + 1
	// SpanStatement is an accumulated annotated formula (or a best-effort
	// leftover that never reached its terminator).
	SpanStatement
)

func (k SpanKind) String() string {
	switch k {
	case SpanComment:
		return "comment"
	case SpanStatement:
		return "statement"
	default:
		return "unknown"
	}
}

// Span is a contiguous piece of input text.
type Span struct {
	Kind SpanKind
	// Text holds the comment verbatim, or the statement lines trimmed and
	// joined with single spaces.
	Text string
	// Line is the 0-based line of the first input line in the span.
	Line int
	// EndLine is the 0-based line of the last input line in the span.
	EndLine int
	// Terminated is false for a statement that ran to end of input without
	// a closing ")." marker.
	Terminated bool
}

// SplitSpans cuts a document into comment and statement spans in document
// order. Blank lines are dropped; statement lines are trimmed and joined with
// a single space until a line ends with ").". It never fails.
func SplitSpans(text string) []Span {
	lines := strings.Split(normalizeNewlines(text), "\n")

	var (
		spans   []Span
		stmt    []string
		stmtAt  int
		stmtEnd int
	)
	flush := func(terminated bool) {
		if len(stmt) == 0 {
			return
		}
		spans = append(spans, Span{
			Kind:       SpanStatement,
			Text:       strings.Join(stmt, " "),
			Line:       stmtAt,
			EndLine:    stmtEnd,
			Terminated: terminated,
		})
		stmt = stmt[:0]
	}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "%"):
			flush(false)
			spans = append(spans, Span{Kind: SpanComment, Text: line, Line: i, EndLine: i, Terminated: true})
			continue
		case strings.HasPrefix(line, "/*"):
			flush(false)
			end, closed := blockCommentEnd(lines, i)
			block := make([]string, 0, end-i+1)
			for j := i; j <= end; j++ {
				block = append(block, strings.TrimRight(lines[j], " \t"))
			}
			block[0] = strings.TrimLeft(block[0], " \t")
			spans = append(spans, Span{Kind: SpanComment, Text: strings.Join(block, "\n"), Line: i, EndLine: end, Terminated: closed})
			i = end
			continue
		}

		if len(stmt) == 0 {
			stmtAt = i
		}
		stmt = append(stmt, line)
		stmtEnd = i
		if strings.HasSuffix(line, ").") {
			flush(true)
		}
	}
	flush(false)

	return spans
}

// blockCommentEnd returns the index of the line closing the block comment
// opened on lines[start], or the last line when the comment is unterminated.
func blockCommentEnd(lines []string, start int) (int, bool) {
	first := strings.TrimSpace(lines[start])
	if strings.Contains(first[2:], "*/") {
		return start, true
	}
	for j := start + 1; j < len(lines); j++ {
		if strings.Contains(lines[j], "*/") {
			return j, true
		}
	}
	return len(lines) - 1, false
}

func normalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
