// Package testkit holds invariant checks shared by unit tests and fuzz
// harnesses of the formatting pipeline.
package testkit

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"fortio.org/safecast"

	"tptpfmt/internal/diag"
	"tptpfmt/internal/format"
)

// CheckSplitRoundTrip verifies that joining the top-level parts of text
// with delim reproduces text exactly.
func CheckSplitRoundTrip(text, delim string) error {
	parts := format.SplitTopLevel(text, delim)
	if len(parts) == 0 {
		return fmt.Errorf("split of %q returned no parts", text)
	}
	if delim == "" {
		return nil
	}
	if got := strings.Join(parts, delim); got != text {
		return fmt.Errorf("round trip mismatch:\n got %q\nwant %q", got, text)
	}
	return nil
}

// CheckSpanCoverage verifies that the spans of text keep every non-space
// character in document order and that span lines never go backwards.
func CheckSpanCoverage(text string) error {
	spans := format.SplitSpans(text)
	var sb strings.Builder
	prevEnd := -1
	for i, sp := range spans {
		if sp.EndLine < sp.Line {
			return fmt.Errorf("span %d ends before it starts: %d..%d", i, sp.Line, sp.EndLine)
		}
		if sp.Line <= prevEnd {
			return fmt.Errorf("span %d starts at line %d inside previous span ending at %d", i, sp.Line, prevEnd)
		}
		prevEnd = sp.EndLine
		// Spans never share a line; the separator keeps bytes of invalid
		// UTF-8 from neighbouring lines apart.
		sb.WriteString(sp.Text)
		sb.WriteByte('\n')
	}
	if got, want := visible(sb.String()), visible(text); !slices.Equal(got, want) {
		return fmt.Errorf("spans lost or reordered text: %d visible runes, want %d", len(got), len(want))
	}
	return nil
}

// CheckStatementResult verifies the contract of one FormatStatement call:
// passthrough is byte-exact, formatted output has the canonical header,
// closing marker and source placement.
func CheckStatementResult(stmt string, res format.Result) error {
	switch res.Outcome {
	case format.Passthrough:
		if res.Reason == format.ReasonNone {
			return fmt.Errorf("passthrough without a reason")
		}
		if res.Text != stmt {
			return fmt.Errorf("passthrough changed text:\n got %q\nwant %q", res.Text, stmt)
		}
		return nil
	case format.Formatted:
	default:
		return fmt.Errorf("unknown outcome %d", res.Outcome)
	}

	if res.Reason != format.ReasonNone {
		return fmt.Errorf("formatted result carries reason %s", res.Reason)
	}
	kind, comp, reason := format.Parse(stmt)
	if reason != format.ReasonNone {
		return fmt.Errorf("formatted a statement that does not parse: %s", reason)
	}
	header := "    " + kind + "(" + comp.Name + "," + comp.Role + ",\n"
	if !strings.HasPrefix(res.Text, header) {
		return fmt.Errorf("missing header %q in %q", header, res.Text)
	}
	if !strings.HasSuffix(res.Text, " ).") {
		return fmt.Errorf("missing closing marker in %q", res.Text)
	}
	if comp.HasSource() && !strings.Contains(res.Text, ",\n        "+comp.Source) {
		return fmt.Errorf("source %q not placed on its own line", comp.Source)
	}
	return nil
}

// CheckDiagnostics verifies that every diagnostic points inside text and has
// an ordered column range.
func CheckDiagnostics(text string, diags []diag.Diagnostic) error {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines, err := safecast.Conv[uint32](strings.Count(text, "\n") + 1)
	if err != nil {
		return fmt.Errorf("line count overflow: %w", err)
	}
	for i, d := range diags {
		if d.Line >= lines {
			return fmt.Errorf("diagnostic %d (%s) on line %d, text has %d lines", i, d.Code.ID(), d.Line, lines)
		}
		if d.ColEnd < d.ColStart {
			return fmt.Errorf("diagnostic %d (%s) has column range %d..%d", i, d.Code.ID(), d.ColStart, d.ColEnd)
		}
		if d.Severity != diag.SevError && d.Severity != diag.SevWarning {
			return fmt.Errorf("diagnostic %d has severity %d", i, d.Severity)
		}
	}
	return nil
}

func visible(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			out = append(out, r)
		}
	}
	return out
}
