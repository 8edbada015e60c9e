package diag

import (
	"fmt"
	"strings"
)

// FormatShort renders diagnostics one per line as
// "<file>:<line>:<col>: <severity> <ID>: <message>", with 1-based line and
// column. Input order is preserved; sort first for stable output.
func FormatShort(diags []Diagnostic) string {
	var b strings.Builder
	for i, d := range diags {
		fmt.Fprintf(&b, "%s:%d:%d: %s %s: %s", d.File, d.Line+1, d.ColStart+1, d.Severity, d.Code.ID(), sanitizeMessage(d.Message))
		if i < len(diags)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sanitizeMessage(msg string) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return strings.TrimSpace(msg)
}
