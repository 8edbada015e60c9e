// Package diag defines the diagnostic records produced by the TPTP checker.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – error or warning (severity.go).
//   - Code – compact numeric identifier with a stable string form (codes.go).
//   - File – the file name the content was checked under.
//   - Line – 0-based line of the finding.
//   - ColStart/ColEnd – 0-based byte columns on that line, end exclusive.
//   - Message – short, actionable text.
//
// Bag collects diagnostics up to a limit and sorts them deterministically:
// by line, then column, then severity (errors first), then code.
//
// Package diag does not render anything; see internal/diagfmt.
package diag
