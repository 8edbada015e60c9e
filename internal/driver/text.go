// Package driver ties the formatting core, the checker, the external tool and
// the cache together for whole documents and file trees.
package driver

import (
	"context"

	"tptpfmt/internal/check"
	"tptpfmt/internal/config"
	"tptpfmt/internal/diag"
	"tptpfmt/internal/external"
	"tptpfmt/internal/format"
	"tptpfmt/internal/trace"
)

// TextResult is the outcome of formatting one document.
type TextResult struct {
	Formatted string
	Report    format.Report
	// External is set when the output came from the external tool.
	External bool
}

// FormatText formats a whole document. When the external tool is configured
// and preferred it gets exactly one attempt; any failure falls back to the
// built-in pipeline and is only visible in the trace.
func FormatText(ctx context.Context, text string, cfg config.Config) TextResult {
	if cfg.ExternalEnabled() {
		out, err := external.New(cfg).Format(ctx, text)
		if err == nil {
			return TextResult{Formatted: out, Report: spanReport(text), External: true}
		}
		trace.Error(ctx, trace.ScopeFile, "external_format", err, map[string]string{"fallback": "builtin"})
	}
	out, rep := format.FormatDocument(text)
	return TextResult{Formatted: out, Report: rep}
}

// spanReport counts spans for output produced by the external tool; the
// per-statement outcome is unknown there, so nothing counts as passthrough.
func spanReport(text string) format.Report {
	var rep format.Report
	for _, sp := range format.SplitSpans(text) {
		if sp.Kind == format.SpanComment {
			rep.Comments++
			continue
		}
		rep.Statements++
		rep.Formatted++
	}
	return rep
}

// CheckText checks a document. A preferred external tool runs first; exit 0
// means no findings, any other outcome falls back to the built-in checker.
func CheckText(ctx context.Context, content, filename string, cfg config.Config, maxDiagnostics int) []diag.Diagnostic {
	if cfg.ExternalEnabled() {
		res, err := external.New(cfg).Check(ctx, content)
		switch {
		case err != nil:
			trace.Error(ctx, trace.ScopeFile, "external_check", err, map[string]string{"fallback": "builtin"})
		case res.OK():
			return nil
		default:
			trace.Point(ctx, trace.ScopeFile, "external_check", "rejected", map[string]string{"fallback": "builtin"})
		}
	}
	return check.CheckWithOptions(content, filename, check.Options{MaxDiagnostics: maxDiagnostics})
}
