package lsp

import (
	"context"
	"time"

	"tptpfmt/internal/diag"
	"tptpfmt/internal/driver"
	"tptpfmt/internal/trace"
)

// LSP DiagnosticSeverity values.
const (
	severityError   = 1
	severityWarning = 2
)

// scheduleDiagnostics (re)starts the debounce timer for uri.
func (s *Server) scheduleDiagnostics(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.shutdownRequested {
		return
	}
	if t, ok := s.timers[uri]; ok {
		t.Stop()
	}
	s.timers[uri] = time.AfterFunc(s.debounce, func() {
		s.goAsync(func(ctx context.Context) {
			if err := s.publishDiagnostics(ctx, uri); err != nil {
				s.logf("publish diagnostics: %v", err)
			}
		})
	})
}

func (s *Server) scheduleAll() {
	s.mu.Lock()
	uris := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	s.mu.Unlock()
	for _, uri := range uris {
		s.scheduleDiagnostics(uri)
	}
}

// publishDiagnostics checks the current text of uri and publishes the
// findings. Results for a version that was superseded meanwhile are dropped.
func (s *Server) publishDiagnostics(ctx context.Context, uri string) error {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	cfg, maxDiagnostics := s.cfg, s.maxDiagnostics
	s.mu.Unlock()
	if !ok {
		return nil
	}

	defer trace.Begin(ctx, trace.ScopeFile, "lsp_check")()
	found := driver.CheckText(ctx, doc.text, documentName(uri), cfg, maxDiagnostics)

	s.mu.Lock()
	current, ok := s.docs[uri]
	if !ok || current.version != doc.version || current.text != doc.text {
		s.mu.Unlock()
		return nil
	}
	s.published[uri] = struct{}{}
	s.mu.Unlock()

	version := doc.version
	return s.sendPublish(uri, &version, toLSPDiagnostics(doc.text, found))
}

func toLSPDiagnostics(text string, found []diag.Diagnostic) []lspDiagnostic {
	out := make([]lspDiagnostic, 0, len(found))
	for _, d := range found {
		line := int(d.Line)
		out = append(out, lspDiagnostic{
			Range: lspRange{
				Start: positionAt(text, line, int(d.ColStart)),
				End:   positionAt(text, line, int(d.ColEnd)),
			},
			Severity: lspSeverity(d.Severity),
			Code:     d.Code.ID(),
			Source:   "tptpfmt",
			Message:  d.Message,
		})
	}
	return out
}

func lspSeverity(sev diag.Severity) int {
	if sev == diag.SevWarning {
		return severityWarning
	}
	return severityError
}
