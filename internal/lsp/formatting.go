package lsp

import (
	"context"
	"encoding/json"
	"strings"

	"tptpfmt/internal/config"
	"tptpfmt/internal/driver"
)

// handleFormatting answers asynchronously: a preferred external tool may
// take seconds and must not stall document sync.
func (s *Server) handleFormatting(msg *rpcMessage) error {
	var params documentFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, []textEdit{})
	}
	cfg, _ := s.currentConfig()
	id := msg.ID
	started := s.goAsync(func(ctx context.Context) {
		if err := s.sendResponse(id, formatEdits(ctx, text, cfg)); err != nil {
			s.logf("formatting response: %v", err)
		}
	})
	if !started {
		return s.sendError(id, codeInvalidRequest, "server is shutting down")
	}
	return nil
}

// formatEdits returns a single whole-document edit, or none when the text is
// already formatted. The result ends in exactly one newline like files
// written by "tptpfmt fmt".
func formatEdits(ctx context.Context, text string, cfg config.Config) []textEdit {
	res := driver.FormatText(ctx, text, cfg)
	formatted := strings.TrimRight(res.Formatted, "\r\n")
	if formatted != "" {
		formatted += "\n"
	}
	if formatted == text {
		return []textEdit{}
	}
	return []textEdit{{
		Range:   lspRange{Start: position{}, End: endPosition(text)},
		NewText: formatted,
	}}
}
