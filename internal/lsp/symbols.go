package lsp

import (
	"encoding/json"
	"strings"

	"tptpfmt/internal/format"
)

// LSP SymbolKind values used for formula roles.
const (
	symbolKindProperty      = 7
	symbolKindConstant      = 14
	symbolKindEvent         = 24
	symbolKindTypeParameter = 26
)

func (s *Server) handleDocumentSymbol(msg *rpcMessage) error {
	var params documentSymbolParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, []documentSymbol{})
	}
	return s.sendResponse(msg.ID, buildDocumentSymbols(text))
}

// buildDocumentSymbols lists one symbol per statement whose name and role
// can be recovered, in document order.
func buildDocumentSymbols(text string) []documentSymbol {
	symbols := []documentSymbol{}
	for _, sp := range format.SplitSpans(text) {
		if sp.Kind != format.SpanStatement {
			continue
		}
		kind, comp, reason := format.Parse(sp.Text)
		if reason != format.ReasonNone || comp.Name == "" {
			continue
		}
		last := lineText(text, sp.EndLine)
		full := lspRange{
			Start: position{Line: sp.Line},
			End:   positionAt(text, sp.EndLine, len(last)),
		}
		symbols = append(symbols, documentSymbol{
			Name:           comp.Name,
			Detail:         kind + " " + comp.Role,
			Kind:           roleSymbolKind(comp.Role),
			Range:          full,
			SelectionRange: nameRange(text, sp.Line, comp.Name, full),
		})
	}
	return symbols
}

// nameRange locates name after the opening parenthesis on the statement's
// first line; names split across lines fall back to the whole statement.
func nameRange(text string, line int, name string, fallback lspRange) lspRange {
	l := lineText(text, line)
	open := strings.IndexByte(l, '(')
	if open < 0 {
		return fallback
	}
	at := strings.Index(l[open:], name)
	if at < 0 {
		return fallback
	}
	at += open
	return lspRange{
		Start: positionAt(text, line, at),
		End:   positionAt(text, line, at+len(name)),
	}
}

func roleSymbolKind(role string) int {
	base, _, _ := strings.Cut(role, "-")
	switch base {
	case "conjecture", "negated_conjecture", "question":
		return symbolKindEvent
	case "type":
		return symbolKindTypeParameter
	case "axiom", "hypothesis", "definition", "assumption", "lemma", "theorem", "corollary":
		return symbolKindConstant
	default:
		return symbolKindProperty
	}
}
