package lsp

import (
	"encoding/json"
	"strings"

	"tptpfmt/internal/format"
)

const foldingKindComment = "comment"

func (s *Server) handleFoldingRange(msg *rpcMessage) error {
	var params foldingRangeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, []foldingRange{})
	}
	return s.sendResponse(msg.ID, buildFoldingRanges(text))
}

// buildFoldingRanges folds every statement and block comment that spans more
// than one line, plus runs of adjacent '%' line comments such as the header
// block of a TPTP problem file.
func buildFoldingRanges(text string) []foldingRange {
	ranges := []foldingRange{}
	runStart, runEnd := -1, -1
	flushRun := func() {
		if runStart >= 0 && runEnd > runStart {
			ranges = append(ranges, foldingRange{StartLine: runStart, EndLine: runEnd, Kind: foldingKindComment})
		}
		runStart, runEnd = -1, -1
	}

	for _, sp := range format.SplitSpans(text) {
		lineComment := sp.Kind == format.SpanComment && strings.HasPrefix(sp.Text, "%")
		if lineComment {
			if runStart >= 0 && sp.Line == runEnd+1 {
				runEnd = sp.Line
				continue
			}
			flushRun()
			runStart, runEnd = sp.Line, sp.Line
			continue
		}
		flushRun()
		if sp.EndLine <= sp.Line {
			continue
		}
		fr := foldingRange{StartLine: sp.Line, EndLine: sp.EndLine}
		if sp.Kind == format.SpanComment {
			fr.Kind = foldingKindComment
		}
		ranges = append(ranges, fr)
	}
	flushRun()
	return ranges
}
