package lsp

import "testing"

func TestApplyChanges(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		changes []textDocumentContentChangeEvent
		want    string
	}{
		{
			name: "insert after surrogate pair",
			text: "a😀b\nc",
			changes: []textDocumentContentChangeEvent{{
				Range: &lspRange{Start: position{0, 3}, End: position{0, 3}},
				Text:  "X",
			}},
			want: "a😀Xb\nc",
		},
		{
			name: "replace across lines",
			text: "fof(a,axiom,\n  p).\n",
			changes: []textDocumentContentChangeEvent{{
				Range: &lspRange{Start: position{0, 12}, End: position{1, 2}},
				Text:  "",
			}},
			want: "fof(a,axiom,p).\n",
		},
		{
			name: "full text then edit",
			text: "old",
			changes: []textDocumentContentChangeEvent{
				{Text: "fof(a,axiom,p)."},
				{Range: &lspRange{Start: position{0, 4}, End: position{0, 5}}, Text: "b"},
			},
			want: "fof(b,axiom,p).",
		},
		{
			name: "range past end clamps",
			text: "ab",
			changes: []textDocumentContentChangeEvent{{
				Range: &lspRange{Start: position{0, 1}, End: position{5, 0}},
				Text:  "c",
			}},
			want: "ac",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyChanges(tt.text, tt.changes); got != tt.want {
				t.Errorf("applyChanges = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOffsetForPosition(t *testing.T) {
	text := "a😀b\nc"
	tests := []struct {
		pos  position
		want int
	}{
		{position{0, 0}, 0},
		{position{0, 1}, 1},
		{position{0, 2}, 1}, // inside the surrogate pair
		{position{0, 3}, 5},
		{position{0, 99}, 6},
		{position{1, 1}, 8},
		{position{4, 0}, len(text)},
		{position{-1, 0}, 0},
	}
	for _, tt := range tests {
		if got := offsetForPosition(text, tt.pos); got != tt.want {
			t.Errorf("offsetForPosition(%+v) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestPositions(t *testing.T) {
	if got := positionAt("a😀b\nfof(π)", 1, 6); got != (position{1, 5}) {
		t.Errorf("positionAt = %+v", got)
	}
	if got := positionAt("ab", 0, 10); got != (position{0, 2}) {
		t.Errorf("positionAt clamps: %+v", got)
	}
	if got := endPosition("ab\ncd😀"); got != (position{1, 4}) {
		t.Errorf("endPosition = %+v", got)
	}
	if got := endPosition("ab\n"); got != (position{1, 0}) {
		t.Errorf("endPosition trailing newline = %+v", got)
	}
	if got := lineText("a\r\nb\r\n", 0); got != "a" {
		t.Errorf("lineText = %q", got)
	}
}
