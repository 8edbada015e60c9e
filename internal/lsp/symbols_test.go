package lsp

import (
	"strings"
	"testing"
)

func TestDocumentSymbols(t *testing.T) {
	src := strings.Join([]string{
		"% header",
		"fof(ax1,axiom,p).",
		"cnf(  neg ,negated_conjecture,~ p).",
		"tff(t_type,type,",
		"    t: $tType).",
		"fof(bad,axiom).",
	}, "\n")
	got := buildDocumentSymbols(src)
	if len(got) != 3 {
		t.Fatalf("expected 3 symbols, got %+v", got)
	}

	tests := []struct {
		name, detail string
		kind         int
		full, sel    lspRange
	}{
		{"ax1", "fof axiom", symbolKindConstant,
			lspRange{position{1, 0}, position{1, 17}}, lspRange{position{1, 4}, position{1, 7}}},
		{"neg", "cnf negated_conjecture", symbolKindEvent,
			lspRange{position{2, 0}, position{2, 35}}, lspRange{position{2, 6}, position{2, 9}}},
		{"t_type", "tff type", symbolKindTypeParameter,
			lspRange{position{3, 0}, position{4, 15}}, lspRange{position{3, 4}, position{3, 10}}},
	}
	for i, tt := range tests {
		s := got[i]
		if s.Name != tt.name || s.Detail != tt.detail || s.Kind != tt.kind {
			t.Errorf("symbol %d = %q %q %d, want %q %q %d", i, s.Name, s.Detail, s.Kind, tt.name, tt.detail, tt.kind)
		}
		if s.Range != tt.full {
			t.Errorf("%s range = %+v, want %+v", tt.name, s.Range, tt.full)
		}
		if s.SelectionRange != tt.sel {
			t.Errorf("%s selection = %+v, want %+v", tt.name, s.SelectionRange, tt.sel)
		}
	}
}

func TestRoleSymbolKind(t *testing.T) {
	tests := map[string]int{
		"axiom":              symbolKindConstant,
		"theorem":            symbolKindConstant,
		"conjecture":         symbolKindEvent,
		"negated_conjecture": symbolKindEvent,
		"type":               symbolKindTypeParameter,
		"axiom-general":      symbolKindConstant,
		"plain":              symbolKindProperty,
		"unknown":            symbolKindProperty,
	}
	for role, want := range tests {
		if got := roleSymbolKind(role); got != want {
			t.Errorf("roleSymbolKind(%q) = %d, want %d", role, got, want)
		}
	}
}
