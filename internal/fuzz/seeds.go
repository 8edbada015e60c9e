package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10
	maxFuzzInput = 16 << 10
)

// edgeSeeds are inputs that stress bracket, quote and comment handling.
var edgeSeeds = []string{
	"fof(ax1,axiom,p & q).",
	"fof(ax2,axiom, ~ ! [X] : p(X)).",
	"cnf(c,negated_conjecture,~ p(a) | q(X)).",
	"tff(t,type,f: ($i * $i) > $o).",
	"thf(d,definition,f = (^ [X: $i] : X)).",
	"fof(q,axiom,p('a,b', \"c)\")).",
	"fof(esc,axiom,p('it\\'s')).",
	"fof(open,axiom,((p).",
	"fof(close,axiom,p))).",
	"fof(imp,conjecture,(p => (q => (r <=> s)))).",
	"fof(src,axiom,p,file('x.ax',ax1)).",
	"include('Axioms/SET001-0.ax').",
	"% comment only",
	"/* block\n comment */\nfof(a,axiom,p).",
	"/* unterminated",
	"fof(a,axiom,\n  p\n  & q",
	"fof(,,).",
	"fof(a,b,c,d,e,f).",
	"(((((((((((",
	")))))))))))",
	"'''''",
	"fof(a,axiom,p). fof(b,axiom,q).",
	"%\xd0\r\x8f",
	"",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range edgeSeeds {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".p", ".ax", ".tptp":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) string {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return string(input)
}

// truncateForLog shortens input for failure messages.
func truncateForLog(input string, maxLen int) string {
	if len(input) <= maxLen {
		return input
	}
	return input[:maxLen] + "..."
}
