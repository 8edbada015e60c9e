package format

import (
	"strings"
	"testing"
)

func TestSplitSpans(t *testing.T) {
	src := "% header comment\n" +
		"\n" +
		"fof(ax1, axiom,\n" +
		"    p & q).\n" +
		"   % indented comment\n" +
		"cnf(c1,axiom,p | q).\n" +
		"fof(broken, axiom,\n" +
		"% interrupts\n" +
		"fof(tail,axiom,p\n"

	spans := SplitSpans(src)
	want := []Span{
		{Kind: SpanComment, Text: "% header comment", Line: 0, EndLine: 0, Terminated: true},
		{Kind: SpanStatement, Text: "fof(ax1, axiom, p & q).", Line: 2, EndLine: 3, Terminated: true},
		{Kind: SpanComment, Text: "% indented comment", Line: 4, EndLine: 4, Terminated: true},
		{Kind: SpanStatement, Text: "cnf(c1,axiom,p | q).", Line: 5, EndLine: 5, Terminated: true},
		{Kind: SpanStatement, Text: "fof(broken, axiom,", Line: 6, EndLine: 6, Terminated: false},
		{Kind: SpanComment, Text: "% interrupts", Line: 7, EndLine: 7, Terminated: true},
		{Kind: SpanStatement, Text: "fof(tail,axiom,p", Line: 8, EndLine: 8, Terminated: false},
	}

	if len(spans) != len(want) {
		t.Fatalf("expected %d spans, got %d: %+v", len(want), len(spans), spans)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Fatalf("span %d mismatch:\nwant %+v\ngot  %+v", i, want[i], spans[i])
		}
	}
}

func TestSplitSpansBlockComment(t *testing.T) {
	src := "/* first\n   second\n*/\nfof(a,axiom,p).\n/* one-liner */\r\nfof(b,axiom,q).\r\n/* never closed\nfof(c,axiom,r).\n"
	spans := SplitSpans(src)
	if len(spans) != 5 {
		t.Fatalf("expected 5 spans, got %d: %+v", len(spans), spans)
	}
	if spans[0].Kind != SpanComment || spans[0].Text != "/* first\n   second\n*/" || spans[0].EndLine != 2 {
		t.Fatalf("unexpected block comment: %+v", spans[0])
	}
	if spans[2].Text != "/* one-liner */" {
		t.Fatalf("unexpected one-line block: %q", spans[2].Text)
	}
	if spans[4].Kind != SpanComment || spans[4].Terminated {
		t.Fatalf("unterminated block must swallow the rest as a comment: %+v", spans[4])
	}
}

// Joining every span's lines reproduces the document's non-blank lines,
// trimmed, in order.
func TestSplitSpansCoverage(t *testing.T) {
	docs := []string{
		"fof(a,axiom,p).",
		"% only a comment",
		"  fof(a,\n  axiom,\n\n  p).  \n% c\n\ncnf(b,axiom,q\n",
		"thf(t,type,\n  f: $i > $o).\ninclude('Axioms/SET001-0.ax').\n",
		"garbage without terminator\nmore garbage",
		"",
	}
	for _, doc := range docs {
		var want []string
		for _, line := range strings.Split(doc, "\n") {
			if l := strings.TrimSpace(line); l != "" {
				want = append(want, l)
			}
		}
		var got []string
		for _, sp := range SplitSpans(doc) {
			got = append(got, sp.Text)
		}
		if strings.Join(got, " ") != strings.Join(want, " ") {
			t.Fatalf("coverage mismatch for %q:\nwant %q\ngot  %q", doc, want, got)
		}
	}
}
