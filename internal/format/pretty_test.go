package format

import "testing"

func TestFormatFormula(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "conjunction breaks at same level",
			in:   "p & q",
			want: "        p\n        & q",
		},
		{
			name: "negated quantifier stays on one line",
			in:   "~ ! [X] : p(X)",
			want: "        ~ ! [X] :\n            p( X )",
		},
		{
			name: "implication indents once",
			in:   "! [X] : (p(X) => q(X))",
			want: "        ! [X] :\n            ( p( X )\n                => q( X ) )",
		},
		{
			name: "closing pair pops one level",
			in:   "! [X] : (p => (q & r))",
			want: "        ! [X] :\n            ( p\n                => ( q\n                & r ) )",
		},
		{
			name: "indent never drops below base",
			in:   "f(g(a)) & b",
			want: "        f( g( a ) )\n        & b",
		},
		{
			name: "implication followed by quantifier",
			in:   "p => ? [Y] : q(Y)",
			want: "        p\n            => ? [Y] :\n                q( Y )",
		},
		{
			name: "quantifier without colon continues the line",
			in:   "! [X] p(X)",
			want: "        ! [X]p( X )",
		},
		{
			name: "outer parentheses stripped",
			in:   "( p | q )",
			want: "        p\n        | q",
		},
		{
			name: "separate groups keep their parentheses",
			in:   "(p) & (q)",
			want: "        ( p )\n        & ( q )",
		},
		{
			name: "disjunction with negated literal",
			in:   "p(X) | ~ q(X,Y)",
			want: "        p( X )\n        | ~ q( X,Y )",
		},
		{
			name: "equivalence is a connective",
			in:   "p<=>q",
			want: "        p\n        <=> q",
		},
		{
			name: "negated disjunction is a connective",
			in:   "p ~| q",
			want: "        p\n        ~| q",
		},
		{
			name: "equality copied tight",
			in:   "! [X,Y] : X = Y",
			want: "        ! [X,Y] :\n            X=Y",
		},
		{
			name: "inequality copied tight",
			in:   "a != b",
			want: "        a!=b",
		},
		{
			name: "quoted atom keeps stop characters",
			in:   "p('a,b)c', \"x & y\")",
			want: "        p( 'a,b)c',\"x & y\" )",
		},
		{
			name: "escaped quote inside atom",
			in:   "p('it\\'s')",
			want: "        p( 'it\\'s' )",
		},
		{
			name: "higher-order application and lambda",
			in:   "^ [X: $i] : (f @ X)",
			want: "        ^ [X: $i] :\n            ( f @ X )",
		},
		{
			name: "type declaration",
			in:   "p: $i > $o",
			want: "        p: $i > $o",
		},
		{
			name: "type quantifier",
			in:   "!> [A: $tType] : (A > $o)",
			want: "        !> [A: $tType] :\n            ( A > $o )",
		},
		{
			name: "system and numeric atoms",
			in:   "$less(1,$sum(X,2.5))",
			want: "        $less( 1,$sum( X,2.5 ) )",
		},
		{
			name: "unterminated variable list",
			in:   "! [X, Y",
			want: "        ! [X, Y",
		},
		{
			name: "empty formula",
			in:   "   ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatFormula(tt.in)
			if got != tt.want {
				t.Fatalf("FormatFormula(%q)\nwant %q\ngot  %q", tt.in, tt.want, got)
			}
		})
	}
}

func TestStripOuterParens(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(p & q)", "p & q"},
		{"((p))", "(p)"},
		{"(p) & (q)", "(p) & (q)"},
		{"(p & ')')", "p & ')'"},
		{"(p", "(p"},
		{"p)", "p)"},
		{"()", ""},
	}
	for _, tt := range tests {
		if got := stripOuterParens(tt.in); got != tt.want {
			t.Fatalf("stripOuterParens(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Re-formatting already formatted formulas is stable.
func TestFormatFormulaIdempotent(t *testing.T) {
	inputs := []string{
		"p & q",
		"~ ! [X] : p(X)",
		"! [X] : (p(X) => q(X))",
		"! [X,Y] : (p(X,Y) <=> (q(X) | ~ r(Y)))",
		"p: $i > $o",
		"^ [X: $i] : (f @ X)",
	}
	for _, in := range inputs {
		once := FormatFormula(in)
		twice := FormatFormula(once)
		if once != twice {
			t.Fatalf("not idempotent for %q:\nonce  %q\ntwice %q", in, once, twice)
		}
	}
}
