package format

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		inner  string
		want   Components
		wantOK bool
	}{
		{
			name:   "three parts",
			inner:  " ax1 , axiom , p & q ",
			want:   Components{Name: "ax1", Role: "axiom", Formula: "p & q"},
			wantOK: true,
		},
		{
			name:   "nested commas stay in formula",
			inner:  "ax2,axiom,! [X,Y] : p(X,Y)",
			want:   Components{Name: "ax2", Role: "axiom", Formula: "! [X,Y] : p(X,Y)"},
			wantOK: true,
		},
		{
			name:   "source rejoined",
			inner:  "c1,plain,p(a), inference(res,[status(thm)],[c0,c2]),[useful]",
			want:   Components{Name: "c1", Role: "plain", Formula: "p(a)", Source: "inference(res,[status(thm)],[c0,c2]),[useful]"},
			wantOK: true,
		},
		{
			name:   "quoted name",
			inner:  "'ax,1',axiom,p",
			want:   Components{Name: "'ax,1'", Role: "axiom", Formula: "p"},
			wantOK: true,
		},
		{name: "two parts", inner: "ax1,axiom", wantOK: false},
		{name: "one part", inner: "p & q", wantOK: false},
		{name: "commas hidden by nesting", inner: "f(a,b,c)", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.inner)
			if ok != tt.wantOK {
				t.Fatalf("Extract(%q) ok = %v, want %v", tt.inner, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Fatalf("Extract(%q)\nwant %+v\ngot  %+v", tt.inner, tt.want, got)
			}
		})
	}
}

func TestKeyword(t *testing.T) {
	tests := []struct {
		stmt string
		want string
	}{
		{"fof(a,axiom,p).", "fof"},
		{"  tff (a,type,p: $o).", "tff"},
		{"include('x.ax').", "include"},
		{"no parens at all", ""},
	}
	for _, tt := range tests {
		if got := Keyword(tt.stmt); got != tt.want {
			t.Fatalf("Keyword(%q) = %q, want %q", tt.stmt, got, tt.want)
		}
	}
	for _, k := range Kinds {
		if !IsKind(k) {
			t.Fatalf("IsKind(%q) = false", k)
		}
	}
	if IsKind("include") || IsKind("FOF") {
		t.Fatalf("IsKind accepted a non-formula keyword")
	}
}
