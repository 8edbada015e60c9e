package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tptpfmt/internal/config"
	"tptpfmt/internal/diagfmt"
	"tptpfmt/internal/format"
)

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want *mcp.TextContent", res.Content[0])
	}
	return tc.Text
}

func TestFormatTool(t *testing.T) {
	s := New(config.Default(), 0)
	in := "fof(ax1,axiom,p & q)."
	res, _, err := s.formatTPTP(context.Background(), nil, formatArgs{Content: in})
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatal("unexpected error result")
	}
	if got := resultText(t, res); got != format.Format(in) {
		t.Errorf("format_tptp = %q, want %q", got, format.Format(in))
	}
}

func TestCheckTool(t *testing.T) {
	s := New(config.Default(), 0)
	res, _, err := s.checkTPTP(context.Background(), nil, checkArgs{Content: "fof(a,axiom,(p).\nfof(a,lemma,q)."})
	if err != nil {
		t.Fatal(err)
	}

	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Count != 2 || out.Errors != 1 || out.Warnings != 1 {
		t.Fatalf("counts = %+v", out)
	}
	if got := out.Diagnostics[0].Location.File; got != defaultFilename {
		t.Errorf("file = %q, want %q", got, defaultFilename)
	}
}

func TestCheckToolFilenameAndLimit(t *testing.T) {
	s := New(config.Default(), 1)
	res, _, err := s.checkTPTP(context.Background(), nil, checkArgs{
		Content:  "foo(x).\nbar(y).",
		Filename: "Problems/x.p",
	})
	if err != nil {
		t.Fatal(err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || out.Diagnostics[0].Location.File != "Problems/x.p" {
		t.Errorf("out = %+v", out)
	}
}

func TestToolsOverInMemoryTransport(t *testing.T) {
	ctx := context.Background()
	s := New(config.Default(), 0)

	serverT, clientT := mcp.NewInMemoryTransports()
	ss, err := s.mcp.Connect(ctx, serverT, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer cs.Close()

	tools, err := cs.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	if !names["format_tptp"] || !names["check_tptp"] {
		t.Fatalf("tools = %v", names)
	}

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "format_tptp",
		Arguments: map[string]any{"content": "fof(ax1,axiom,p & q)."},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := resultText(t, res), "    fof(ax1,axiom,\n        p\n        & q )."; got != want {
		t.Errorf("format_tptp = %q, want %q", got, want)
	}
}
