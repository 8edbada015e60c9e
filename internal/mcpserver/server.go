// Package mcpserver exposes the formatter and the checker as MCP tools over
// the stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tptpfmt/internal/config"
	"tptpfmt/internal/diagfmt"
	"tptpfmt/internal/driver"
	"tptpfmt/internal/trace"
	"tptpfmt/internal/version"
)

const defaultFilename = "input.p"

// Server wraps the MCP server. The configuration is fixed at construction.
type Server struct {
	mcp            *mcp.Server
	cfg            config.Config
	maxDiagnostics int
}

// New creates a server with both tools registered.
func New(cfg config.Config, maxDiagnostics int) *Server {
	s := &Server{
		cfg:            cfg,
		maxDiagnostics: maxDiagnostics,
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    "tptpfmt",
			Version: version.Version,
		}, nil),
	}
	s.registerTools()
	return s
}

// Run serves on stdin/stdout until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	trace.Point(ctx, trace.ScopeDriver, "mcp_start", "stdio", nil)
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// formatArgs are the arguments for the format_tptp tool.
type formatArgs struct {
	Content string `json:"content" jsonschema:"TPTP document text to format"`
}

// checkArgs are the arguments for the check_tptp tool.
type checkArgs struct {
	Content  string `json:"content" jsonschema:"TPTP document text to check"`
	Filename string `json:"filename,omitempty" jsonschema:"File name recorded in diagnostics. Defaults to input.p"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "format_tptp",
		Description: "Pretty-print a TPTP document (fof, cnf, tff, thf, tpi statements). Statements that cannot be parsed are returned unchanged.",
	}, s.formatTPTP)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "check_tptp",
		Description: "Check a TPTP document for structural problems. Returns diagnostics as JSON with 0-based line and column positions.",
	}, s.checkTPTP)
}

func (s *Server) formatTPTP(ctx context.Context, _ *mcp.CallToolRequest, args formatArgs) (*mcp.CallToolResult, any, error) {
	defer trace.Begin(ctx, trace.ScopeDriver, "mcp_format")()

	res := driver.FormatText(ctx, args.Content, s.cfg)
	return textResult(res.Formatted), nil, nil
}

func (s *Server) checkTPTP(ctx context.Context, _ *mcp.CallToolRequest, args checkArgs) (*mcp.CallToolResult, any, error) {
	defer trace.Begin(ctx, trace.ScopeDriver, "mcp_check")()

	name := args.Filename
	if name == "" {
		name = defaultFilename
	}
	diags := driver.CheckText(ctx, args.Content, name, s.cfg, s.maxDiagnostics)
	out := diagfmt.BuildDiagnosticsOutput(diags, diagfmt.JSONOpts{PathMode: diagfmt.PathModeAsIs})
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("encode diagnostics: %v", err)), nil, nil
	}
	return textResult(string(data)), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}
