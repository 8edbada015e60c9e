package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tptpfmt/internal/config"
)

// run executes the root command with fresh flag values.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const unformatted = "fof(ax1,axiom,p & q)."
const formatted = "    fof(ax1,axiom,\n        p\n        & q ).\n"

func TestFmtStdout(t *testing.T) {
	path := writeTemp(t, "a.p", unformatted)
	out, err := run(t, "", "fmt", "--stdout", path)
	if err != nil {
		t.Fatalf("fmt --stdout: %v", err)
	}
	if out != formatted {
		t.Errorf("stdout = %q, want %q", out, formatted)
	}
}

func TestFmtStdin(t *testing.T) {
	out, err := run(t, unformatted, "fmt", "-")
	if err != nil {
		t.Fatalf("fmt -: %v", err)
	}
	if out != formatted {
		t.Errorf("stdout = %q, want %q", out, formatted)
	}
}

func TestFmtStdinExternalNewline(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	tool := writeTemp(t, "tool.sh", "#!/bin/sh\nprintf 'fof(a,axiom,p).\\n\\n' > \"$4\"\n")
	if err := os.Chmod(tool, 0o755); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, unformatted, "fmt", "--external-tool", tool, "--prefer-external", "-")
	if err != nil {
		t.Fatalf("fmt -: %v", err)
	}
	if want := "fof(a,axiom,p).\n"; out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

func TestFmtCheckReportsChanges(t *testing.T) {
	path := writeTemp(t, "a.p", unformatted)
	out, err := run(t, "", "fmt", "--check", path)
	if err == nil || !strings.Contains(err.Error(), "formatting changes required") {
		t.Fatalf("err = %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("out = %q", out)
	}

	clean := writeTemp(t, "b.p", formatted)
	if _, err := run(t, "", "fmt", "--check", clean); err != nil {
		t.Errorf("formatted file reported: %v", err)
	}
}

func TestFmtRewritesAndReportsJSON(t *testing.T) {
	path := writeTemp(t, "a.p", unformatted)
	out, err := run(t, "", "fmt", "--format", "json", path)
	if err != nil {
		t.Fatal(err)
	}
	var payload []fmtJSONResult
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(payload) != 1 || !payload[0].Changed || payload[0].Report.Statements != 1 {
		t.Errorf("payload = %+v", payload)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != formatted {
		t.Errorf("file = %q", data)
	}
}

func TestFmtFlagConflicts(t *testing.T) {
	path := writeTemp(t, "a.p", unformatted)
	if _, err := run(t, "", "fmt", "--stdout", "--check", path); err == nil {
		t.Error("expected --stdout/--check conflict")
	}
	if _, err := run(t, "", "fmt", "--format", "yaml", path); err == nil {
		t.Error("expected unsupported format error")
	}
}

func TestCheckShort(t *testing.T) {
	path := writeTemp(t, "bad.p", "fof(a,axiom,(p).\n")
	out, err := run(t, "", "check", "--format", "short", path)
	if err == nil {
		t.Fatal("expected failure for a file with errors")
	}
	if !strings.Contains(out, "error TPTP2003") {
		t.Errorf("out = %q", out)
	}
}

func TestCheckPrettyWarningsOnly(t *testing.T) {
	path := writeTemp(t, "w.p", "fof(a,axoim,p).\n")
	out, err := run(t, "", "--color", "off", "check", path)
	if err != nil {
		t.Fatalf("warnings alone should pass: %v", err)
	}
	if !strings.Contains(out, "WARNING TPTP3001") || !strings.Contains(out, "0 error(s), 1 warning(s)") {
		t.Errorf("out = %q", out)
	}
	if _, err := run(t, "", "--color", "off", "check", "--warnings-as-errors", path); err == nil {
		t.Error("--warnings-as-errors should fail")
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := run(t, "", "version", "--format", "json", "--full")
	if err != nil {
		t.Fatal(err)
	}
	var p versionPayload
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if p.Tool != "tptpfmt" || p.Version == "" || p.GitCommit == "" {
		t.Errorf("payload = %+v", p)
	}
}

func TestApplyConfigFlags(t *testing.T) {
	resetFlags(rootCmd)
	if err := rootCmd.PersistentFlags().Set("external-tool", "/opt/tptp4X"); err != nil {
		t.Fatal(err)
	}
	if err := rootCmd.PersistentFlags().Set("prefer-external", "true"); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	if err := applyConfigFlags(fmtCmd, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.External.Path != "/opt/tptp4X" || !cfg.ExternalEnabled() {
		t.Errorf("overrides not applied: %+v", cfg.External)
	}

	resetFlags(rootCmd)
	kept := config.Default()
	kept.External.Path = "/from/file"
	if err := applyConfigFlags(fmtCmd, &kept); err != nil {
		t.Fatal(err)
	}
	if kept.External.Path != "/from/file" {
		t.Errorf("unset flag overrode file value: %q", kept.External.Path)
	}
}

func TestLoadConfigExplicitPath(t *testing.T) {
	path := writeTemp(t, "tptpfmt.toml", "[format]\njobs = 3\n")
	resetFlags(rootCmd)
	if err := rootCmd.PersistentFlags().Set("config", path); err != nil {
		t.Fatal(err)
	}
	fmtCmd.SetContext(t.Context())
	t.Cleanup(func() { fmtCmd.SetContext(context.Background()) })
	cfg, err := loadConfig(fmtCmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Format.Jobs != 3 {
		t.Errorf("jobs = %d", cfg.Format.Jobs)
	}
}

func lspFrame(body string) string {
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body)
}

func TestLSPSession(t *testing.T) {
	stdin := lspFrame(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`) +
		lspFrame(`{"jsonrpc":"2.0","id":2,"method":"shutdown"}`) +
		lspFrame(`{"jsonrpc":"2.0","method":"exit"}`)
	out, err := run(t, stdin, "lsp")
	if err != nil {
		t.Fatalf("lsp: %v", err)
	}
	if !strings.Contains(out, `"documentFormattingProvider":true`) || !strings.Contains(out, `"id":2`) {
		t.Errorf("out = %q", out)
	}

	if _, err := run(t, lspFrame(`{"jsonrpc":"2.0","method":"exit"}`), "lsp"); err == nil {
		t.Error("exit without shutdown should fail")
	}
}

func TestTimingsFlag(t *testing.T) {
	path := writeTemp(t, "a.p", unformatted)
	out, err := run(t, "", "--timings", "fmt", "--stdout", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{formatted, "timings:", "config", "format", "// files=1", "render", "total"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestProfileFlags(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	resetFlags(rootCmd)
	if err := rootCmd.PersistentFlags().Set("cpu-profile", cpu); err != nil {
		t.Fatal(err)
	}
	stop, err := setupProfiling(fmtCmd)
	if err != nil {
		t.Fatal(err)
	}
	stop()
	if info, err := os.Stat(cpu); err != nil || info.Size() == 0 {
		t.Errorf("cpu profile not written: %v", err)
	}
	resetFlags(rootCmd)
}
