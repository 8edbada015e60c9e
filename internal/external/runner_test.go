package external

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"tptpfmt/internal/config"
)

// fakeTool writes an executable shell script and returns its path.
func fakeTool(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "tool.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func newRunner(path string) *Runner {
	cfg := config.Default()
	cfg.External.Path = path
	return New(cfg)
}

func TestFormatSuccess(t *testing.T) {
	// default args: -f {input} -o {output}
	tool := fakeTool(t, `tr 'a-z' 'A-Z' < "$2" > "$4"`)
	out, err := newRunner(tool).Format(context.Background(), "fof(a,axiom,p).")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if out != "FOF(A,AXIOM,P)." {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestFormatNonZeroExit(t *testing.T) {
	tool := fakeTool(t, `echo "bad input" >&2; exit 3`)
	_, err := newRunner(tool).Format(context.Background(), "x")
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected *ToolError, got %v", err)
	}
	if toolErr.ExitCode != 3 || toolErr.Mode != ModeFormat {
		t.Fatalf("unexpected tool error: %+v", toolErr)
	}
	if !strings.Contains(err.Error(), "bad input") {
		t.Fatalf("stderr missing from message: %q", err.Error())
	}
}

func TestFormatEmptyOutput(t *testing.T) {
	tool := fakeTool(t, `: > "$4"`)
	if _, err := newRunner(tool).Format(context.Background(), "x"); !errors.Is(err, ErrEmptyOutput) {
		t.Fatalf("expected ErrEmptyOutput, got %v", err)
	}

	noFile := fakeTool(t, `exit 0`)
	if _, err := newRunner(noFile).Format(context.Background(), "x"); !errors.Is(err, ErrEmptyOutput) {
		t.Fatalf("expected ErrEmptyOutput for missing file, got %v", err)
	}
}

func TestFormatTimeout(t *testing.T) {
	tool := fakeTool(t, `exec sleep 5`)
	r := newRunner(tool)
	r.Timeout = 100 * time.Millisecond

	start := time.Now()
	_, err := r.Format(context.Background(), "x")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > 3*time.Second {
		t.Fatalf("timeout not enforced")
	}
}

func TestFormatMissingBinary(t *testing.T) {
	r := newRunner(filepath.Join(t.TempDir(), "does-not-exist"))
	_, err := r.Format(context.Background(), "x")
	var toolErr *ToolError
	if !errors.As(err, &toolErr) || toolErr.ExitCode != -1 {
		t.Fatalf("expected spawn failure, got %v", err)
	}
}

func TestNotConfigured(t *testing.T) {
	r := New(config.Default())
	if _, err := r.Format(context.Background(), "x"); !errors.Is(err, ErrToolNotConfigured) {
		t.Fatalf("expected ErrToolNotConfigured, got %v", err)
	}
	if _, err := r.Check(context.Background(), "x"); !errors.Is(err, ErrToolNotConfigured) {
		t.Fatalf("expected ErrToolNotConfigured, got %v", err)
	}
}

func TestCheck(t *testing.T) {
	ok := fakeTool(t, `test -s "$1"`)
	res, err := newRunner(ok).Check(context.Background(), "fof(a,axiom,p).")
	if err != nil || !res.OK() {
		t.Fatalf("expected clean check, got %+v, %v", res, err)
	}

	bad := fakeTool(t, `echo "line 3: syntax error"; exit 1`)
	res, err = newRunner(bad).Check(context.Background(), "fof(")
	if err != nil {
		t.Fatalf("non-zero exit must not be an error: %v", err)
	}
	if res.OK() || res.ExitCode != 1 || !strings.Contains(res.Output, "syntax error") {
		t.Fatalf("unexpected check result: %+v", res)
	}
}

func TestExpandArgs(t *testing.T) {
	got := expandArgs([]string{"-f", "{input}", "--out={output}", "-x"}, "/tmp/in.p", "/tmp/out.p")
	want := []string{"-f", "/tmp/in.p", "--out=/tmp/out.p", "-x"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("expandArgs = %v, want %v", got, want)
	}
}
