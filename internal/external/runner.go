// Package external invokes an optional TPTP-aware binary to format or check
// a document. Each call is a single bounded attempt: the caller falls back to
// the built-in pipeline on any error and never retries.
package external

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"tptpfmt/internal/config"
	"tptpfmt/internal/trace"
)

var (
	// ErrToolNotConfigured is returned when no tool path is set.
	ErrToolNotConfigured = errors.New("external: tool path not configured")
	// ErrEmptyOutput is returned when the tool exits 0 but writes nothing.
	ErrEmptyOutput = errors.New("external: tool produced no output")
)

// ToolError describes an unsuccessful tool run.
type ToolError struct {
	Mode     Mode
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("external %s: exit code %d", e.Mode, e.ExitCode)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + firstLine(s)
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Mode selects the tool invocation flavor.
type Mode uint8

const (
	ModeCheck Mode = iota + 1
	ModeFormat
)

func (m Mode) String() string {
	switch m {
	case ModeCheck:
		return "check"
	case ModeFormat:
		return "format-to-file"
	default:
		return "unknown"
	}
}

// Runner runs the configured binary. The zero value is unusable; build one
// with New.
type Runner struct {
	Path       string
	Timeout    time.Duration
	FormatArgs []string
	CheckArgs  []string
}

// New builds a Runner from the external section of cfg.
func New(cfg config.Config) *Runner {
	return &Runner{
		Path:       cfg.External.Path,
		Timeout:    cfg.External.Timeout.Duration,
		FormatArgs: cfg.External.FormatArgs,
		CheckArgs:  cfg.External.CheckArgs,
	}
}

// CheckResult is the raw outcome of a check-mode run.
type CheckResult struct {
	ExitCode int
	Output   string
}

// OK reports whether the tool accepted the input.
func (r CheckResult) OK() bool {
	return r.ExitCode == 0
}

// Format writes input to a temporary file, runs the tool in format mode and
// returns the contents of the output file. Success requires exit code 0 and
// a non-empty output file.
func (r *Runner) Format(ctx context.Context, input string) (string, error) {
	dir, cleanup, err := r.workdir()
	if err != nil {
		return "", err
	}
	defer cleanup()

	inPath := filepath.Join(dir, "input.p")
	outPath := filepath.Join(dir, "output.p")
	if err := os.WriteFile(inPath, []byte(input), 0o600); err != nil {
		return "", fmt.Errorf("external: write input: %w", err)
	}

	if _, err := r.run(ctx, ModeFormat, expandArgs(r.FormatArgs, inPath, outPath)); err != nil {
		return "", err
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrEmptyOutput
		}
		return "", fmt.Errorf("external: read output: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return "", ErrEmptyOutput
	}
	return string(data), nil
}

// Check runs the tool in check mode. A non-zero exit code is not an error:
// it is reported in CheckResult. Errors are reserved for spawn failures and
// timeouts.
func (r *Runner) Check(ctx context.Context, input string) (CheckResult, error) {
	dir, cleanup, err := r.workdir()
	if err != nil {
		return CheckResult{}, err
	}
	defer cleanup()

	inPath := filepath.Join(dir, "input.p")
	if err := os.WriteFile(inPath, []byte(input), 0o600); err != nil {
		return CheckResult{}, fmt.Errorf("external: write input: %w", err)
	}

	out, err := r.run(ctx, ModeCheck, expandArgs(r.CheckArgs, inPath, ""))
	var toolErr *ToolError
	if errors.As(err, &toolErr) && toolErr.ExitCode > 0 {
		return CheckResult{ExitCode: toolErr.ExitCode, Output: out + toolErr.Stderr}, nil
	}
	if err != nil {
		return CheckResult{}, err
	}
	return CheckResult{Output: out}, nil
}

func (r *Runner) workdir() (string, func(), error) {
	if r == nil || strings.TrimSpace(r.Path) == "" {
		return "", nil, ErrToolNotConfigured
	}
	dir, err := os.MkdirTemp("", "tptpfmt-*")
	if err != nil {
		return "", nil, fmt.Errorf("external: temp dir: %w", err)
	}
	return dir, func() { _ = os.RemoveAll(dir) }, nil
}

// run executes the tool and returns its stdout.
func (r *Runner) run(ctx context.Context, mode Mode, args []string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	end := trace.Begin(ctx, trace.ScopeDriver, "external."+mode.String())
	defer end()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// grandchildren may keep the pipes open after the kill
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	toolErr := &ToolError{Mode: mode, ExitCode: -1, Stderr: stderr.String(), Err: err}
	if ctxErr := ctx.Err(); ctxErr != nil {
		toolErr.Err = ctxErr
	} else {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			toolErr.ExitCode = exitErr.ExitCode()
			toolErr.Err = nil
		}
	}
	return stdout.String(), toolErr
}

func expandArgs(tmpl []string, input, output string) []string {
	args := make([]string, 0, len(tmpl))
	for _, a := range tmpl {
		a = strings.ReplaceAll(a, config.InputPlaceholder, input)
		a = strings.ReplaceAll(a, config.OutputPlaceholder, output)
		args = append(args, a)
	}
	return args
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
