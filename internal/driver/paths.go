package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tptpfmt/internal/cache"
	"tptpfmt/internal/config"
	"tptpfmt/internal/diag"
	"tptpfmt/internal/format"
	"tptpfmt/internal/trace"
	"tptpfmt/internal/version"
)

// FormatOptions configures FormatPaths.
type FormatOptions struct {
	Config config.Config
	// Check leaves files untouched; Changed reports whether they would change.
	Check bool
	// Stdout returns formatted content in the results without writing files.
	Stdout bool
	// Jobs overrides Config.Format.Jobs when positive.
	Jobs     int
	Cache    *cache.DiskCache // optional
	Progress ProgressSink     // optional
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
	Report    format.Report
	External  bool
	Cached    bool
}

// FormatPaths formats the given files and directories. Results follow the
// sorted file order regardless of which worker finished first. The returned
// error covers collection and cancellation; per-file failures land in
// FormatResult.Err.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer trace.Begin(ctx, trace.ScopeDriver, "format_paths")()

	files, err := collectSourceFiles(ctx, paths, opts.Config)
	if err != nil {
		return nil, err
	}

	emitQueued(opts.Progress, StageFormat, files)

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(opts.Jobs, opts.Config, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			emit(opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusWorking})
			results[i] = formatFile(gctx, path, opts)
			emit(opts.Progress, finished(path, StageFormat, results[i].Changed, results[i].Err, start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatFile(ctx context.Context, path string, opts FormatOptions) FormatResult {
	defer trace.Begin(ctx, trace.ScopeFile, path)()

	result := FormatResult{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}

	text, rep, ext, cached := formatCached(ctx, data, opts)
	formatted := []byte(WithFinalNewline(text))
	result.Report = rep
	result.External = ext
	result.Cached = cached
	result.Changed = !bytes.Equal(data, formatted)

	switch {
	case opts.Check:
	case opts.Stdout:
		result.Formatted = formatted
	case result.Changed:
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
			result.Err = err
		}
	}
	return result
}

func formatCached(ctx context.Context, data []byte, opts FormatOptions) (text string, rep format.Report, external, cached bool) {
	var key cache.Key
	if opts.Cache != nil {
		key = cache.KeyFor(version.Version, opts.Config.Fingerprint(), data)
		if p, ok := opts.Cache.Get(key); ok {
			return p.Formatted, p.Report(), p.External, true
		}
	}

	res := FormatText(ctx, string(data), opts.Config)
	// A fallback result is not stored so the next run tries the tool again.
	if opts.Cache != nil && (res.External || !opts.Config.ExternalEnabled()) {
		if err := opts.Cache.Put(key, cache.NewPayload(res.Formatted, res.Report, res.External)); err != nil {
			trace.Error(ctx, trace.ScopeFile, "cache_put", err, nil)
		}
	}
	return res.Formatted, res.Report, res.External, false
}

// WithFinalNewline makes s end in exactly one line break; empty stays empty.
func WithFinalNewline(s string) string {
	s = strings.TrimRight(s, "\r\n")
	if s == "" {
		return ""
	}
	return s + "\n"
}

func jobLimit(jobs int, cfg config.Config, n int) int {
	if jobs <= 0 {
		jobs = cfg.Format.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, n))
}

var errCheckFindings = errors.New("check: problems found")

// CheckOptions configures CheckPaths.
type CheckOptions struct {
	Config         config.Config
	Jobs           int
	MaxDiagnostics int
	Progress       ProgressSink // optional
}

// CheckResult captures the diagnostics of one file. Content is kept so that
// renderers can show source context.
type CheckResult struct {
	Path        string
	Content     string
	Diagnostics []diag.Diagnostic
	Err         error
}

// HasErrors reports whether any file failed to load or has error diagnostics.
func HasErrors(results []CheckResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
		for _, d := range r.Diagnostics {
			if d.Severity == diag.SevError {
				return true
			}
		}
	}
	return false
}

// CheckPaths checks the given files and directories in parallel.
func CheckPaths(ctx context.Context, paths []string, opts CheckOptions) ([]CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer trace.Begin(ctx, trace.ScopeDriver, "check_paths")()

	files, err := collectSourceFiles(ctx, paths, opts.Config)
	if err != nil {
		return nil, err
	}

	emitQueued(opts.Progress, StageCheck, files)

	results := make([]CheckResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(opts.Jobs, opts.Config, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			emit(opts.Progress, Event{File: path, Stage: StageCheck, Status: StatusWorking})
			results[i] = checkFile(gctx, path, opts)
			err := results[i].Err
			if err == nil && HasErrors(results[i:i+1]) {
				err = errCheckFindings
			}
			emit(opts.Progress, finished(path, StageCheck, false, err, start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func checkFile(ctx context.Context, path string, opts CheckOptions) CheckResult {
	defer trace.Begin(ctx, trace.ScopeFile, path)()

	data, err := os.ReadFile(path)
	if err != nil {
		return CheckResult{Path: path, Err: err}
	}
	content := string(data)
	return CheckResult{
		Path:        path,
		Content:     content,
		Diagnostics: CheckText(ctx, content, path, opts.Config, opts.MaxDiagnostics),
	}
}
