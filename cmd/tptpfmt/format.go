package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tptpfmt/internal/cache"
	"tptpfmt/internal/config"
	"tptpfmt/internal/driver"
	"tptpfmt/internal/format"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path|-> [path...]",
	Short: "Format TPTP files",
	Long: `Format .p, .ax and .tptp files in place. Directories are walked recursively.
A single "-" reads a document from stdin and writes the result to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted text to stdout instead of rewriting files")
	fmtCmd.Flags().Int("jobs", 0, "max parallel files (0 = config or GOMAXPROCS)")
	fmtCmd.Flags().Bool("cache", false, "reuse results from the on-disk format cache")
	fmtCmd.Flags().Bool("ui", false, "show a progress view (terminal only)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return err
	}
	showUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	tm, err := newTimer(cmd)
	if err != nil {
		return err
	}
	defer printTimings(cmd, tm)

	endConfig := tm.Begin("config")
	cfg, err := loadConfig(cmd)
	endConfig("")
	if err != nil {
		return err
	}

	if len(args) == 1 && args[0] == "-" {
		return formatStdin(cmd, cfg)
	}

	opts := driver.FormatOptions{
		Config: cfg,
		Check:  check,
		Stdout: writeToStdout,
		Jobs:   jobs,
	}
	if useCache || cfg.Cache.Enabled {
		c, err := cache.Open(cfg.Cache.Dir)
		if err != nil {
			if !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "fmt: cache disabled: %v\n", err)
			}
		} else {
			opts.Cache = c
		}
	}

	endFormat := tm.Begin("format")
	var results []driver.FormatResult
	if outputFormat == "text" && !writeToStdout && wantUI(showUI) {
		results, err = runFormatWithUI(cmd.Context(), args, opts)
		// прогресс уже показан, дальше печатаем только ошибки
		quiet = true
	} else {
		results, err = driver.FormatPaths(cmd.Context(), args, opts)
	}
	endFormat(fmt.Sprintf("files=%d", len(results)))
	if err != nil {
		return err
	}

	endRender := tm.Begin("render")
	defer endRender("")
	var hasErrors, hasChanges bool
	switch {
	case outputFormat == "json":
		if err := renderFmtJSON(cmd.OutOrStdout(), results, check); err != nil {
			return err
		}
		hasErrors, hasChanges = summarize(results)
	case writeToStdout:
		hasErrors = renderFmtStdout(cmd.OutOrStdout(), cmd.ErrOrStderr(), results)
	default:
		hasErrors, hasChanges = renderFmtText(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, check, quiet)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

func formatStdin(cmd *cobra.Command, cfg config.Config) error {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("fmt: read stdin: %w", err)
	}
	res := driver.FormatText(cmd.Context(), string(data), cfg)
	_, err = io.WriteString(cmd.OutOrStdout(), driver.WithFinalNewline(res.Formatted))
	return err
}

func summarize(results []driver.FormatResult) (hasErrors, hasChanges bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
		}
		if res.Changed {
			hasChanges = true
		}
	}
	return hasErrors, hasChanges
}

func renderFmtStdout(out, errOut io.Writer, results []driver.FormatResult) (hasErrors bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = out.Write(res.Formatted)
	}
	return hasErrors
}

func renderFmtText(out, errOut io.Writer, results []driver.FormatResult, check, quiet bool) (hasErrors, hasChanges bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		if !res.Changed {
			continue
		}
		hasChanges = true
		if quiet {
			continue
		}
		if check {
			fmt.Fprintln(out, res.Path)
			continue
		}
		fmt.Fprintf(out, "reformatted %s\n", res.Path)
	}
	return hasErrors, hasChanges
}

type fmtJSONResult struct {
	Path     string        `json:"path"`
	Changed  bool          `json:"changed"`
	Error    string        `json:"error,omitempty"`
	CheckRun bool          `json:"check"`
	External bool          `json:"external,omitempty"`
	Cached   bool          `json:"cached,omitempty"`
	Report   format.Report `json:"report"`
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	payload := make([]fmtJSONResult, 0, len(results))
	for _, res := range results {
		jr := fmtJSONResult{
			Path:     res.Path,
			Changed:  res.Changed,
			CheckRun: check,
			External: res.External,
			Cached:   res.Cached,
			Report:   res.Report,
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
