package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tptpfmt/internal/diag"
	"tptpfmt/internal/diagfmt"
	"tptpfmt/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path> [path...]",
	Short: "Check TPTP files for structural problems",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().Bool("fullpath", false, "print absolute paths")
	checkCmd.Flags().Int("jobs", 0, "max parallel files (0 = config or GOMAXPROCS)")
	checkCmd.Flags().Bool("warnings-as-errors", false, "exit non-zero on warnings too")
	checkCmd.Flags().Bool("ui", false, "show a progress view before the report (terminal only)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	strict, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return err
	}
	showUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	switch outputFormat {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("check: unsupported output format %q", outputFormat)
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

	opts := driver.CheckOptions{
		Config:         cfg,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
	}
	endCheck := tm.Begin("check")
	var results []driver.CheckResult
	if outputFormat == "pretty" && wantUI(showUI) {
		results, err = runCheckWithUI(cmd.Context(), args, opts)
	} else {
		results, err = driver.CheckPaths(cmd.Context(), args, opts)
	}
	endCheck(fmt.Sprintf("files=%d", len(results)))
	if err != nil {
		return err
	}

	endRender := tm.Begin("render")
	defer endRender("")

	var all []diag.Diagnostic
	src := diagfmt.NewSources()
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "check: %s: %v\n", res.Path, res.Err)
			continue
		}
		src.Add(res.Path, res.Content)
		all = append(all, res.Diagnostics...)
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	baseDir, _ := filepath.Abs(".")

	out := cmd.OutOrStdout()
	switch outputFormat {
	case "pretty":
		color, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		err = diagfmt.Pretty(out, all, src, diagfmt.PrettyOpts{
			Color:    color,
			Context:  true,
			PathMode: pathMode,
			BaseDir:  baseDir,
		})
		if err != nil {
			return err
		}
		printSummary(cmd, out, all)
	case "short":
		if err := diagfmt.Short(out, all); err != nil {
			return err
		}
	case "json":
		if err := diagfmt.JSON(out, all, diagfmt.JSONOpts{PathMode: pathMode, BaseDir: baseDir}); err != nil {
			return err
		}
	}

	if driver.HasErrors(results) || (strict && len(all) > 0) {
		return fmt.Errorf("check: problems found")
	}
	return nil
}

func printSummary(cmd *cobra.Command, out io.Writer, diags []diag.Diagnostic) {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil || quiet || len(diags) == 0 {
		return
	}
	var errs, warns int
	for _, d := range diags {
		if d.Severity == diag.SevError {
			errs++
		} else {
			warns++
		}
	}
	fmt.Fprintf(out, "%d error(s), %d warning(s)\n", errs, warns)
}
