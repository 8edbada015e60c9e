package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tptpfmt/internal/lsp"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the TPTP language server over stdio",
	Args:  cobra.NoArgs,
	RunE:  runLSP,
}

func init() {
	lspCmd.Flags().Duration("debounce", 0, "delay between an edit and its diagnostics (default 250ms)")
}

func runLSP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}

	// An explicit --config or tool flag pins the config; otherwise the
	// workspace root decides.
	flags := cmd.Root().PersistentFlags()
	discover := !flags.Changed("config") && !flags.Changed("external-tool") && !flags.Changed("prefer-external")

	server := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), lsp.ServerOptions{
		Config:         cfg,
		DiscoverConfig: discover,
		Debounce:       debounce,
		MaxDiagnostics: maxDiagnostics,
		Log:            cmd.ErrOrStderr(),
	})
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
