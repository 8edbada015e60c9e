package main

import (
	"github.com/spf13/cobra"

	"tptpfmt/internal/config"
	"tptpfmt/internal/trace"
)

// loadConfig reads the config file named by --config, or the nearest one
// above the working directory, and applies the global flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Root().PersistentFlags()

	path, err := flags.GetString("config")
	if err != nil {
		return config.Config{}, err
	}

	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, path, err = config.LoadOrDefault(".")
	}
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		trace.Point(cmd.Context(), trace.ScopeDriver, "config", path, nil)
	}

	if err := applyConfigFlags(cmd, &cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// applyConfigFlags overrides file values with flags the user actually set.
func applyConfigFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("external-tool") {
		v, err := flags.GetString("external-tool")
		if err != nil {
			return err
		}
		cfg.External.Path = v
	}
	if flags.Changed("prefer-external") {
		v, err := flags.GetBool("prefer-external")
		if err != nil {
			return err
		}
		cfg.External.Prefer = v
	}
	return nil
}
