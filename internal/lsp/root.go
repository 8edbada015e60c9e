package lsp

import (
	"os"
	"path/filepath"

	"tptpfmt/internal/config"
)

// workspaceRoot picks the client's root directory from initialize params.
func workspaceRoot(params initializeParams) string {
	root := ""
	switch {
	case params.RootURI != "":
		root = uriToPath(params.RootURI)
	case params.RootPath != "":
		root = params.RootPath
	case len(params.WorkspaceFolders) > 0:
		root = uriToPath(params.WorkspaceFolders[0].URI)
	}
	if root == "" {
		return ""
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return root
}

// configForRoot loads the nearest config file above root. A missing root or
// an unreadable config keeps fallback.
func configForRoot(root string, fallback config.Config) (config.Config, string, error) {
	if root == "" {
		return fallback, "", nil
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fallback, "", nil
	}
	cfg, path, err := config.LoadOrDefault(root)
	if err != nil {
		return fallback, path, err
	}
	if path == "" {
		return fallback, "", nil
	}
	return cfg, path, nil
}
