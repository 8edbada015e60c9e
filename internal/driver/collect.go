package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"tptpfmt/internal/config"
)

// ErrNoFiles is returned when the given paths contain no TPTP files.
var ErrNoFiles = errors.New("driver: no TPTP files found")

// collectSourceFiles expands directories recursively, keeping files with a
// configured extension. Files named explicitly are always kept.
func collectSourceFiles(ctx context.Context, paths []string, cfg config.Config) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if cfg.HasExtension(path) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return files, nil
}

// CollectFiles returns the sorted list of files FormatPaths or CheckPaths
// would process for paths. Progress renderers use it to size their view.
func CollectFiles(ctx context.Context, paths []string, cfg config.Config) ([]string, error) {
	return collectSourceFiles(ctx, paths, cfg)
}
