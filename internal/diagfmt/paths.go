package diagfmt

import (
	"path/filepath"
	"strings"
)

func displayPath(path string, mode PathMode, baseDir string) string {
	if path == "" || mode == PathModeAsIs {
		return path
	}
	switch mode {
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	case PathModeRelative, PathModeAuto:
		if baseDir == "" {
			return path
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return path
		}
		rel, err := filepath.Rel(baseDir, abs)
		if err != nil {
			return path
		}
		if mode == PathModeAuto && strings.HasPrefix(rel, "..") {
			return abs
		}
		return rel
	}
	return path
}
