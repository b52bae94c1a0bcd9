// Package scan locates meson source trees and configured build
// directories on disk.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDepth is how far below a source directory BuildDirs looks.
const DefaultDepth = 2

// IsSourceDir reports whether dir holds a top-level meson.build.
func IsSourceDir(dir string) bool {
	return isFile(filepath.Join(dir, "meson.build"))
}

// IsBuildDir reports whether dir was configured by meson setup.
func IsBuildDir(dir string) bool {
	return isFile(filepath.Join(dir, "meson-private", "coredata.dat")) ||
		isFile(filepath.Join(dir, "build.ninja"))
}

// BuildDirs lists the configured build directories at most depth levels
// below sourceDir, sorted. Hidden directories are skipped.
func BuildDirs(sourceDir string, depth int) ([]string, error) {
	var dirs []string
	root := filepath.Clean(sourceDir)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		if IsBuildDir(path) {
			dirs = append(dirs, path)
			return filepath.SkipDir
		}
		rel, _ := filepath.Rel(root, path)
		if strings.Count(rel, string(filepath.Separator))+1 >= depth {
			return filepath.SkipDir
		}
		return nil
	})

	sort.Strings(dirs)
	return dirs, err
}

// PreferredBuildDir returns name inside sourceDir when it is a configured
// build directory, otherwise the first one BuildDirs finds, otherwise
// name inside sourceDir.
func PreferredBuildDir(sourceDir, name string) string {
	preferred := name
	if !filepath.IsAbs(preferred) {
		preferred = filepath.Join(sourceDir, name)
	}
	if IsBuildDir(preferred) {
		return preferred
	}
	if dirs, err := BuildDirs(sourceDir, DefaultDepth); err == nil && len(dirs) > 0 {
		return dirs[0]
	}
	return preferred
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
