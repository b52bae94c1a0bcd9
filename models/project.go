package models

import (
	"path/filepath"
	"strings"
)

// Project is the pair of directories every operation works on.
type Project struct {
	SourceDir string
	BuildDir  string
}

// NewProject creates a project rooted at sourceDir with the build directory
// named buildDirName inside it.
func NewProject(sourceDir, buildDirName string) *Project {
	if buildDirName == "" {
		buildDirName = DefaultBuildDir
	}
	buildDir := buildDirName
	if !filepath.IsAbs(buildDir) {
		buildDir = filepath.Join(sourceDir, buildDirName)
	}
	return &Project{
		SourceDir: sourceDir,
		BuildDir:  buildDir,
	}
}

// SetSourceDir replaces the source directory with a cleaned path.
func (p *Project) SetSourceDir(dir string) {
	p.SourceDir = CleanPath(dir)
}

// SetBuildDir replaces the build directory with a cleaned path.
func (p *Project) SetBuildDir(dir string) {
	p.BuildDir = CleanPath(dir)
}

// CleanPath trims whitespace and surrounding quotes and normalizes separators.
// An empty input stays empty.
func CleanPath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.Trim(path, `"'`)
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}
