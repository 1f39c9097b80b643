package walker

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude matches YAML dataset files at any depth.
var DefaultInclude = []string{"**/*.yml", "**/*.yaml"}

// skippedDirs are never descended into.
var skippedDirs = []string{
	".git",
	"node_modules",
	"vendor",
	"dist",
	"build",
	".idea",
	".vscode",
}

func skipDir(name string) bool {
	for _, s := range skippedDirs {
		if strings.EqualFold(name, s) {
			return true
		}
	}
	return false
}

// Match reports whether relPath is selected by include and not rejected by
// exclude. An empty include selects everything.
func Match(relPath string, include, exclude []string) bool {
	if len(include) > 0 && !matchesAny(relPath, include) {
		return false
	}
	return !matchesAny(relPath, exclude)
}

// matchesAny tries each pattern against the slash path and then against the
// base name, so "*.yml" also selects nested files.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	base := filepath.Base(normalized)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.PathMatch(pattern, normalized); err == nil && ok {
			return true
		}
		if ok, err := doublestar.PathMatch(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

// ValidPattern reports whether pattern is a well-formed glob.
func ValidPattern(pattern string) bool {
	return doublestar.ValidatePathPattern(filepath.ToSlash(pattern))
}
