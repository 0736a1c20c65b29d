package cssenhance

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	engine "github.com/yacobolo/cssenhance"
)

// ScanStats tracks file discovery counts for one run.
type ScanStats struct {
	FilesDiscovered int
	FilesScanned    int
	FilesSkipped    int
}

var (
	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// generatedSuffixes are file name endings that mark build artifacts. The
// engine applies its own path exclusion on top of this list.
var generatedSuffixes = []string{
	".min.css",
	".gen.css",
	"_templ.go",
	".templ.go",
}

// isGeneratedFile checks if a file is a build artifact by suffix
func isGeneratedFile(path string) bool {
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// loadGitIgnore loads the .gitignore file once (thread-safe)
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			// Gracefully degrade - no .gitignore is fine
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// ShouldSkipFile determines if a file should be excluded from scanning.
//
// Two-layer filtering:
// 1. Suffix check (fast): skip minified and generated files
// 2. Gitignore check: skip gitignored files (only for relative paths)
func ShouldSkipFile(path string) bool {
	if isGeneratedFile(path) {
		return true
	}

	// Only apply gitignore to relative paths (paths within the project).
	// Absolute paths (like /tmp/...) should not be affected by project gitignore.
	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}

	return false
}

// LanguageForPath maps a file extension to an engine source language.
// Unsupported extensions return "".
func LanguageForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css":
		return engine.LangCSS
	case ".html", ".htm":
		return engine.LangHTML
	case ".jsx", ".tsx", ".js", ".ts":
		return engine.LangJSX
	}
	return ""
}

// ExpandGlobPatterns expands glob patterns to deduplicated file paths,
// dropping directories, unsupported extensions and skipped files.
func ExpandGlobPatterns(patterns []string) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if LanguageForPath(match) == "" || ShouldSkipFile(match) {
				stats.FilesSkipped++
				continue
			}

			allFiles = append(allFiles, match)
			stats.FilesScanned++
		}
	}

	return allFiles, stats, nil
}
