// Package discovery walks a project directory and returns the set of
// source files the pipeline should analyze.
package discovery

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Config controls which files DiscoverFiles returns.
type Config struct {
	Include         []string
	Exclude         []string
	RespectGitignore bool
}

// DefaultExclude is applied in addition to Config.Exclude and to any
// .gitignore patterns collected during the walk.
var DefaultExclude = []string{
	"**/node_modules/**",
	"**/.git/**",
	"**/dist/**",
	"**/build/**",
	"**/.next/**",
	"**/coverage/**",
}

// DefaultInclude matches every extension the pipeline can parse.
var DefaultInclude = []string{"**/*.ts", "**/*.tsx", "**/*.js", "**/*.jsx", "**/*.mts", "**/*.cts", "**/*.mjs", "**/*.cjs"}

// DiscoverFiles walks rootDir applying cfg's include/exclude globs (and,
// when enabled, any .gitignore patterns found along the way), returning a
// sorted slice of absolute paths.
func DiscoverFiles(rootDir string, cfg Config) ([]string, error) {
	include := cfg.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	exclude := append(append([]string{}, DefaultExclude...), cfg.Exclude...)

	for _, p := range include {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid include pattern: %s", p)
		}
	}
	for _, p := range exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", p)
		}
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	gitignore := make([]string, 0)

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}

		relPath, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		if cfg.RespectGitignore && !d.IsDir() && d.Name() == ".gitignore" {
			if patterns, err := readGitignore(path, filepath.Dir(relPath)); err == nil {
				gitignore = append(gitignore, patterns...)
			}
		}

		for _, pattern := range append(exclude, gitignore...) {
			if matched, _ := doublestar.PathMatch(pattern, relPath); matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		matched := false
		for _, pattern := range include {
			if m, _ := doublestar.PathMatch(pattern, relPath); m {
				matched = true
				break
			}
		}
		if !matched {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
