// Package entrypoint implements the ordered entry-point discovery sources
// and applies their results to a graph.CallGraph.
package entrypoint

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ddcheck/ddcheck/internal/graph"
)

// Config collects every discovery source, already resolved to concrete
// inputs: glob expansion, package.json reading, and framework-plugin
// matching all happen before Mark runs. Mark's only job is to apply
// already-resolved markers to the graph in the documented precedence
// order, so that the order in which sources disagree is irrelevant (a
// symbol is either an entry point or it isn't; nothing here is additive
// in a way that changes any other rule's outcome).
type Config struct {
	// ExplicitFiles are absolute file paths (config entry files, config
	// globs, resolved package.json fields, and matched framework-plugin
	// globs) whose exported symbols are entry points.
	ExplicitFiles []string

	// ExportNames are exported symbol names that are entry points in
	// whichever file declares them (explicit config export names and
	// framework-plugin special export names, e.g. getServerSideProps).
	ExportNames []string
}

// Mark applies cfg to g, then marks every side-effecting file's top-level
// symbols as entry points too: a file that runs code at import time is
// live regardless of whether anything imports it.
func Mark(g *graph.CallGraph, cfg Config) {
	fileByPath := make(map[string]*graph.FileInfo, len(g.Files))
	for _, f := range g.Files {
		fileByPath[filepath.Clean(f.Path)] = f
	}

	explicit := make(map[string]bool, len(cfg.ExplicitFiles))
	for _, p := range cfg.ExplicitFiles {
		explicit[filepath.Clean(p)] = true
	}

	names := make(map[string]bool, len(cfg.ExportNames))
	for _, n := range cfg.ExportNames {
		names[n] = true
	}

	for _, f := range g.Files {
		fromExplicitFile := explicit[filepath.Clean(f.Path)]
		fromSideEffect := f.HasSideEffects

		for _, sid := range f.Symbols {
			sym := g.Symbols[sid]
			if sym == nil {
				continue
			}
			if (fromExplicitFile && sym.Exported) || fromSideEffect || (sym.Exported && names[sym.Name]) {
				g.MarkEntryPoint(sid)
			}
		}
	}
}

// MatchGlobs returns the subset of candidatePaths matching any of
// patterns, evaluated relative to rootDir.
func MatchGlobs(rootDir string, patterns []string, candidatePaths []string) []string {
	var out []string
	for _, path := range candidatePaths {
		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range patterns {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				out = append(out, path)
				break
			}
		}
	}
	return out
}
