// Package pipeline wires discovery, extraction, assembly, entry-point
// marking, and reporting into the single analysis run shared by the CLI,
// the watcher, and the MCP server.
package pipeline

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ddcheck/ddcheck/internal/assemble"
	"github.com/ddcheck/ddcheck/internal/config"
	"github.com/ddcheck/ddcheck/internal/discovery"
	"github.com/ddcheck/ddcheck/internal/entrypoint"
	"github.com/ddcheck/ddcheck/internal/extract"
	"github.com/ddcheck/ddcheck/internal/filecache"
	"github.com/ddcheck/ddcheck/internal/graph"
	"github.com/ddcheck/ddcheck/internal/parser"
	"github.com/ddcheck/ddcheck/internal/parser/queries"
	"github.com/ddcheck/ddcheck/internal/poolsize"
	"github.com/ddcheck/ddcheck/internal/result"
	"github.com/ddcheck/ddcheck/internal/workerpool"
)

// Pipeline holds the long-lived state (parser pools, compiled queries,
// file cache) a Run amortizes across files within a project, and across
// repeated Runs in watch mode. The file cache is emptied once each Run's
// extraction finishes, so every Run reads current file content.
type Pipeline struct {
	cfg config.Config

	parsers  *parser.Manager
	queries  *queries.Manager
	analyzer *extract.Analyzer
	cache    filecache.Cache

	logger *slog.Logger
}

// New builds a Pipeline using cfg. The returned Pipeline owns
// its parser pools and file cache; call Close when done.
func New(cfg config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	pm := parser.NewManager(logger)
	qm := queries.NewManager(pm, logger)
	analyzer := extract.NewAnalyzer(pm, qm, logger)

	return &Pipeline{
		cfg:      cfg,
		parsers:  pm,
		queries:  qm,
		analyzer: analyzer,
		cache:    filecache.New(filecache.Default()),
		logger:   logger,
	}
}

// Close releases the parser pools and unmaps every cached file.
func (p *Pipeline) Close() error {
	p.parsers.Close()
	p.queries.Close()
	return p.cache.Close()
}

// Run discovers files under rootDir, extracts and assembles them into a
// call graph, marks entry points, and builds the final report.
func (p *Pipeline) Run(rootDir string) (result.Report, error) {
	if err := config.ValidateEntryFiles(p.cfg, rootDir); err != nil {
		return result.Report{}, err
	}

	g, unresolved, firstUnresolved, err := p.buildGraph(rootDir)
	if err != nil {
		return result.Report{}, err
	}

	report := result.Build(g, unresolved, firstUnresolved)
	report.DeadSymbols = result.FilterIgnored(report.DeadSymbols, p.cfg.Analysis.IgnoreSymbols, p.cfg.Analysis.IgnorePatterns)
	report.DeadSymbols = result.IncludeTypes(report.DeadSymbols, p.cfg.Analysis.IncludeTypes)
	return report, nil
}

// buildGraph runs discovery through entry-point marking, returning the
// assembled graph along with the assembler's unresolved-import count and
// first unresolved specifier.
func (p *Pipeline) buildGraph(rootDir string) (*graph.CallGraph, int, string, error) {
	files, err := discovery.DiscoverFiles(rootDir, discovery.Config{
		Include:          p.cfg.Include,
		Exclude:          p.cfg.Exclude,
		RespectGitignore: p.cfg.RespectGitignore,
	})
	if err != nil {
		return nil, 0, "", fmt.Errorf("discover files: %w", err)
	}

	numWorkers := poolsize.Optimal()
	pool := workerpool.New(numWorkers, p.analyzer, p.cache, p.logger)
	pool.Start()

	done := make(chan struct{})
	fileResults := make([]extract.FileResult, 0, len(files))
	var failures []workerpool.Failure

	go func() {
		defer close(done)
		resultsCh := pool.Results()
		errorsCh := pool.Errors()
		remaining := len(files)
		for remaining > 0 {
			select {
			case r, ok := <-resultsCh:
				if !ok {
					resultsCh = nil
					continue
				}
				fileResults = append(fileResults, *r.Result)
				remaining--
			case f, ok := <-errorsCh:
				if !ok {
					errorsCh = nil
					continue
				}
				failures = append(failures, f)
				remaining--
			}
		}
	}()

	for i, path := range files {
		if err := pool.Submit(workerpool.Job{Path: path, JobID: i}); err != nil {
			p.logger.Warn("failed to submit file for analysis", "path", path, "error", err)
		}
	}
	pool.FinishSubmitting()
	<-done
	pool.Stop()

	// Extraction results hold copies of everything they need, so the
	// mappings can go; a later Run must not see this Run's file bytes.
	if err := p.cache.Close(); err != nil {
		p.logger.Warn("failed to release file cache", "error", err)
	}

	for _, f := range failures {
		p.logger.Warn("failed to analyze file", "path", f.Path, "error", f.Error)
	}

	asm := assemble.New()
	asmResult := asm.Build(fileResults)

	entryCfg, err := p.resolveEntryPoints(rootDir, files)
	if err != nil {
		return nil, 0, "", fmt.Errorf("resolve entry points: %w", err)
	}
	entrypoint.Mark(asmResult.Graph, entryCfg)

	return asmResult.Graph, asmResult.UnresolvedImports, asmResult.FirstUnresolvedImport, nil
}

// resolveEntryPoints expands every configured and framework-plugin source
// into the concrete entrypoint.Config consumed by entrypoint.Mark: glob
// patterns and package.json fields are resolved to absolute paths here so
// Mark itself never has to look at the filesystem.
func (p *Pipeline) resolveEntryPoints(rootDir string, discovered []string) (entrypoint.Config, error) {
	var cfg entrypoint.Config

	for _, f := range p.cfg.EntryFiles {
		cfg.ExplicitFiles = append(cfg.ExplicitFiles, filepath.Join(rootDir, f))
	}
	cfg.ExplicitFiles = append(cfg.ExplicitFiles, entrypoint.MatchGlobs(rootDir, p.cfg.EntryGlobs, discovered)...)
	cfg.ExportNames = append(cfg.ExportNames, p.cfg.ExportNames...)

	pkgPath := filepath.Join(rootDir, "package.json")
	if specs, err := entrypoint.ReadPackageJSON(pkgPath); err == nil {
		cfg.ExplicitFiles = append(cfg.ExplicitFiles, specs...)
	}

	for _, plugin := range entrypoint.SelectPlugins(p.cfg.Frameworks) {
		cfg.ExplicitFiles = append(cfg.ExplicitFiles, entrypoint.MatchGlobs(rootDir, plugin.GlobPatterns, discovered)...)
		cfg.ExportNames = append(cfg.ExportNames, plugin.ExportNames...)
	}

	return cfg, nil
}
