package extract

import (
	"fmt"
	"log/slog"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/ddcheck/ddcheck/internal/parser"
	"github.com/ddcheck/ddcheck/internal/parser/queries"
)

// Analyzer runs the extraction queries against a file's source, reusing a
// shared parser.Manager and queries.Manager across every call so that
// pools and compiled queries amortize across the whole run.
type Analyzer struct {
	parsers *parser.Manager
	queries *queries.Manager
	logger  *slog.Logger
}

// NewAnalyzer builds an Analyzer. logger defaults to slog.Default() when
// nil.
func NewAnalyzer(pm *parser.Manager, qm *queries.Manager, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{parsers: pm, queries: qm, logger: logger}
}

// AnalyzeFile parses source and extracts its symbols, references,
// imports/exports, and dynamic patterns. Safe for concurrent use across
// goroutines sharing the same Analyzer.
func (a *Analyzer) AnalyzeFile(path string, source []byte) (*FileResult, error) {
	lang := parser.DetectLanguage(path)
	if lang == parser.LangUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", path)
	}

	tree, err := a.parsers.Parse(source, lang, parser.IsTSXFile(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	result := &FileResult{Path: path, Language: lang.String()}

	symbolMatches, err := a.runQuery(tree, lang, queries.TypeSymbols, source)
	if err != nil {
		return nil, fmt.Errorf("symbol query on %s: %w", path, err)
	}
	result.Symbols = extractSymbols(symbolMatches)

	importMatches, err := a.runQuery(tree, lang, queries.TypeImports, source)
	if err != nil {
		return nil, fmt.Errorf("import query on %s: %w", path, err)
	}
	result.Imports, result.Exports = extractImportsExports(importMatches, source)

	refMatches, err := a.runQuery(tree, lang, queries.TypeReferences, source)
	if err != nil {
		return nil, fmt.Errorf("reference query on %s: %w", path, err)
	}
	refs, patterns, hasDynamicEval := extractReferences(refMatches, tree, source, path)
	result.References = refs
	result.DynamicPatterns = patterns
	result.HasDynamicEval = hasDynamicEval

	result.HasSideEffects = detectSideEffects(result)

	if tree.RootNode().HasError() {
		a.logger.Debug("parse tree contains errors", "path", path)
	}

	return result, nil
}

func (a *Analyzer) runQuery(tree *ts.Tree, lang parser.Language, typ queries.Type, source []byte) ([]queries.Match, error) {
	q, err := a.queries.GetQuery(lang, typ)
	if err != nil {
		return nil, err
	}
	return a.queries.ExecuteQuery(tree, q, source)
}
