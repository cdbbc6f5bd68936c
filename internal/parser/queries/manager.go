// Package queries compiles and caches the tree-sitter queries used to pull
// symbols, imports/exports, and reference sites out of a parsed file.
package queries

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/ddcheck/ddcheck/internal/parser"
)

// Type identifies which query family to compile.
type Type int

const (
	TypeSymbols Type = iota
	TypeImports
	TypeReferences
)

func (t Type) String() string {
	switch t {
	case TypeSymbols:
		return "symbols"
	case TypeImports:
		return "imports"
	case TypeReferences:
		return "references"
	default:
		return "unknown"
	}
}

type queryKey struct {
	lang parser.Language
	typ  Type
}

// Manager compiles and caches queries per (language, type). Query content
// never depends on the TSX-vs-TS grammar variant, because the node types
// the queries match on are identical between them; TSX-ness only picks
// which grammar the parser pool hands out. Queries are always compiled
// against the non-TSX pointer for that reason.
type Manager struct {
	parsers *parser.Manager

	mutex sync.RWMutex
	cache map[queryKey]*ts.Query

	logger *slog.Logger
}

// NewManager builds a Manager bound to pm for language-pointer lookups.
func NewManager(pm *parser.Manager, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		parsers: pm,
		cache:   make(map[queryKey]*ts.Query),
		logger:  logger,
	}
}

// GetQuery returns the compiled query for lang and typ, compiling and
// caching it on first use.
func (m *Manager) GetQuery(lang parser.Language, typ Type) (*ts.Query, error) {
	key := queryKey{lang: lang, typ: typ}

	m.mutex.RLock()
	query, ok := m.cache[key]
	m.mutex.RUnlock()
	if ok {
		return query, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if query, ok = m.cache[key]; ok {
		return query, nil
	}

	source, err := queryString(lang, typ)
	if err != nil {
		return nil, err
	}

	langPtr, err := m.parsers.GetLanguagePointer(lang, false)
	if err != nil {
		return nil, fmt.Errorf("language pointer for %s: %w", lang, err)
	}
	tsLang := ts.NewLanguage(langPtr)

	compiled, qerr := ts.NewQuery(tsLang, source)
	if qerr != nil {
		return nil, fmt.Errorf("compile %s query for %s: %s", typ, lang, qerr.Message)
	}

	m.cache[key] = compiled
	m.logger.Debug("compiled query", "language", lang.String(), "type", typ.String())
	return compiled, nil
}

func queryString(lang parser.Language, typ Type) (string, error) {
	switch typ {
	case TypeSymbols:
		switch lang {
		case parser.LangTypeScript:
			return symbolsTS, nil
		case parser.LangJavaScript:
			return symbolsJS, nil
		}
	case TypeImports:
		switch lang {
		case parser.LangTypeScript:
			return importsTS, nil
		case parser.LangJavaScript:
			return importsJS, nil
		}
	case TypeReferences:
		switch lang {
		case parser.LangTypeScript:
			return referencesTS, nil
		case parser.LangJavaScript:
			return referencesJS, nil
		}
	}
	return "", fmt.Errorf("no %s query for language %s", typ, lang)
}

// Close releases every compiled query. The Manager must not be used
// afterward.
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for key, query := range m.cache {
		if query != nil {
			query.Close()
		}
		delete(m.cache, key)
	}
	return nil
}

// Match is one pattern match from ExecuteQuery.
type Match struct {
	PatternIndex uint32
	Captures     []Capture
}

// Capture is one captured node within a Match.
type Capture struct {
	Name     string
	Category string
	Field    string
	Node     *ts.Node
	Text     string
	Location NodeLocation
}

// NodeLocation is a 1-based line/column, 0-based byte-offset span.
type NodeLocation struct {
	StartLine   uint32
	StartColumn uint32
	EndLine     uint32
	EndColumn   uint32
	StartByte   uint32
	EndByte     uint32
}

// ExecuteQuery runs query over tree and returns every match with its
// captures resolved to text and location.
func (m *Manager) ExecuteQuery(tree *ts.Tree, query *ts.Query, source []byte) ([]Match, error) {
	if tree == nil {
		return nil, fmt.Errorf("tree is nil")
	}
	if query == nil {
		return nil, fmt.Errorf("query is nil")
	}

	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	iter := cursor.Matches(query, tree.RootNode(), source)
	names := query.CaptureNames()

	var matches []Match
	for {
		match := iter.Next()
		if match == nil {
			break
		}

		captures := make([]Capture, 0, len(match.Captures))
		for _, c := range match.Captures {
			var name string
			if int(c.Index) < len(names) {
				name = names[c.Index]
			}
			category, field := splitCaptureName(name)
			node := c.Node
			captures = append(captures, Capture{
				Name:     name,
				Category: category,
				Field:    field,
				Node:     &node,
				Text:     node.Utf8Text(source),
				Location: nodeLocation(&node),
			})
		}

		matches = append(matches, Match{PatternIndex: uint32(match.PatternIndex), Captures: captures})
	}

	return matches, nil
}

func splitCaptureName(name string) (category, field string) {
	parts := strings.SplitN(name, ".", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return name, ""
}

func nodeLocation(node *ts.Node) NodeLocation {
	start := node.StartPosition()
	end := node.EndPosition()
	return NodeLocation{
		StartLine:   uint32(start.Row + 1),
		StartColumn: uint32(start.Column + 1),
		EndLine:     uint32(end.Row + 1),
		EndColumn:   uint32(end.Column + 1),
		StartByte:   uint32(node.StartByte()),
		EndByte:     uint32(node.EndByte()),
	}
}
