package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	tsjavascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tstypescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

type poolKey struct {
	lang  Language
	isTSX bool
}

// Manager owns a lazily-initialized parser pool per (language, isTSX)
// combination. It must be closed via Close() once the run is finished.
type Manager struct {
	mutex sync.RWMutex
	pools map[poolKey]*parserPool

	logger *slog.Logger

	stats struct {
		parsesCalled int
	}
}

// NewManager builds a Manager. logger defaults to slog.Default() when nil.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		pools:  make(map[poolKey]*parserPool),
		logger: logger,
	}
}

// Parse parses source with the grammar for lang, using the TSX grammar
// variant when isTSX is set. The returned Tree must be closed by the
// caller.
func (m *Manager) Parse(source []byte, lang Language, isTSX bool) (*ts.Tree, error) {
	if lang == LangUnknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}

	m.mutex.Lock()
	m.stats.parsesCalled++
	m.mutex.Unlock()

	pool, err := m.getOrCreatePool(lang, isTSX)
	if err != nil {
		return nil, fmt.Errorf("get pool for %s: %w", lang, err)
	}

	parserInstance, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("acquire parser: %w", err)
	}

	tree := parserInstance.Parse(source, nil)
	pool.release(parserInstance)

	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree")
	}

	if tree.RootNode().HasError() {
		m.logger.Debug("parse tree contains errors", "language", lang.String())
	}

	return tree, nil
}

// ParseFile parses source using the language and TSX-ness inferred from
// path's extension.
func (m *Manager) ParseFile(source []byte, path string) (*ts.Tree, error) {
	lang := DetectLanguage(path)
	if lang == LangUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", path)
	}
	return m.Parse(source, lang, IsTSXFile(path))
}

// Close releases every parser pool. The Manager must not be used
// afterward.
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for key, pool := range m.pools {
		pool.close()
		m.logger.Debug("closed parser pool", "language", key.lang.String(), "isTSX", key.isTSX)
	}
	m.pools = make(map[poolKey]*parserPool)
	return nil
}

func (m *Manager) getOrCreatePool(lang Language, isTSX bool) (*parserPool, error) {
	key := poolKey{lang: lang, isTSX: isTSX}

	m.mutex.RLock()
	pool, ok := m.pools[key]
	m.mutex.RUnlock()
	if ok {
		return pool, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if pool, ok = m.pools[key]; ok {
		return pool, nil
	}

	langPtr, err := m.GetLanguagePointer(lang, isTSX)
	if err != nil {
		return nil, err
	}

	size := getDefaultPoolSize()
	pool = newParserPool(lang, langPtr, isTSX, size, m.logger)
	m.pools[key] = pool

	m.logger.Debug("created parser pool", "language", lang.String(), "isTSX", isTSX, "maxSize", size)
	return pool, nil
}

// GetLanguagePointer exposes the raw grammar pointer so the query manager
// can compile queries against the same grammar the parser pool uses.
func (m *Manager) GetLanguagePointer(lang Language, isTSX bool) (unsafe.Pointer, error) {
	switch lang {
	case LangTypeScript:
		if isTSX {
			return tstypescript.LanguageTSX(), nil
		}
		return tstypescript.LanguageTypescript(), nil
	case LangJavaScript:
		return tsjavascript.Language(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang.String())
	}
}

// Stats reports cumulative pool usage.
type Stats struct {
	ParsersCreated int
	ParsesCalled   int
}

// Stats returns current usage counters across every pool.
func (m *Manager) Stats() Stats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	total := 0
	for _, pool := range m.pools {
		total += pool.getCreatedCount()
	}
	return Stats{ParsersCreated: total, ParsesCalled: m.stats.parsesCalled}
}
