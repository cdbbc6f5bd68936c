// Package extract runs the tree-sitter queries over one parsed file and
// produces the raw symbols, references, imports, and dynamic patterns the
// assembler later stitches into a graph.CallGraph.
package extract

import "github.com/ddcheck/ddcheck/internal/graph"

// RawSymbol is a symbol declaration found in one file, before it has been
// assigned a SymbolId by the assembler.
type RawSymbol struct {
	Name          string
	Kind          graph.SymbolKind
	Location      graph.Location
	Exported      bool
	HasDecorators bool
	SpanStart     uint32
	SpanEnd       uint32
}

// RawReference is a use site found in one file. FromName is the name of
// the innermost enclosing declaration, or "" for a module-level (top of
// file) reference. ToName is resolved against same-file symbols first,
// then against the file's imports during assembly.
type RawReference struct {
	FromName  string
	ToName    string
	Kind      graph.ReferenceKind
	IsDynamic bool
	Location  graph.Location
}

// ImportKind distinguishes how a name was brought into scope.
type ImportKind int

const (
	ImportNamed ImportKind = iota
	ImportDefault
	ImportNamespace
	ImportSideEffect
)

// RawImport binds a local name (or, for namespace/side-effect imports, no
// name) to a module specifier.
type RawImport struct {
	LocalName    string
	ImportedName string // for named imports, the exported name before aliasing
	Source       string
	Kind         ImportKind
	IsTypeOnly   bool
	IsDynamic    bool
	Location     graph.Location
}

// RawExport marks a locally declared name, or a re-exported name from
// another module, as part of this file's public surface.
type RawExport struct {
	LocalName string // empty for a re-export-all
	Source    string // non-empty for re-exports
	IsDefault bool
}

// RawDynamicPattern is a dynamic-code site found in one file. AffectsName
// is the name of the innermost enclosing declaration (the same walk
// RawReference.FromName uses), or "" at module scope; the assembler
// resolves it against the file's own symbols to populate
// graph.DynamicPattern.Affects.
type RawDynamicPattern struct {
	Kind        graph.DynamicPatternKind
	Location    graph.Location
	AffectsName string
}

// FileResult is everything the analyzer extracted from one file.
type FileResult struct {
	Path            string
	Language        string
	Symbols         []RawSymbol
	References      []RawReference
	Imports         []RawImport
	Exports         []RawExport
	DynamicPatterns []RawDynamicPattern
	HasSideEffects  bool
	HasDynamicEval  bool
}
