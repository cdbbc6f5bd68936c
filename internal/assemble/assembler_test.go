package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddcheck/ddcheck/internal/extract"
	"github.com/ddcheck/ddcheck/internal/graph"
)

func symbolNamed(g *graph.CallGraph, name string) *graph.TrackedSymbol {
	for _, s := range g.Symbols {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func TestBuildResolvesDynamicPatternAffectsToEnclosingSymbol(t *testing.T) {
	files := []extract.FileResult{
		{
			Path: "a.ts",
			Symbols: []extract.RawSymbol{
				{Name: "helper", Kind: graph.KindFunction},
			},
			DynamicPatterns: []extract.RawDynamicPattern{
				{Kind: graph.PatternBracketAccess, AffectsName: "helper"},
			},
		},
	}

	result := New().Build(files)

	require.Len(t, result.Graph.Patterns, 1)
	helper := symbolNamed(result.Graph, "helper")
	require.NotNil(t, helper)
	assert.Equal(t, []graph.SymbolId{helper.ID}, result.Graph.Patterns[0].Affects)
}

func TestBuildDynamicPatternAtModuleScopeHasNoAffects(t *testing.T) {
	files := []extract.FileResult{
		{
			Path: "a.ts",
			DynamicPatterns: []extract.RawDynamicPattern{
				{Kind: graph.PatternEval},
			},
		},
	}

	result := New().Build(files)

	require.Len(t, result.Graph.Patterns, 1)
	assert.Empty(t, result.Graph.Patterns[0].Affects)
}

func TestBuildRegistersFilesAndSymbols(t *testing.T) {
	files := []extract.FileResult{
		{
			Path: "a.ts",
			Symbols: []extract.RawSymbol{
				{Name: "foo", Kind: graph.KindFunction, Exported: true},
			},
		},
	}

	result := New().Build(files)

	require.Len(t, result.Graph.Files, 1)
	require.Len(t, result.Graph.Symbols, 1)
	sym := symbolNamed(result.Graph, "foo")
	require.NotNil(t, sym)
	assert.True(t, sym.Exported)
}

func TestBuildResolvesSameFileReference(t *testing.T) {
	files := []extract.FileResult{
		{
			Path: "a.ts",
			Symbols: []extract.RawSymbol{
				{Name: "main", Kind: graph.KindFunction},
				{Name: "helper", Kind: graph.KindFunction},
			},
			References: []extract.RawReference{
				{FromName: "main", ToName: "helper", Kind: graph.RefCall},
			},
		},
	}

	result := New().Build(files)

	main := symbolNamed(result.Graph, "main")
	helper := symbolNamed(result.Graph, "helper")
	require.NotNil(t, main)
	require.NotNil(t, helper)
	assert.Contains(t, result.Graph.OutgoingRefs[main.ID], helper.ID)
}

func TestBuildResolvesCrossFileNamedImport(t *testing.T) {
	files := []extract.FileResult{
		{
			Path: "lib.ts",
			Symbols: []extract.RawSymbol{
				{Name: "helper", Kind: graph.KindFunction, Exported: true},
			},
			Exports: []extract.RawExport{{LocalName: "helper"}},
		},
		{
			Path: "main.ts",
			Symbols: []extract.RawSymbol{
				{Name: "run", Kind: graph.KindFunction},
			},
			Imports: []extract.RawImport{
				{LocalName: "helper", ImportedName: "helper", Source: "./lib", Kind: extract.ImportNamed},
			},
			References: []extract.RawReference{
				{FromName: "run", ToName: "helper", Kind: graph.RefCall},
			},
		},
	}

	result := New().Build(files)

	assert.Equal(t, 0, result.UnresolvedImports)
	run := symbolNamed(result.Graph, "run")
	helper := symbolNamed(result.Graph, "helper")
	require.NotNil(t, run)
	require.NotNil(t, helper)
	assert.Contains(t, result.Graph.OutgoingRefs[run.ID], helper.ID)
}

func TestBuildResolvesDefaultImport(t *testing.T) {
	files := []extract.FileResult{
		{
			Path: "lib.ts",
			Symbols: []extract.RawSymbol{
				{Name: "Widget", Kind: graph.KindClass, Exported: true},
			},
			Exports: []extract.RawExport{{LocalName: "Widget", IsDefault: true}},
		},
		{
			Path: "main.ts",
			Symbols: []extract.RawSymbol{
				{Name: "run", Kind: graph.KindFunction},
			},
			Imports: []extract.RawImport{
				{LocalName: "Widget", Source: "./lib", Kind: extract.ImportDefault},
			},
			References: []extract.RawReference{
				{FromName: "run", ToName: "Widget", Kind: graph.RefInstantiation},
			},
		},
	}

	result := New().Build(files)

	run := symbolNamed(result.Graph, "run")
	widget := symbolNamed(result.Graph, "Widget")
	require.NotNil(t, run)
	require.NotNil(t, widget)
	assert.Contains(t, result.Graph.OutgoingRefs[run.ID], widget.ID)
}

func TestBuildReportsUnresolvedImport(t *testing.T) {
	files := []extract.FileResult{
		{
			Path: "main.ts",
			Imports: []extract.RawImport{
				{LocalName: "missing", Source: "./does-not-exist", Kind: extract.ImportNamed},
			},
		},
	}

	result := New().Build(files)

	assert.Equal(t, 1, result.UnresolvedImports)
	assert.Equal(t, "./does-not-exist", result.FirstUnresolvedImport)
}

func TestBuildIgnoresBareSpecifiers(t *testing.T) {
	files := []extract.FileResult{
		{
			Path: "main.ts",
			Imports: []extract.RawImport{
				{LocalName: "React", Source: "react", Kind: extract.ImportDefault},
			},
		},
	}

	result := New().Build(files)

	// Bare specifiers name packages outside the project and are never
	// counted as unresolved project-relative imports.
	assert.Equal(t, 0, result.UnresolvedImports)
}

func TestBuildResolvesReExportAll(t *testing.T) {
	files := []extract.FileResult{
		{
			Path: "lib.ts",
			Symbols: []extract.RawSymbol{
				{Name: "helper", Kind: graph.KindFunction, Exported: true},
			},
			Exports: []extract.RawExport{{LocalName: "helper"}},
		},
		{
			Path: "index.ts",
			Exports: []extract.RawExport{{Source: "./lib"}},
		},
		{
			Path: "main.ts",
			Symbols: []extract.RawSymbol{
				{Name: "run", Kind: graph.KindFunction},
			},
			Imports: []extract.RawImport{
				{LocalName: "helper", ImportedName: "helper", Source: "./index", Kind: extract.ImportNamed},
			},
			References: []extract.RawReference{
				{FromName: "run", ToName: "helper", Kind: graph.RefCall},
			},
		},
	}

	result := New().Build(files)

	run := symbolNamed(result.Graph, "run")
	helper := symbolNamed(result.Graph, "helper")
	require.NotNil(t, run)
	require.NotNil(t, helper)
	assert.Contains(t, result.Graph.OutgoingRefs[run.ID], helper.ID)
}

func TestBuildResolvesIndexFallback(t *testing.T) {
	files := []extract.FileResult{
		{
			Path: "widgets/index.ts",
			Symbols: []extract.RawSymbol{
				{Name: "Widget", Kind: graph.KindClass, Exported: true},
			},
			Exports: []extract.RawExport{{LocalName: "Widget"}},
		},
		{
			Path: "main.ts",
			Symbols: []extract.RawSymbol{
				{Name: "run", Kind: graph.KindFunction},
			},
			Imports: []extract.RawImport{
				{LocalName: "Widget", ImportedName: "Widget", Source: "./widgets", Kind: extract.ImportNamed},
			},
			References: []extract.RawReference{
				{FromName: "run", ToName: "Widget", Kind: graph.RefInstantiation},
			},
		},
	}

	result := New().Build(files)

	assert.Equal(t, 0, result.UnresolvedImports)
}

func TestSortedFileIDsIsDeterministic(t *testing.T) {
	files := []extract.FileResult{{Path: "b.ts"}, {Path: "a.ts"}, {Path: "c.ts"}}
	result := New().Build(files)

	ids := sortedFileIDs(result.Graph)

	assert.Equal(t, []graph.FileId{0, 1, 2}, ids)
}
