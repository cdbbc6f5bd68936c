package reachability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddcheck/ddcheck/internal/graph"
)

func buildGraph(t *testing.T, symbols []graph.SymbolId, refs [][2]graph.SymbolId, entries []graph.SymbolId) *graph.CallGraph {
	t.Helper()
	g := graph.New()
	g.AddFile(&graph.FileInfo{ID: 1, Path: "a.ts"})
	for _, id := range symbols {
		g.AddSymbol(&graph.TrackedSymbol{ID: id, Name: "sym", FileID: 1})
	}
	for _, r := range refs {
		g.AddReference(graph.SymbolReference{FromID: r[0], ToID: r[1], Kind: graph.RefCall})
	}
	for _, id := range entries {
		g.MarkEntryPoint(id)
	}
	return g
}

func TestAnalyzeRootDeadExportedSymbolIsUnusedExport(t *testing.T) {
	g := graph.New()
	g.AddFile(&graph.FileInfo{ID: 1, Path: "a.ts"})
	g.AddSymbol(&graph.TrackedSymbol{ID: 1, Name: "b", FileID: 1, Exported: true})

	findings := Analyze(g)

	require.Len(t, findings, 1)
	assert.Equal(t, graph.ReasonUnusedExport, findings[0].Reason.Kind)
}

func TestAnalyzeRootDeadInterfaceIsUnusedType(t *testing.T) {
	g := graph.New()
	g.AddFile(&graph.FileInfo{ID: 1, Path: "a.ts"})
	g.AddSymbol(&graph.TrackedSymbol{ID: 1, Name: "I", FileID: 1, Kind: graph.KindInterface})

	findings := Analyze(g)

	require.Len(t, findings, 1)
	assert.Equal(t, graph.ReasonUnusedType, findings[0].Reason.Kind)
}

func TestAnalyzeRootDeadExportedTakesPrecedenceOverType(t *testing.T) {
	g := graph.New()
	g.AddFile(&graph.FileInfo{ID: 1, Path: "a.ts"})
	g.AddSymbol(&graph.TrackedSymbol{ID: 1, Name: "I", FileID: 1, Kind: graph.KindInterface, Exported: true})

	findings := Analyze(g)

	require.Len(t, findings, 1)
	assert.Equal(t, graph.ReasonUnusedExport, findings[0].Reason.Kind)
}

func TestAnalyzeEntryPointIsLive(t *testing.T) {
	g := buildGraph(t, []graph.SymbolId{1}, nil, []graph.SymbolId{1})

	findings := Analyze(g)

	assert.Empty(t, findings)
}

func TestAnalyzeUnreachableSymbolIsRootDead(t *testing.T) {
	g := buildGraph(t, []graph.SymbolId{1, 2}, nil, []graph.SymbolId{1})

	findings := Analyze(g)

	require.Len(t, findings, 1)
	assert.Equal(t, graph.SymbolId(2), findings[0].ID)
	assert.Equal(t, graph.ReasonUnreachable, findings[0].Reason.Kind)
	assert.Equal(t, graph.NoSymbol, findings[0].KilledBy)
}

func TestAnalyzeReachableViaChainIsLive(t *testing.T) {
	g := buildGraph(t, []graph.SymbolId{1, 2, 3}, [][2]graph.SymbolId{{1, 2}, {2, 3}}, []graph.SymbolId{1})

	findings := Analyze(g)

	assert.Empty(t, findings)
}

func TestAnalyzeTransitivelyDeadSymbolReferencedOnlyByDeadCaller(t *testing.T) {
	// 1 is the entry point. 2 is dead (unreferenced). 3 is referenced only
	// by 2, so it's transitively dead rather than root-dead.
	g := buildGraph(t, []graph.SymbolId{1, 2, 3}, [][2]graph.SymbolId{{2, 3}}, []graph.SymbolId{1})

	findings := Analyze(g)

	require.Len(t, findings, 2)
	byID := map[graph.SymbolId]Finding{}
	for _, f := range findings {
		byID[f.ID] = f
	}

	assert.Equal(t, graph.ReasonUnreachable, byID[2].Reason.Kind)
	assert.Equal(t, graph.ReasonTransitive, byID[3].Reason.Kind)
	assert.Equal(t, graph.SymbolId(2), byID[3].KilledBy)
	assert.Equal(t, []graph.SymbolId{2}, byID[3].Reason.Chain)
}

func TestAnalyzeCycleAmongDeadSymbolsTerminates(t *testing.T) {
	g := buildGraph(t, []graph.SymbolId{1, 2, 3}, [][2]graph.SymbolId{{2, 3}, {3, 2}}, []graph.SymbolId{1})

	findings := Analyze(g)

	assert.Len(t, findings, 2)
}

func TestAnalyzeNoEntryPointsEverythingIsRootDead(t *testing.T) {
	g := buildGraph(t, []graph.SymbolId{1, 2}, nil, nil)

	findings := Analyze(g)

	require.Len(t, findings, 2)
	for _, f := range findings {
		assert.Equal(t, graph.ReasonUnreachable, f.Reason.Kind)
	}
}
