package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddcheck/ddcheck/internal/graph"
)

func TestBuildSortsByFileThenLine(t *testing.T) {
	g := graph.New()
	g.AddFile(&graph.FileInfo{ID: 1, Path: "b.ts"})
	g.AddFile(&graph.FileInfo{ID: 2, Path: "a.ts"})
	g.AddSymbol(&graph.TrackedSymbol{ID: 1, Name: "x", FileID: 1, Location: graph.Location{File: "b.ts", StartLine: 5}})
	g.AddSymbol(&graph.TrackedSymbol{ID: 2, Name: "y", FileID: 2, Location: graph.Location{File: "a.ts", StartLine: 10}})
	g.AddSymbol(&graph.TrackedSymbol{ID: 3, Name: "z", FileID: 2, Location: graph.Location{File: "a.ts", StartLine: 2}})

	report := Build(g, 0, "")

	require.Len(t, report.DeadSymbols, 3)
	assert.Equal(t, "a.ts", report.DeadSymbols[0].Symbol.Location.File)
	assert.Equal(t, uint32(2), report.DeadSymbols[0].Symbol.Location.StartLine)
	assert.Equal(t, "a.ts", report.DeadSymbols[1].Symbol.Location.File)
	assert.Equal(t, uint32(10), report.DeadSymbols[1].Symbol.Location.StartLine)
	assert.Equal(t, "b.ts", report.DeadSymbols[2].Symbol.Location.File)
}

func TestBuildSummarizesUnresolvedImportsAsOneWarning(t *testing.T) {
	g := graph.New()

	report := Build(g, 3, "./missing")

	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "3")
	assert.Contains(t, report.Warnings[0], "./missing")
}

func TestBuildNoUnresolvedImportsNoWarning(t *testing.T) {
	g := graph.New()

	report := Build(g, 0, "")

	assert.Empty(t, report.Warnings)
}

func TestFilterByConfidenceKeepsAtOrAboveMin(t *testing.T) {
	dead := []graph.DeadSymbol{
		{Symbol: graph.TrackedSymbol{Name: "a"}, Class: graph.ConfidenceLow},
		{Symbol: graph.TrackedSymbol{Name: "b"}, Class: graph.ConfidenceMedium},
		{Symbol: graph.TrackedSymbol{Name: "c"}, Class: graph.ConfidenceHigh},
	}

	kept := FilterByConfidence(dead, graph.ConfidenceMedium)

	require.Len(t, kept, 2)
	assert.Equal(t, "b", kept[0].Symbol.Name)
	assert.Equal(t, "c", kept[1].Symbol.Name)
}

func TestIncludeTypesDropsTypeLikeWhenFalse(t *testing.T) {
	dead := []graph.DeadSymbol{
		{Symbol: graph.TrackedSymbol{Name: "Foo", Kind: graph.KindInterface}},
		{Symbol: graph.TrackedSymbol{Name: "bar", Kind: graph.KindFunction}},
	}

	kept := IncludeTypes(dead, false)

	require.Len(t, kept, 1)
	assert.Equal(t, "bar", kept[0].Symbol.Name)
}

func TestIncludeTypesKeepsEverythingWhenTrue(t *testing.T) {
	dead := []graph.DeadSymbol{
		{Symbol: graph.TrackedSymbol{Name: "Foo", Kind: graph.KindInterface}},
	}

	kept := IncludeTypes(dead, true)

	assert.Len(t, kept, 1)
}

func TestFilterIgnoredByName(t *testing.T) {
	dead := []graph.DeadSymbol{
		{Symbol: graph.TrackedSymbol{Name: "unused"}},
		{Symbol: graph.TrackedSymbol{Name: "keepMe"}},
	}

	kept := FilterIgnored(dead, []string{"unused"}, nil)

	require.Len(t, kept, 1)
	assert.Equal(t, "keepMe", kept[0].Symbol.Name)
}

func TestFilterIgnoredByPattern(t *testing.T) {
	dead := []graph.DeadSymbol{
		{Symbol: graph.TrackedSymbol{Name: "_private"}},
		{Symbol: graph.TrackedSymbol{Name: "public"}},
	}

	kept := FilterIgnored(dead, nil, []string{"^_"})

	require.Len(t, kept, 1)
	assert.Equal(t, "public", kept[0].Symbol.Name)
}

func TestFilterIgnoredSkipsInvalidPatternRatherThanMatchingEverything(t *testing.T) {
	dead := []graph.DeadSymbol{
		{Symbol: graph.TrackedSymbol{Name: "anything"}},
	}

	kept := FilterIgnored(dead, nil, []string{"("})

	assert.Len(t, kept, 1)
}

func TestFilterIgnoredNoFiltersReturnsInputUnchanged(t *testing.T) {
	dead := []graph.DeadSymbol{{Symbol: graph.TrackedSymbol{Name: "a"}}}

	kept := FilterIgnored(dead, nil, nil)

	assert.Equal(t, dead, kept)
}

func TestCountByFileGroups(t *testing.T) {
	dead := []graph.DeadSymbol{
		{Symbol: graph.TrackedSymbol{Name: "a", Location: graph.Location{File: "x.ts"}}},
		{Symbol: graph.TrackedSymbol{Name: "b", Location: graph.Location{File: "x.ts"}}},
		{Symbol: graph.TrackedSymbol{Name: "c", Location: graph.Location{File: "y.ts"}}},
	}

	byFile := CountByFile(dead)

	assert.Len(t, byFile["x.ts"], 2)
	assert.Len(t, byFile["y.ts"], 1)
}

func TestExplainReasons(t *testing.T) {
	assert.Equal(t, "exported but never imported", Explain(graph.DeadSymbol{Reason: graph.DeadnessReason{Kind: graph.ReasonUnusedExport}}))
	assert.Equal(t, "type never referenced", Explain(graph.DeadSymbol{Reason: graph.DeadnessReason{Kind: graph.ReasonUnusedType}}))
	assert.Equal(t, "referenced only by another dead symbol", Explain(graph.DeadSymbol{Reason: graph.DeadnessReason{Kind: graph.ReasonTransitive, Chain: []graph.SymbolId{1}}}))
	assert.Contains(t, Explain(graph.DeadSymbol{Reason: graph.DeadnessReason{Kind: graph.ReasonTransitive, Chain: []graph.SymbolId{1, 2}}}), "2 dead symbol(s)")
}
