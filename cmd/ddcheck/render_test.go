package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddcheck/ddcheck/internal/graph"
	"github.com/ddcheck/ddcheck/internal/result"
)

func sampleDead() []graph.DeadSymbol {
	return []graph.DeadSymbol{
		{
			Symbol: graph.TrackedSymbol{
				Name: "unused", Kind: graph.KindFunction,
				Location: graph.Location{File: "src/a.ts", StartLine: 3, StartColumn: 1},
			},
			Score: 90, Class: graph.ConfidenceHigh,
			Reason: graph.DeadnessReason{Kind: graph.ReasonUnreachable, Explanation: "not reached from any entry point"},
		},
	}
}

func TestWriteTableEmptyPrintsFoundNothing(t *testing.T) {
	var buf bytes.Buffer
	noColor = true

	writeTable(&buf, nil, "run-1")

	assert.Contains(t, buf.String(), "No dead code found!")
}

func TestWriteTableListsFindings(t *testing.T) {
	var buf bytes.Buffer
	noColor = true

	writeTable(&buf, sampleDead(), "run-1")

	out := buf.String()
	assert.Contains(t, out, "src/a.ts")
	assert.Contains(t, out, "unused")
	assert.Contains(t, out, "fn")
}

func TestWriteJSONRoundtrips(t *testing.T) {
	var buf bytes.Buffer
	report := result.Report{FilesAnalyzed: 2, SymbolsAnalyzed: 10}
	dead := sampleDead()

	require.NoError(t, writeJSON(&buf, report, dead, "run-123"))

	var out jsonOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "run-123", out.RunID)
	assert.Equal(t, 2, out.TotalFiles)
	assert.Equal(t, 1, out.DeadCount)
	require.Len(t, out.DeadSymbols, 1)
	assert.Equal(t, "unused", out.DeadSymbols[0].Name)
	assert.Equal(t, "high", out.DeadSymbols[0].Confidence)
}

func TestWriteCompactFormatsOneLinePerFinding(t *testing.T) {
	var buf bytes.Buffer
	noColor = true

	writeCompact(&buf, sampleDead())

	assert.Equal(t, "src/a.ts:3:1: unused (fn) - high\n", buf.String())
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "fn", kindLabel(graph.KindFunction))
	assert.Equal(t, "class", kindLabel(graph.KindClass))
	assert.Equal(t, "module", kindLabel(graph.KindModule))
}

func TestConfidenceLabelNoColorOmitsEscapeCodes(t *testing.T) {
	noColor = true
	label := confidenceLabel(graph.ConfidenceHigh, 90)

	assert.Equal(t, "high (90)", label)
}

func TestFilterByScore(t *testing.T) {
	dead := []graph.DeadSymbol{
		{Symbol: graph.TrackedSymbol{Name: "a"}, Score: 40},
		{Symbol: graph.TrackedSymbol{Name: "b"}, Score: 80},
	}

	kept := filterByScore(dead, 50)

	require.Len(t, kept, 1)
	assert.Equal(t, "b", kept[0].Symbol.Name)
}

func TestFilterByScoreZeroKeepsEverything(t *testing.T) {
	dead := []graph.DeadSymbol{{Symbol: graph.TrackedSymbol{Name: "a"}, Score: 5}}

	kept := filterByScore(dead, 0)

	assert.Len(t, kept, 1)
}
