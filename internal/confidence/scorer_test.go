package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ddcheck/ddcheck/internal/graph"
)

func TestScoreCleanUnexportedFunctionIsHighConfidence(t *testing.T) {
	sym := &graph.TrackedSymbol{ID: 1, Name: "helper", Kind: graph.KindFunction}
	file := &graph.FileInfo{ID: 1}

	score, class := Score(sym, file, graph.DeadnessReason{Kind: graph.ReasonUnreachable}, nil, false)

	assert.Equal(t, 100, score)
	assert.Equal(t, graph.ConfidenceHigh, class)
}

func TestScoreExportedSymbolLosesConfidence(t *testing.T) {
	sym := &graph.TrackedSymbol{ID: 1, Name: "helper", Kind: graph.KindFunction, Exported: true}

	score, _ := Score(sym, nil, graph.DeadnessReason{Kind: graph.ReasonUnreachable}, nil, false)

	assert.Equal(t, 90, score)
}

func TestScoreFileWithDynamicEvalPenalizesMoreThanProjectWide(t *testing.T) {
	sym := &graph.TrackedSymbol{ID: 1, Name: "helper", Kind: graph.KindFunction}
	evalFile := &graph.FileInfo{ID: 1, HasDynamicEval: true}

	fileScore, _ := Score(sym, evalFile, graph.DeadnessReason{Kind: graph.ReasonUnreachable}, nil, true)
	projectOnlyScore, _ := Score(sym, &graph.FileInfo{ID: 2}, graph.DeadnessReason{Kind: graph.ReasonUnreachable}, nil, true)

	assert.Less(t, fileScore, projectOnlyScore)
}

func TestScoreTypeLikeSymbolGetsBonus(t *testing.T) {
	fnSym := &graph.TrackedSymbol{ID: 1, Name: "Foo", Kind: graph.KindFunction}
	typeSym := &graph.TrackedSymbol{ID: 2, Name: "Foo", Kind: graph.KindInterface}

	fnScore, _ := Score(fnSym, nil, graph.DeadnessReason{Kind: graph.ReasonUnreachable}, nil, false)
	typeScore, _ := Score(typeSym, nil, graph.DeadnessReason{Kind: graph.ReasonUnreachable}, nil, false)

	assert.Greater(t, typeScore, fnScore)
}

func TestScoreLeadingUnderscoreGetsBonus(t *testing.T) {
	plain := &graph.TrackedSymbol{ID: 1, Name: "helper", Kind: graph.KindFunction}
	underscored := &graph.TrackedSymbol{ID: 2, Name: "_helper", Kind: graph.KindFunction}

	plainScore, _ := Score(plain, nil, graph.DeadnessReason{Kind: graph.ReasonUnreachable}, nil, false)
	underscoredScore, _ := Score(underscored, nil, graph.DeadnessReason{Kind: graph.ReasonUnreachable}, nil, false)

	assert.Greater(t, underscoredScore, plainScore)
}

func TestScoreDoubleLeadingUnderscoreDoesNotGetBonus(t *testing.T) {
	sym := &graph.TrackedSymbol{ID: 1, Name: "__private", Kind: graph.KindFunction}

	score, _ := Score(sym, nil, graph.DeadnessReason{Kind: graph.ReasonUnreachable}, nil, false)

	assert.Equal(t, 100, score)
}

func TestScoreTransitiveReasonStartsFromLowerBase(t *testing.T) {
	sym := &graph.TrackedSymbol{ID: 1, Name: "helper", Kind: graph.KindFunction}

	score, _ := Score(sym, nil, graph.DeadnessReason{Kind: graph.ReasonTransitive}, nil, false)

	assert.Equal(t, 90, score)
}

func TestScoreClampsToZero(t *testing.T) {
	sym := &graph.TrackedSymbol{
		ID: 1, Name: "default", Kind: graph.KindMethod,
		Exported: true, HasDecorators: true,
	}
	file := &graph.FileInfo{ID: 1, HasDynamicEval: true}

	patterns := []graph.DynamicPattern{{Kind: graph.PatternEval, Affects: []graph.SymbolId{1}}}

	score, class := Score(sym, file, graph.DeadnessReason{Kind: graph.ReasonTransitive}, patterns, true)

	assert.GreaterOrEqual(t, score, 0)
	if score == 0 {
		assert.Equal(t, graph.ConfidenceLow, class)
	}
}

func TestScoreDynamicPatternAffectingSymbolPenalizes(t *testing.T) {
	sym := &graph.TrackedSymbol{ID: 5, Name: "helper", Kind: graph.KindFunction}
	patterns := []graph.DynamicPattern{
		{Kind: graph.PatternEval, Affects: []graph.SymbolId{5}},
	}

	score, _ := Score(sym, nil, graph.DeadnessReason{Kind: graph.ReasonUnreachable}, patterns, false)

	assert.Equal(t, 60, score)
}

func TestScoreDynamicPatternPenaltiesMatchTable(t *testing.T) {
	cases := []struct {
		name string
		kind graph.DynamicPatternKind
		want int
	}{
		{"eval", graph.PatternEval, 60},
		{"function-constructor", graph.PatternFunctionConstructor, 60},
		{"reflect", graph.PatternReflect, 70},
		{"bracket-access", graph.PatternBracketAccess, 80},
		{"string-property-access", graph.PatternStringPropertyAccess, 80},
		{"object-iteration", graph.PatternObjectIteration, 85},
		{"dynamic-import", graph.PatternDynamicImport, 75},
		{"dynamic-require", graph.PatternDynamicRequire, 75},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sym := &graph.TrackedSymbol{ID: 5, Name: "helper", Kind: graph.KindFunction}
			patterns := []graph.DynamicPattern{{Kind: c.kind, Affects: []graph.SymbolId{5}}}

			score, _ := Score(sym, nil, graph.DeadnessReason{Kind: graph.ReasonUnreachable}, patterns, false)

			assert.Equal(t, c.want, score)
		})
	}
}

func TestScoreDynamicPatternNotAffectingSymbolIsIgnored(t *testing.T) {
	sym := &graph.TrackedSymbol{ID: 5, Name: "helper", Kind: graph.KindFunction}
	patterns := []graph.DynamicPattern{
		{Kind: graph.PatternEval, Affects: []graph.SymbolId{99}},
	}

	score, _ := Score(sym, nil, graph.DeadnessReason{Kind: graph.ReasonUnreachable}, patterns, false)

	assert.Equal(t, 100, score)
}
