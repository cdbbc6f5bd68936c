// Package confidence assigns an additive confidence score to each
// dead-code finding: how sure the analysis is that removing the symbol is
// actually safe.
package confidence

import "github.com/ddcheck/ddcheck/internal/graph"

// dynamicPatternPenalty gives the point deduction applied to a dead symbol
// for each observed pattern of that kind whose Affects list names that
// exact symbol; patterns that do not name the symbol cost it nothing here.
var dynamicPatternPenalty = map[graph.DynamicPatternKind]int{
	graph.PatternEval:                 40,
	graph.PatternFunctionConstructor:  40,
	graph.PatternReflect:              30,
	graph.PatternBracketAccess:        20,
	graph.PatternStringPropertyAccess: 20,
	graph.PatternObjectIteration:      15,
	graph.PatternDynamicImport:        25,
	graph.PatternDynamicRequire:       25,
}

const (
	baseScoreRootDead         = 100
	baseScoreTransitive       = 95
	penaltyHasDecorators      = 20
	penaltyExported           = 10
	penaltyFileHasDynamicEval = 30
	penaltyAnyFileDynamicEval = 15
	penaltyTransitiveReason   = 5
	bonusTypeLike             = 5
	bonusLeadingUnderscore    = 5
	penaltyDefaultExportName  = 10
	penaltyMethodKind         = 5
)

// Score computes the confidence score and class for one finding. The base
// score is 100 for a root-dead finding and 95 for a transitively-dead one,
// per the ground-truth propagator's create_dead_symbol/create_transitive_dead_symbol
// split; rule 5 below is a further deduction on top of that lower base.
// projectHasDynamicEval is true if any file in the project has dynamic
// eval, regardless of which file owns sym.
func Score(sym *graph.TrackedSymbol, file *graph.FileInfo, reason graph.DeadnessReason, patterns []graph.DynamicPattern, projectHasDynamicEval bool) (int, graph.Confidence) {
	score := baseScoreRootDead
	if reason.Kind == graph.ReasonTransitive {
		score = baseScoreTransitive
	}

	if sym.HasDecorators {
		score -= penaltyHasDecorators
	}
	if sym.Exported {
		score -= penaltyExported
	}
	if file != nil && file.HasDynamicEval {
		score -= penaltyFileHasDynamicEval
	} else if projectHasDynamicEval {
		score -= penaltyAnyFileDynamicEval
	}
	if reason.Kind == graph.ReasonTransitive {
		score -= penaltyTransitiveReason
	}
	if sym.Kind.IsTypeLike() {
		score += bonusTypeLike
	}
	if hasSingleLeadingUnderscore(sym.Name) {
		score += bonusLeadingUnderscore
	}
	if sym.Name == "default" {
		score -= penaltyDefaultExportName
	}
	if sym.Kind == graph.KindMethod {
		score -= penaltyMethodKind
	}

	for _, pat := range patterns {
		if !affects(pat, sym.ID) {
			continue
		}
		if delta, ok := dynamicPatternPenalty[pat.Kind]; ok {
			score -= delta
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score, graph.ClassifyConfidence(score)
}

func hasSingleLeadingUnderscore(name string) bool {
	if len(name) < 2 {
		return len(name) == 1 && name[0] == '_'
	}
	return name[0] == '_' && name[1] != '_'
}

func affects(pat graph.DynamicPattern, id graph.SymbolId) bool {
	for _, a := range pat.Affects {
		if a == id {
			return true
		}
	}
	return false
}
