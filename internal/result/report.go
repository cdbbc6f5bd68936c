// Package result shapes the reachability and confidence stages' output
// into the final report handed to the CLI, watcher, and MCP front ends.
package result

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/ddcheck/ddcheck/internal/confidence"
	"github.com/ddcheck/ddcheck/internal/config"
	"github.com/ddcheck/ddcheck/internal/graph"
	"github.com/ddcheck/ddcheck/internal/reachability"
)

// Report is the complete output of one analysis run.
type Report struct {
	DeadSymbols []graph.DeadSymbol
	Warnings    []string

	FilesAnalyzed   int
	SymbolsAnalyzed int
}

// Build runs reachability and confidence scoring over g and assembles the
// final report. unresolvedImports/firstUnresolvedImport come from the
// assembler and are folded into a single summarized warning when non-zero.
func Build(g *graph.CallGraph, unresolvedImports int, firstUnresolvedImport string) Report {
	findings := reachability.Analyze(g)

	projectHasDynamicEval := false
	for _, f := range g.Files {
		if f.HasDynamicEval {
			projectHasDynamicEval = true
			break
		}
	}

	dead := make([]graph.DeadSymbol, 0, len(findings))
	for _, finding := range findings {
		sym := g.Symbols[finding.ID]
		if sym == nil {
			continue
		}
		file := g.Files[sym.FileID]
		score, class := confidence.Score(sym, file, finding.Reason, g.Patterns, projectHasDynamicEval)

		dead = append(dead, graph.DeadSymbol{
			Symbol:   *sym,
			Score:    score,
			Class:    class,
			Reason:   finding.Reason,
			KilledBy: finding.KilledBy,
		})
	}

	sort.Slice(dead, func(i, j int) bool {
		if dead[i].Symbol.Location.File != dead[j].Symbol.Location.File {
			return dead[i].Symbol.Location.File < dead[j].Symbol.Location.File
		}
		return dead[i].Symbol.Location.StartLine < dead[j].Symbol.Location.StartLine
	})

	var warnings []string
	if unresolvedImports > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d import(s) could not be resolved to a file in the project (first: %q); reachability through them is not tracked",
			unresolvedImports, firstUnresolvedImport))
	}

	return Report{
		DeadSymbols:     dead,
		Warnings:        warnings,
		FilesAnalyzed:   len(g.Files),
		SymbolsAnalyzed: len(g.Symbols),
	}
}

// FilterByConfidence returns only findings at or above min.
func FilterByConfidence(dead []graph.DeadSymbol, min graph.Confidence) []graph.DeadSymbol {
	out := make([]graph.DeadSymbol, 0, len(dead))
	for _, d := range dead {
		if d.Class >= min {
			out = append(out, d)
		}
	}
	return out
}

// IncludeTypes returns dead with type-like symbols (type aliases,
// interfaces) removed unless include is true.
func IncludeTypes(dead []graph.DeadSymbol, include bool) []graph.DeadSymbol {
	if include {
		return dead
	}
	out := make([]graph.DeadSymbol, 0, len(dead))
	for _, d := range dead {
		if !d.Symbol.Kind.IsTypeLike() {
			out = append(out, d)
		}
	}
	return out
}

// FilterIgnored drops findings whose name is in ignoreNames, or matches
// any of ignorePatterns (compiled as regular expressions). An invalid
// pattern is skipped rather than treated as a match-all, since config
// validation is responsible for rejecting it before analysis runs.
func FilterIgnored(dead []graph.DeadSymbol, ignoreNames []string, ignorePatterns []string) []graph.DeadSymbol {
	if len(ignoreNames) == 0 && len(ignorePatterns) == 0 {
		return dead
	}

	names := make(map[string]bool, len(ignoreNames))
	for _, n := range ignoreNames {
		names[n] = true
	}

	patterns := make([]*regexp.Regexp, 0, len(ignorePatterns))
	for _, p := range ignorePatterns {
		if re, err := config.CompilePattern(p); err == nil {
			patterns = append(patterns, re)
		}
	}

	out := make([]graph.DeadSymbol, 0, len(dead))
	for _, d := range dead {
		if names[d.Symbol.Name] {
			continue
		}
		ignored := false
		for _, re := range patterns {
			if re.MatchString(d.Symbol.Name) {
				ignored = true
				break
			}
		}
		if !ignored {
			out = append(out, d)
		}
	}
	return out
}

// CountByFile groups dead symbols by their declaring file path, for
// table/compact rendering.
func CountByFile(dead []graph.DeadSymbol) map[string][]graph.DeadSymbol {
	out := make(map[string][]graph.DeadSymbol)
	for _, d := range dead {
		out[d.Symbol.Location.File] = append(out[d.Symbol.Location.File], d)
	}
	return out
}

// explainedBy renders the human-readable reason text for a finding. A
// transitively-dead finding whose kill chain has more than one entry gets
// "referenced only by N dead symbol(s)", where N is the chain length; the
// table and JSON renderers surface this text through Explain.
func explainedBy(d graph.DeadSymbol) string {
	switch d.Reason.Kind {
	case graph.ReasonTransitive:
		if n := len(d.Reason.Chain); n > 1 {
			return fmt.Sprintf("referenced only by %d dead symbol(s)", n)
		}
		return "referenced only by another dead symbol"
	case graph.ReasonUnusedExport:
		return "exported but never imported"
	case graph.ReasonUnusedType:
		return "type never referenced"
	default:
		return d.Reason.Explanation
	}
}

// Explain is the exported form of explainedBy, used by the CLI renderers.
func Explain(d graph.DeadSymbol) string {
	return explainedBy(d)
}
