// Package reachability computes the live set reachable from a
// graph.CallGraph's entry points and partitions everything else into
// root-dead (never referenced at all) and transitively-dead (referenced
// only by other dead symbols) findings.
package reachability

import "github.com/ddcheck/ddcheck/internal/graph"

// Finding is one dead symbol before confidence scoring.
type Finding struct {
	ID       graph.SymbolId
	Reason   graph.DeadnessReason
	KilledBy graph.SymbolId
}

// Analyze runs BFS from g's entry points over OutgoingRefs, then
// classifies every symbol BFS never reached.
func Analyze(g *graph.CallGraph) []Finding {
	live := bfsLive(g)

	unreachable := make(map[graph.SymbolId]bool)
	for id := range g.Symbols {
		if !live[id] {
			unreachable[id] = true
		}
	}

	killedBy := make(map[graph.SymbolId]graph.SymbolId)
	var rootDead []graph.SymbolId
	var transitive []graph.SymbolId

	for id := range unreachable {
		var referencers []graph.SymbolId
		for _, r := range g.IncomingRefs[id] {
			if unreachable[r] {
				referencers = append(referencers, r)
			}
		}
		if len(referencers) == 0 {
			rootDead = append(rootDead, id)
		} else {
			transitive = append(transitive, id)
			killedBy[id] = referencers[0]
		}
	}

	findings := make([]Finding, 0, len(rootDead)+len(transitive))
	for _, id := range rootDead {
		findings = append(findings, Finding{
			ID:       id,
			Reason:   rootDeadReason(g, id),
			KilledBy: graph.NoSymbol,
		})
	}
	for _, id := range transitive {
		findings = append(findings, Finding{
			ID:       id,
			Reason:   graph.DeadnessReason{Kind: graph.ReasonTransitive, Chain: buildChain(id, killedBy)},
			KilledBy: killedBy[id],
		})
	}

	return findings
}

// rootDeadReason classifies a root-dead symbol: exported symbols are
// UnusedExport, type-like symbols are UnusedType, and everything else
// falls back to Unreachable, matching the ground-truth propagator.
func rootDeadReason(g *graph.CallGraph, id graph.SymbolId) graph.DeadnessReason {
	sym := g.Symbols[id]
	switch {
	case sym != nil && sym.Exported:
		return graph.DeadnessReason{Kind: graph.ReasonUnusedExport}
	case sym != nil && sym.Kind.IsTypeLike():
		return graph.DeadnessReason{Kind: graph.ReasonUnusedType}
	default:
		return graph.DeadnessReason{Kind: graph.ReasonUnreachable, Explanation: "never referenced"}
	}
}

func bfsLive(g *graph.CallGraph) map[graph.SymbolId]bool {
	live := make(map[graph.SymbolId]bool, len(g.EntryPoints))
	queue := make([]graph.SymbolId, 0, len(g.EntryPoints))
	for id := range g.EntryPoints {
		if !live[id] {
			live[id] = true
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range g.OutgoingRefs[id] {
			if !live[next] {
				live[next] = true
				queue = append(queue, next)
			}
		}
	}

	return live
}

// buildChain walks killedBy pointers from id toward a root-dead ancestor
// (or until a cycle is detected), nearest-first.
func buildChain(id graph.SymbolId, killedBy map[graph.SymbolId]graph.SymbolId) []graph.SymbolId {
	chain := []graph.SymbolId{}
	visited := map[graph.SymbolId]bool{id: true}

	current := id
	for depth := 0; depth < 64; depth++ {
		next, ok := killedBy[current]
		if !ok || visited[next] {
			break
		}
		chain = append(chain, next)
		visited[next] = true
		current = next
	}

	return chain
}
