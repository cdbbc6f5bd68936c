package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ddcheck/ddcheck/internal/graph"
)

func symAt(file string, line uint32, name string) graph.DeadSymbol {
	return graph.DeadSymbol{Symbol: graph.TrackedSymbol{
		Name: name, Location: graph.Location{File: file, StartLine: line},
	}}
}

func TestDiffDeadDetectsAddedAndRemoved(t *testing.T) {
	prev := map[string]graph.DeadSymbol{
		dedupeKey(symAt("a.ts", 1, "foo")): symAt("a.ts", 1, "foo"),
	}
	cur := map[string]graph.DeadSymbol{
		dedupeKey(symAt("a.ts", 2, "bar")): symAt("a.ts", 2, "bar"),
	}

	added, removed := diffDead(prev, cur)

	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)
}

func TestDiffDeadNoChange(t *testing.T) {
	s := symAt("a.ts", 1, "foo")
	prev := map[string]graph.DeadSymbol{dedupeKey(s): s}
	cur := map[string]graph.DeadSymbol{dedupeKey(s): s}

	added, removed := diffDead(prev, cur)

	assert.Equal(t, 0, added)
	assert.Equal(t, 0, removed)
}
