package parser

import "github.com/ddcheck/ddcheck/internal/poolsize"

// getDefaultPoolSize delegates to poolsize.Optimal so the parser pool and
// the file-analysis worker pool always agree on capacity.
func getDefaultPoolSize() int {
	return poolsize.Optimal()
}

func getPoolSize(override int) int {
	return poolsize.OptimalWithOverride(override)
}
