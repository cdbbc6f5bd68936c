// Package poolsize computes the CPU-aware concurrency limit shared by the
// parser pool and the file-analysis worker pool. Both MUST derive from the
// same formula: a worker blocked waiting for a parser while the parser
// pool waits for a worker to release one is a deadlock, and that can only
// be ruled out if neither pool is ever smaller than the other.
package poolsize

import "runtime"

// Optimal returns min(max(runtime.NumCPU()*2, 4), 32).
func Optimal() int {
	size := runtime.NumCPU() * 2
	if size < 4 {
		size = 4
	}
	if size > 32 {
		size = 32
	}
	return size
}

// OptimalWithOverride returns override when positive, else Optimal().
func OptimalWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return Optimal()
}
