// Package runutil holds the small run-time decisions shared by the commands.
package runutil

import "runtime"

// ComputeOverlap returns the window overlap that keeps every peptide of
// length up to maxPeptideLen whole in at least one window.
func ComputeOverlap(maxPeptideLen int) int {
	if maxPeptideLen <= 1 {
		return 0
	}
	return maxPeptideLen - 1
}

// ValidateChunking decides whether proteins are split into windows and
// returns (chunkSize, overlap, warnings).
//   - chunkSize <= 0 disables chunking
//   - chunkSize must exceed 2x the longest peptide, otherwise windows
//     would mostly repeat the overlap; chunking is disabled with a warning
func ValidateChunking(chunkSize, maxPeptideLen int) (int, int, []string) {
	if chunkSize <= 0 {
		return 0, 0, nil
	}
	if chunkSize <= 2*maxPeptideLen {
		return 0, 0, []string{"--chunk-size must be > 2x the longest peptide; chunking disabled"}
	}
	return chunkSize, ComputeOverlap(maxPeptideLen), nil
}

// EffectiveThreads maps a non-positive thread count to the CPU count.
func EffectiveThreads(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}
