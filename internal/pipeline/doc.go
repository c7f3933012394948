// Package pipeline fans protein windows out to scanning workers,
// deduplicates matches found twice in overlapping windows, and calls a
// visit callback from a single goroutine.
//
// The only contract to implement is Scanner (NewState + ScanWindow).
// This keeps the pipeline swappable and testable.
package pipeline
