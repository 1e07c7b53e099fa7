// Package pipeline discovers RAW files under an input tree, extracts their
// embedded previews concurrently into a mirrored output tree, and reports
// per-file outcomes and batch totals.
//
// Flow: Discover (walk + filter + mirror paths) → CreateOutputDirs →
// Execute (semaphore-bounded goroutines, one Extractor call per file) →
// RunStats. Inventory is the read-only --list variant of the same walk.
package pipeline
