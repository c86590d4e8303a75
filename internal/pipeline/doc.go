// Package pipeline orchestrates a merge from collected paths to a tagged
// output file.
//
// Types:
//   - Deps: the external collaborators (metadata resolver, transcoder,
//     chapter importer, tag writer), swappable in tests (deps.go)
//   - RunStats: counters and totals for the summary report (stats.go)
//
// Functions:
//   - Run(ctx, cfg, log, deps) → (RunStats, error)
//     collect → resolve metadata → coalesce tags and build chapters →
//     build merge request → transcode → export chapters → write tags.
//     Steps run strictly in sequence; the first fatal error aborts the
//     remaining steps and nothing already written is rolled back.
package pipeline
