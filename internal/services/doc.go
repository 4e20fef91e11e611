// Package services defines shared utilities consumed by the pipeline stages
// and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, stage names, and the file
//     currently being processed for logging and tracing.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent per-file action statuses.
//
// Use these helpers when wiring new stage logic so operational behaviour
// (error handling, observability) stays uniform across the pipeline.
package services
