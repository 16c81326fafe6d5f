// Package importers turns export documents into committed environments.
//
// # Architecture
//
// The import flow is:
//
//	Source → raw bytes → JSON parse → document schema → Gate (per item) → Store
//
// A Source (URL, file, clipboard, in-memory bytes) produces raw bytes. The
// Pipeline parses them, checks them against the export document schema and
// feeds every item through AcceptItem, which decides per item:
//
//   - ActionSkip: environment stamped with a schema newer than
//     migrations.HighestMigrationID. A warning is emitted and nothing is stored.
//   - ActionProceed: environment migrated to the current schema and validated.
//     If validation fails the environment is repaired and a warning is emitted
//     before the commit.
//   - ActionIgnore: any other item type. Passed over without a notification.
//
// # Error handling
//
//   - Acquisition failure: one error notification, ErrAcquire, nothing stored.
//   - Invalid JSON: one error notification, ErrParse, nothing stored.
//   - Valid JSON in another format: no notification, no outcomes, no error.
//   - Commit failure: error notification for that item, processing continues.
//
// # Example Usage
//
//	pipeline := importers.NewPipeline(store, notifier)
//
//	outcomes, err := pipeline.ImportFrom(ctx, importers.FileSource{Files: files, Path: path})
//	summary := services.Summarize(outcomes)
package importers
