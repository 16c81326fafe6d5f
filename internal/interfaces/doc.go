// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - EnvironmentStore: Active environment, commits and route appends (internal/services/interfaces.go)
//   - FileStore: Whole-file reads and writes (internal/services/interfaces.go)
//   - Store: EnvironmentStore plus counting, used by the entry points (internal/importexport/service.go)
//
// ## Desktop Stand-ins
//
//   - Clipboard: Single text value (internal/services/interfaces.go)
//   - DialogProvider: Open and save path prompts (internal/services/interfaces.go)
//
// ## External Service Interfaces
//
//   - Fetcher: Remote export documents (internal/services/interfaces.go)
//   - Converter: OpenAPI conversion (internal/services/interfaces.go)
//
// ## Notification Interfaces
//
//   - Notifier: Catalog records to log and toasts (internal/services/interfaces.go)
//   - ToastSink: Toast delivery (internal/notify/dispatcher.go)
//
// # Adding a New Import Source
//
//  1. Implement Source in internal/importers/sources.go
//
//     type S3Source struct {
//         Bucket, Key string
//     }
//
//     func (s S3Source) Acquire(ctx context.Context) ([]byte, error)
//     func (s S3Source) FailureNotice(err error) (messages.Code, messages.Params)
//
//     var _ importers.Source = S3Source{}
//
//  2. Add an entry point to importexport.Service that runs the pipeline with it
//
//  3. Expose it through a menu id, CLI command or HTTP route
//
// # Adding a New Export Format
//
//  1. Add a Format constant in internal/exporters/
//
//  2. Serialize it in the export pipeline
//
//  3. Register it in ParseFormat so the CLI and menu accept it
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
