package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/envport/internal/audit"
	"github.com/mrlokans/envport/internal/clipboard"
	"github.com/mrlokans/envport/internal/database/environments"
	"github.com/mrlokans/envport/internal/dialogs"
	"github.com/mrlokans/envport/internal/fetch"
	"github.com/mrlokans/envport/internal/http"
	"github.com/mrlokans/envport/internal/importers"
	"github.com/mrlokans/envport/internal/importexport"
	"github.com/mrlokans/envport/internal/notify"
	"github.com/mrlokans/envport/internal/openapi"
	"github.com/mrlokans/envport/internal/scheduler"
	"github.com/mrlokans/envport/internal/services"
	"github.com/mrlokans/envport/internal/storage"
	"github.com/mrlokans/envport/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// EnvironmentStore implementations
var _ services.EnvironmentStore = (*environments.Repository)(nil)
var _ importexport.Store = (*environments.Repository)(nil)
var _ http.EnvironmentStore = (*environments.Repository)(nil)

// FileStore implementations
var _ services.FileStore = (*storage.Files)(nil)

// =============================================================================
// Desktop Stand-ins
// =============================================================================

// Clipboard implementations
var _ services.Clipboard = (*clipboard.Memory)(nil)
var _ services.Clipboard = (*clipboard.File)(nil)

// DialogProvider implementations
var _ services.DialogProvider = dialogs.Preset{}

// =============================================================================
// External Services
// =============================================================================

// Fetcher implementations
var _ services.Fetcher = (*fetch.Client)(nil)

// Converter implementations
var _ services.Converter = (*openapi.Converter)(nil)

// =============================================================================
// Notifications
// =============================================================================

var _ services.Notifier = (*notify.Dispatcher)(nil)
var _ notify.ToastSink = (*notify.ToastQueue)(nil)
var _ notify.ToastSink = (*notify.Collector)(nil)
var _ notify.ToastSink = (*notify.WriterSink)(nil)

// =============================================================================
// Audit
// =============================================================================

var _ importexport.Auditor = (*audit.Service)(nil)
var _ importexport.Snapshotter = (*audit.Snapshotter)(nil)
var _ http.AuditLog = (*audit.Service)(nil)
var _ http.SnapshotLister = (*audit.Snapshotter)(nil)
var _ http.SettingsAuditor = (*audit.Service)(nil)
var _ scheduler.SyncAuditor = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ tasks.SnapshotPruner = (*audit.Snapshotter)(nil)

// =============================================================================
// Import/Export Entry Points
// =============================================================================

var _ http.ImportExportService = (*importexport.Service)(nil)
var _ scheduler.URLImporter = (*importexport.Service)(nil)
var _ tasks.URLImporter = (*importexport.Service)(nil)
var _ http.TaskStatusReader = (*tasks.Client)(nil)

// Source implementations
var _ importers.Source = importers.URLSource{}
var _ importers.Source = importers.FileSource{}
var _ importers.Source = importers.ClipboardSource{}
var _ importers.Source = importers.BytesSource(nil)
