package http

import (
	"github.com/mrlokans/envport/internal/database"
	"github.com/mrlokans/envport/internal/notify"
	"github.com/mrlokans/envport/internal/scheduler"
	"github.com/mrlokans/envport/internal/services"
	"github.com/mrlokans/envport/internal/settingsstore"
	"github.com/mrlokans/envport/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database     *database.Database
	ImportExport ImportExportService
	Environments EnvironmentStore
	Toasts       *notify.ToastQueue
	Clipboard    services.Clipboard

	// Audit log and import snapshots (optional)
	AuditLog  AuditLog
	Snapshots SnapshotLister

	// Remote sync (optional)
	SettingsStore *settingsstore.SettingsStore
	Scheduler     *scheduler.RemoteSyncScheduler
	Settings      SettingsAuditor

	// Reject API writes when set
	ReadOnly bool

	// Task queue client (optional)
	TaskClient *tasks.Client

	// Application info
	Version string
}
