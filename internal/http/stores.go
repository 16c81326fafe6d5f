package http

import (
	"context"

	"github.com/mrlokans/envport/internal/database/audit"
	"github.com/mrlokans/envport/internal/entities"
	"github.com/mrlokans/envport/internal/importexport"
	"github.com/mrlokans/envport/internal/services"
	"github.com/mrlokans/envport/internal/storage"
)

// This file consolidates the interfaces HTTP controllers depend on.
// *importexport.Service, *environments.Repository and *audit.Service
// satisfy them in production; tests use fakes.

// EnvironmentCounter reports how many environments are stored.
type EnvironmentCounter interface {
	Count(ctx context.Context) (int64, error)
}

// EnvironmentStore lists stored environments and switches the active one.
type EnvironmentStore interface {
	EnvironmentCounter
	List(ctx context.Context) ([]entities.EnvironmentRecord, error)
	Get(ctx context.Context, envUUID string) (*entities.Environment, error)
	GetActiveEnvironment(ctx context.Context) (*entities.Environment, error)
	SetActive(ctx context.Context, envUUID string) error
}

// ImportExportService runs the import/export entry points.
type ImportExportService interface {
	ImportBytes(ctx context.Context, data []byte, origin string) ([]services.ItemOutcome, error)
	ImportFromURL(ctx context.Context, url string) ([]services.ItemOutcome, error)
	Trigger(ctx context.Context, id importexport.MenuID, dialogs services.DialogProvider) error
	CopyRouteToClipboard(ctx context.Context, routeUUID string) error
}

// AuditLog provides read access to audit events.
type AuditLog interface {
	GetEvents(ctx context.Context, filter audit.Filter) ([]entities.AuditEvent, int64, error)
}

// SnapshotLister lists saved raw import payloads.
type SnapshotLister interface {
	List() ([]storage.FileInfo, error)
}

// SettingsAuditor records settings changes.
type SettingsAuditor interface {
	LogSettings(action, description string)
}
