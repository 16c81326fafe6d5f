package services

import (
	"context"
	"log/slog"

	"github.com/mrlokans/envport/internal/entities"
	"github.com/mrlokans/envport/internal/messages"
)

// EnvironmentStore is the single owner of persisted environments.
// Use this interface when you need to read the active environment or commit new ones.
type EnvironmentStore interface {
	// GetActiveEnvironment returns nil without error when nothing is active.
	GetActiveEnvironment(ctx context.Context) (*entities.Environment, error)
	// AddEnvironment commits env and returns the stored version, whose UUIDs
	// may differ from the input when they collided with existing ones.
	AddEnvironment(ctx context.Context, env *entities.Environment) (*entities.Environment, error)
	// AddRoute appends route to the environment identified by envUUID.
	AddRoute(ctx context.Context, envUUID string, route entities.Route) (*entities.Route, error)
}

// Converter translates environments to and from OpenAPI documents.
type Converter interface {
	ToOpenAPI(env *entities.Environment) ([]byte, error)
	// FromOpenAPI returns nil without error when the file holds no usable API.
	FromOpenAPI(ctx context.Context, path string) (*entities.Environment, error)
}

// DialogKind is the kind of entry an open dialog selects.
type DialogKind string

const (
	DialogKindFile      DialogKind = "openFile"
	DialogKindDirectory DialogKind = "openDirectory"
)

// DialogProvider asks the user for paths. A false second return means the
// dialog was cancelled, which is never an error.
type DialogProvider interface {
	ShowOpenDialog(ctx context.Context, title string, kind DialogKind) (string, bool)
	ShowSaveDialog(ctx context.Context, title string) (string, bool)
}

// Fetcher retrieves remote documents.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// FileStore reads and writes whole files.
type FileStore interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// Clipboard holds a single text value.
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(ctx context.Context, text string) error
}

// Notifier formats a catalog entry and routes it to the log and toast channels.
// The formatted record is returned so callers can surface it directly.
type Notifier interface {
	Notify(ctx context.Context, level slog.Level, code messages.Code, params messages.Params) messages.Record
}
