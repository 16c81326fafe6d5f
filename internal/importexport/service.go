// Package importexport exposes every import/export entry point of the
// application behind one Service: URL, file, clipboard and OpenAPI imports,
// native and OpenAPI exports, and clipboard copies.
//
// Entry points are serialized by a single operation lock, so two imports or
// exports never interleave against the store.
package importexport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mrlokans/envport/internal/entities"
	"github.com/mrlokans/envport/internal/exporters"
	"github.com/mrlokans/envport/internal/importers"
	"github.com/mrlokans/envport/internal/messages"
	"github.com/mrlokans/envport/internal/migrations"
	"github.com/mrlokans/envport/internal/openapi"
	"github.com/mrlokans/envport/internal/services"
)

var (
	// ErrClipboardFormat is returned when the clipboard holds something other
	// than an export document.
	ErrClipboardFormat = errors.New("clipboard content is not a valid export document")
	// ErrNoActiveEnvironment is returned by operations that need an active environment.
	ErrNoActiveEnvironment = errors.New("no active environment")
	// ErrRouteNotFound is returned when a route is not part of the active environment.
	ErrRouteNotFound = errors.New("route not found in the active environment")
)

// Store is the environment store used by the entry points.
type Store interface {
	services.EnvironmentStore
	Count(ctx context.Context) (int64, error)
}

// Auditor records completed operations.
type Auditor interface {
	LogImport(source, origin string, outcomes []services.ItemOutcome, err error)
	LogExport(format, envUUID, path string, err error)
	LogClipboard(action, entityUUID string, err error)
}

// Snapshotter keeps a copy of raw import payloads.
type Snapshotter interface {
	Save(data []byte) (string, error)
}

// Deps holds the collaborators of a Service. Auditor, Snapshotter and Logger
// are optional.
type Deps struct {
	Store       Store
	Converter   services.Converter
	Files       services.FileStore
	Clipboard   services.Clipboard
	Fetcher     services.Fetcher
	Notifier    services.Notifier
	Serializer  exporters.NativeSerializer
	Auditor     Auditor
	Snapshotter Snapshotter
	Logger      *slog.Logger
}

type Service struct {
	mu sync.Mutex

	store       Store
	converter   services.Converter
	files       services.FileStore
	clipboard   services.Clipboard
	fetcher     services.Fetcher
	notifier    services.Notifier
	serializer  exporters.NativeSerializer
	auditor     Auditor
	snapshotter Snapshotter
	logger      *slog.Logger

	pipeline *importers.Pipeline
	exporter *exporters.ExportPipeline
}

func NewService(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	auditor := deps.Auditor
	if auditor == nil {
		auditor = noopAuditor{}
	}

	return &Service{
		store:       deps.Store,
		converter:   deps.Converter,
		files:       deps.Files,
		clipboard:   deps.Clipboard,
		fetcher:     deps.Fetcher,
		notifier:    deps.Notifier,
		serializer:  deps.Serializer,
		auditor:     auditor,
		snapshotter: deps.Snapshotter,
		logger:      logger.With("component", "importexport"),
		pipeline:    importers.NewPipeline(deps.Store, deps.Notifier),
		exporter:    exporters.NewExportPipeline(deps.Store, deps.Converter, deps.Files, deps.Notifier, deps.Serializer),
	}
}

// ImportFromURL downloads an export document and imports it.
func (s *Service) ImportFromURL(ctx context.Context, url string) ([]services.ItemOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifier.Notify(ctx, slog.LevelInfo, messages.ImportFromURL, messages.Params{URL: url})
	outcomes, err := s.pipeline.ImportFrom(ctx, s.snapshot(importers.URLSource{Fetcher: s.fetcher, URL: url}))
	s.auditor.LogImport("url", url, outcomes, err)
	return outcomes, err
}

// ImportFile asks for a file and imports it. A cancelled dialog imports nothing.
func (s *Service) ImportFile(ctx context.Context, dialogs services.DialogProvider) ([]services.ItemOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, ok := dialogs.ShowOpenDialog(ctx, "Import from file (JSON)", services.DialogKindFile)
	if !ok || path == "" {
		return nil, nil
	}

	outcomes, err := s.pipeline.ImportFrom(ctx, s.snapshot(importers.FileSource{Files: s.files, Path: path}))
	s.auditor.LogImport("file", path, outcomes, err)
	return outcomes, err
}

// ImportBytes imports an export document already in memory. origin only
// appears in the audit trail.
func (s *Service) ImportBytes(ctx context.Context, data []byte, origin string) ([]services.ItemOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcomes, err := s.pipeline.ImportFrom(ctx, s.snapshot(importers.BytesSource(data)))
	s.auditor.LogImport("upload", origin, outcomes, err)
	return outcomes, err
}

// ImportOpenAPIFile asks for an OpenAPI or Swagger file, converts it and
// stores the resulting environment. A cancelled dialog imports nothing.
func (s *Service) ImportOpenAPIFile(ctx context.Context, dialogs services.DialogProvider) (*entities.Environment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, ok := dialogs.ShowOpenDialog(ctx, "Import OpenAPI specification file (JSON or YAML)", services.DialogKindFile)
	if !ok || path == "" {
		return nil, nil
	}

	s.notifier.Notify(ctx, slog.LevelInfo, messages.OpenAPIImport, messages.Params{FilePath: path})

	env, err := s.converter.FromOpenAPI(ctx, path)
	if err == nil {
		env, err = s.store.AddEnvironment(ctx, env)
	}

	var outcomes []services.ItemOutcome
	switch {
	case errors.Is(err, openapi.ErrUnsupportedVersion):
		s.notifier.Notify(ctx, slog.LevelError, messages.OpenAPIImportErrorWrongVersion, messages.Params{FilePath: path})
	case err != nil:
		s.notifier.Notify(ctx, slog.LevelError, messages.OpenAPIImportError, messages.Params{FilePath: path, Error: err})
	default:
		s.notifier.Notify(ctx, slog.LevelInfo, messages.OpenAPIImportSuccess, messages.Params{EnvironmentName: env.Name})
		outcomes = []services.ItemOutcome{{
			Type:   entities.ImportItemEnvironment,
			UUID:   env.UUID,
			Name:   env.Name,
			Status: services.OutcomeCommitted,
		}}
	}

	s.auditor.LogImport("openapi", path, outcomes, err)
	if err != nil {
		return nil, err
	}
	return env, nil
}

// ExportOpenAPIFile exports the active environment as OpenAPI v3 JSON.
func (s *Service) ExportOpenAPIFile(ctx context.Context, dialogs services.DialogProvider) (exporters.ExportOutcome, error) {
	return s.export(ctx, exporters.FormatOpenAPIV3, dialogs)
}

// ExportFile exports the active environment as a native export document.
func (s *Service) ExportFile(ctx context.Context, dialogs services.DialogProvider) (exporters.ExportOutcome, error) {
	return s.export(ctx, exporters.FormatNative, dialogs)
}

func (s *Service) export(ctx context.Context, format exporters.Format, dialogs services.DialogProvider) (exporters.ExportOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome, err := s.exporter.ExportActive(ctx, format, dialogs)
	switch outcome.Status {
	case exporters.StatusExported, exporters.StatusFailed:
		s.auditor.LogExport(string(format), outcome.EnvironmentUUID, outcome.Path, err)
	}
	return outcome, err
}

// NewEnvironmentFromClipboard imports the export document held by the clipboard.
// Anything else on the clipboard is reported as an error.
func (s *Service) NewEnvironmentFromClipboard(ctx context.Context) ([]services.ItemOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src := importers.ClipboardSource{Clipboard: s.clipboard}
	raw, err := src.Acquire(ctx)
	if err == nil && !importers.IsImportable(raw) {
		err = ErrClipboardFormat
	}
	if err != nil {
		code, params := src.FailureNotice(err)
		s.notifier.Notify(ctx, slog.LevelError, code, params)
		s.auditor.LogImport("clipboard", "", nil, err)
		return nil, err
	}

	s.saveSnapshot(raw)
	outcomes, err := s.pipeline.Import(ctx, raw)
	s.auditor.LogImport("clipboard", "", outcomes, err)
	return outcomes, err
}

// NewRouteFromClipboard adds the route held by the clipboard to the active environment.
func (s *Service) NewRouteFromClipboard(ctx context.Context) (*entities.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.store.GetActiveEnvironment(ctx)
	if err == nil && env == nil {
		err = ErrNoActiveEnvironment
	}
	if err != nil {
		s.notifier.Notify(ctx, slog.LevelError, messages.NewRouteClipboardError, messages.Params{Error: err})
		return nil, err
	}

	route, err := s.routeFromClipboard(ctx)
	if err == nil {
		route, err = s.store.AddRoute(ctx, env.UUID, *route)
	}
	if err != nil {
		s.notifier.Notify(ctx, slog.LevelError, messages.NewRouteClipboardError, messages.Params{Error: err})
		s.auditor.LogClipboard("paste_route", env.UUID, err)
		return nil, err
	}

	s.notifier.Notify(ctx, slog.LevelInfo, messages.NewRouteClipboardSuccess, messages.Params{
		RouteUUID:       route.UUID,
		EnvironmentUUID: env.UUID,
	})
	s.auditor.LogClipboard("paste_route", route.UUID, nil)
	return route, nil
}

func (s *Service) routeFromClipboard(ctx context.Context) (*entities.Route, error) {
	raw, err := importers.ClipboardSource{Clipboard: s.clipboard}.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	if !importers.IsImportable(raw) {
		return nil, ErrClipboardFormat
	}
	route, err := exporters.DecodeRoute(raw)
	if err != nil {
		return nil, err
	}
	if err := migrations.ValidateRoute(route); err != nil {
		return nil, err
	}
	return route, nil
}

// CopyEnvironmentToClipboard writes the active environment to the clipboard
// as an export document. Without an active environment nothing happens.
func (s *Service) CopyEnvironmentToClipboard(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.store.GetActiveEnvironment(ctx)
	if err != nil {
		s.notifier.Notify(ctx, slog.LevelError, messages.CopyEnvironmentClipboardError, messages.Params{Error: err})
		return err
	}
	if env == nil {
		return nil
	}

	s.notifier.Notify(ctx, slog.LevelInfo, messages.CopyEnvironmentClipboard, messages.Params{EnvironmentUUID: env.UUID})

	data, err := s.serializer.Environment(env)
	if err == nil {
		err = s.clipboard.WriteText(ctx, string(data))
	}
	if err != nil {
		s.notifier.Notify(ctx, slog.LevelError, messages.CopyEnvironmentClipboardError, messages.Params{Error: err})
		s.auditor.LogClipboard("copy_environment", env.UUID, err)
		return err
	}

	s.notifier.Notify(ctx, slog.LevelInfo, messages.CopyEnvironmentClipboardSuccess, messages.Params{EnvironmentUUID: env.UUID})
	s.auditor.LogClipboard("copy_environment", env.UUID, nil)
	return nil
}

// CopyRouteToClipboard writes one route of the active environment to the
// clipboard as an export document.
func (s *Service) CopyRouteToClipboard(ctx context.Context, routeUUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifier.Notify(ctx, slog.LevelInfo, messages.CopyRouteClipboard, messages.Params{RouteUUID: routeUUID})

	err := s.copyRoute(ctx, routeUUID)
	if err != nil {
		s.notifier.Notify(ctx, slog.LevelError, messages.CopyRouteClipboardError, messages.Params{Error: err})
		s.auditor.LogClipboard("copy_route", routeUUID, err)
		return err
	}

	s.notifier.Notify(ctx, slog.LevelInfo, messages.CopyRouteClipboardSuccess, messages.Params{RouteUUID: routeUUID})
	s.auditor.LogClipboard("copy_route", routeUUID, nil)
	return nil
}

func (s *Service) copyRoute(ctx context.Context, routeUUID string) error {
	env, err := s.store.GetActiveEnvironment(ctx)
	if err != nil {
		return err
	}
	if env == nil {
		return ErrNoActiveEnvironment
	}

	for _, route := range env.Routes {
		if route.UUID != routeUUID {
			continue
		}
		data, err := s.serializer.Route(route)
		if err != nil {
			return err
		}
		return s.clipboard.WriteText(ctx, string(data))
	}
	return fmt.Errorf("%w: %s", ErrRouteNotFound, routeUUID)
}

// SeedDemoEnvironment adds the demo environment when the store is empty.
// It reports whether an environment was added.
func (s *Service) SeedDemoEnvironment(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.store.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count environments: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	s.notifier.Notify(ctx, slog.LevelInfo, messages.FirstLoadDemoEnvironment, messages.Params{})
	if _, err := s.store.AddEnvironment(ctx, migrations.NewDemoEnvironment()); err != nil {
		return false, fmt.Errorf("failed to add demo environment: %w", err)
	}
	return true, nil
}

// snapshot wraps src so that acquired payloads are kept by the snapshotter.
func (s *Service) snapshot(src importers.Source) importers.Source {
	if s.snapshotter == nil {
		return src
	}
	return snapshotSource{Source: src, save: s.saveSnapshot}
}

func (s *Service) saveSnapshot(raw []byte) {
	if s.snapshotter == nil {
		return
	}
	name, err := s.snapshotter.Save(raw)
	if err != nil {
		s.logger.Warn("failed to save import snapshot", "error", err)
		return
	}
	s.logger.Debug("saved import snapshot", "file", name)
}

type snapshotSource struct {
	importers.Source
	save func([]byte)
}

func (s snapshotSource) Acquire(ctx context.Context) ([]byte, error) {
	raw, err := s.Source.Acquire(ctx)
	if err == nil {
		s.save(raw)
	}
	return raw, err
}

type noopAuditor struct{}

func (noopAuditor) LogImport(string, string, []services.ItemOutcome, error) {}
func (noopAuditor) LogExport(string, string, string, error) {}
func (noopAuditor) LogClipboard(string, string, error) {}
