package exporters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mrlokans/envport/internal/entities"
	"github.com/mrlokans/envport/internal/messages"
	"github.com/mrlokans/envport/internal/services"
)

var (
	// ErrExportFailed wraps every collaborator failure during an export.
	ErrExportFailed = errors.New("export failed")
	// ErrNoRoute is returned when an export document holds no route item.
	ErrNoRoute = errors.New("export document contains no route")
)

type Format string

const (
	FormatNative    Format = "native"
	FormatOpenAPIV3 Format = "openapi-v3"
)

// ParseFormat maps user input to a Format. The empty string means native.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "native", "json":
		return FormatNative, nil
	case "openapi", "openapi-v3", "openapi3":
		return FormatOpenAPIV3, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

type ExportStatus string

const (
	StatusExported  ExportStatus = "exported"
	StatusNoActive  ExportStatus = "no_active_environment"
	StatusCancelled ExportStatus = "cancelled"
	StatusFailed    ExportStatus = "failed"
)

// ExportOutcome describes how an export ended.
type ExportOutcome struct {
	Status          ExportStatus `json:"status"`
	EnvironmentUUID string       `json:"environment_uuid,omitempty"`
	Path            string       `json:"path,omitempty"`
	Err             error        `json:"-"`
}

// formatCodes holds the notifications emitted around one export format.
type formatCodes struct {
	dialogTitle string
	starting    messages.Code
	success     messages.Code
	failure     messages.Code
}

var codesByFormat = map[Format]formatCodes{
	FormatNative: {
		dialogTitle: "Export environment",
		starting:    messages.ExportEnvironment,
		success:     messages.ExportEnvironmentSuccess,
		failure:     messages.ExportEnvironmentError,
	},
	FormatOpenAPIV3: {
		dialogTitle: "Export environment to OpenAPI JSON",
		starting:    messages.OpenAPIExport,
		success:     messages.OpenAPIExportSuccess,
		failure:     messages.OpenAPIExportError,
	},
}

// ExportPipeline writes the active environment to a user-chosen file.
type ExportPipeline struct {
	store      services.EnvironmentStore
	converter  services.Converter
	files      services.FileStore
	notifier   services.Notifier
	serializer NativeSerializer
}

func NewExportPipeline(
	store services.EnvironmentStore,
	converter services.Converter,
	files services.FileStore,
	notifier services.Notifier,
	serializer NativeSerializer,
) *ExportPipeline {
	return &ExportPipeline{
		store:      store,
		converter:  converter,
		files:      files,
		notifier:   notifier,
		serializer: serializer,
	}
}

// ExportActive exports the active environment in format.
//
// Having no active environment is a normal state: nothing is emitted and no
// collaborator is called. Otherwise a starting notification is followed by
// exactly one success or failure notification, unless the save dialog is
// cancelled. Collaborator failures are reported and returned wrapped in
// ErrExportFailed.
func (p *ExportPipeline) ExportActive(ctx context.Context, format Format, dialogs services.DialogProvider) (ExportOutcome, error) {
	codes, ok := codesByFormat[format]
	if !ok {
		return ExportOutcome{Status: StatusFailed}, fmt.Errorf("%w: unknown format %q", ErrExportFailed, format)
	}

	env, err := p.store.GetActiveEnvironment(ctx)
	if err != nil {
		p.notifier.Notify(ctx, slog.LevelError, codes.failure, messages.Params{Error: err})
		return ExportOutcome{Status: StatusFailed, Err: err}, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	if env == nil {
		return ExportOutcome{Status: StatusNoActive}, nil
	}

	outcome := ExportOutcome{EnvironmentUUID: env.UUID}
	p.notifier.Notify(ctx, slog.LevelInfo, codes.starting, messages.Params{EnvironmentUUID: env.UUID})

	path, ok := dialogs.ShowSaveDialog(ctx, codes.dialogTitle)
	if !ok || path == "" {
		outcome.Status = StatusCancelled
		return outcome, nil
	}
	outcome.Path = path

	if err := p.write(env, format, path); err != nil {
		p.notifier.Notify(ctx, slog.LevelError, codes.failure, messages.Params{
			EnvironmentUUID: env.UUID,
			Error:           err,
		})
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	p.notifier.Notify(ctx, slog.LevelInfo, codes.success, messages.Params{EnvironmentName: env.Name})
	outcome.Status = StatusExported
	return outcome, nil
}

func (p *ExportPipeline) write(env *entities.Environment, format Format, path string) (err error) {
	// Converter panics are reported as export failures.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("converter panicked: %v", r)
		}
	}()

	var data []byte
	switch format {
	case FormatOpenAPIV3:
		data, err = p.converter.ToOpenAPI(env)
	default:
		data, err = p.serializer.Environment(env)
	}
	if err != nil {
		return err
	}
	return p.files.WriteFile(path, data)
}
