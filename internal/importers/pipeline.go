package importers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mrlokans/envport/internal/entities"
	"github.com/mrlokans/envport/internal/messages"
	"github.com/mrlokans/envport/internal/services"
)

var (
	// ErrParse is returned when imported bytes are not valid JSON.
	ErrParse = errors.New("imported data is not valid JSON")
	// ErrAcquire is returned when the import source could not be read.
	ErrAcquire = errors.New("failed to acquire import data")
)

// Pipeline handles the common import workflow:
// parse → check document shape → gate each item → commit.
//
// Items are processed strictly in document order and each commit returns
// before the next item is gated, so later items see the identifiers
// assigned to earlier ones. A failing item never stops the rest.
type Pipeline struct {
	store    services.EnvironmentStore
	notifier services.Notifier
}

// NewPipeline creates a new import pipeline committing to store.
func NewPipeline(store services.EnvironmentStore, notifier services.Notifier) *Pipeline {
	return &Pipeline{store: store, notifier: notifier}
}

// Import processes an export document and returns one outcome per item.
//
// Invalid JSON yields ErrParse after a single notification. Well-formed JSON
// that is not an export document is silently ignored. If ctx is cancelled
// between items the outcomes gathered so far are returned with ctx.Err();
// committed items stay committed.
func (p *Pipeline) Import(ctx context.Context, raw []byte) ([]services.ItemOutcome, error) {
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		p.notifier.Notify(ctx, slog.LevelError, messages.ImportParseError, messages.Params{Error: err})
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if !IsImportable(raw) {
		return nil, nil
	}

	var doc entities.ExportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		// The schema already accepted the shape; treat a decode failure as a parse error.
		p.notifier.Notify(ctx, slog.LevelError, messages.ImportParseError, messages.Params{Error: err})
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	outcomes := make([]services.ItemOutcome, 0, len(doc.Data))
	for i, item := range doc.Data {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, p.processItem(ctx, i, item))
	}
	return outcomes, nil
}

// ImportFrom acquires bytes from src and imports them. Acquisition failures
// are reported once, with the notification chosen by the source.
func (p *Pipeline) ImportFrom(ctx context.Context, src Source) ([]services.ItemOutcome, error) {
	raw, err := src.Acquire(ctx)
	if err != nil {
		code, params := src.FailureNotice(err)
		p.notifier.Notify(ctx, slog.LevelError, code, params)
		return nil, fmt.Errorf("%w: %w", ErrAcquire, err)
	}
	return p.Import(ctx, raw)
}

func (p *Pipeline) processItem(ctx context.Context, index int, item entities.ImportItem) services.ItemOutcome {
	decision := AcceptItem(item)
	outcome := services.ItemOutcome{
		Index: index,
		Type:  item.Type,
		UUID:  decision.Identity.UUID,
		Name:  decision.Identity.Name,
	}

	switch decision.Action {
	case ActionIgnore:
		outcome.Status = services.OutcomeIgnored
		return outcome

	case ActionSkip:
		p.notifier.Notify(ctx, slog.LevelWarn, messages.EnvironmentMoreRecentVersion, messages.Params{
			UUID: decision.Identity.UUID,
			Name: decision.Identity.Name,
		})
		outcome.Status = services.OutcomeSkippedTooNew
		return outcome
	}

	env := decision.Environment
	if decision.Repaired {
		p.notifier.Notify(ctx, slog.LevelWarn, messages.EnvironmentMigrationFailed, messages.Params{
			UUID:  env.UUID,
			Name:  env.Name,
			Error: decision.ValidationErr,
		})
	}

	stored, err := p.store.AddEnvironment(ctx, env)
	if err != nil {
		p.notifier.Notify(ctx, slog.LevelError, messages.EnvironmentImportError, messages.Params{
			UUID:  env.UUID,
			Name:  env.Name,
			Error: err,
		})
		outcome.Status = services.OutcomeFailed
		outcome.Err = err
		return outcome
	}
	if stored != nil {
		env = stored
	}

	outcome.UUID = env.UUID
	outcome.Name = env.Name
	outcome.Status = services.OutcomeCommitted
	if decision.Repaired {
		outcome.Status = services.OutcomeRepaired
	}

	p.notifier.Notify(ctx, slog.LevelInfo, messages.EnvironmentImported, messages.Params{
		UUID: env.UUID,
		Name: env.Name,
	})
	return outcome
}
