package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/envport/internal/importers"
	"github.com/mrlokans/envport/internal/services"
)

// URLImporter imports the export document served at a URL.
type URLImporter interface {
	ImportFromURL(ctx context.Context, url string) ([]services.ItemOutcome, error)
}

// ImportURLTask imports an export document from a URL in the background.
// Queued by the HTTP API and by the remote sync scheduler.
type ImportURLTask struct {
	URL string `json:"url"`
}

// Config returns the queue configuration for URL import tasks.
func (t ImportURLTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "import_url",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ImportURLProcessor creates a processor function for ImportURLTask.
// Only acquisition failures are retried; a document that does not parse
// will not parse on the next attempt either.
func ImportURLProcessor(importer URLImporter, logger *slog.Logger) backlite.QueueProcessor[ImportURLTask] {
	return func(ctx context.Context, task ImportURLTask) error {
		if importer == nil {
			return fmt.Errorf("url importer not configured")
		}

		outcomes, err := importer.ImportFromURL(ctx, task.URL)
		if errors.Is(err, importers.ErrAcquire) {
			return fmt.Errorf("import %s: %w", task.URL, err)
		}
		if err != nil {
			logger.Warn("url import failed", "url", task.URL, "error", err)
			return nil
		}

		summary := services.Summarize(outcomes)
		logger.Info("imported from url",
			"url", task.URL,
			"committed", summary.Committed+summary.Repaired,
			"skipped", summary.Skipped,
			"failed", summary.Failed)
		return nil
	}
}

// NewImportURLQueue creates a backlite queue for URL import tasks.
func NewImportURLQueue(importer URLImporter, logger *slog.Logger) backlite.Queue {
	return backlite.NewQueue(ImportURLProcessor(importer, logger))
}
