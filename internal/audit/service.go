package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mrlokans/envport/internal/database/audit"
	"github.com/mrlokans/envport/internal/entities"
	"github.com/mrlokans/envport/internal/services"
)

const maxErrorLen = 500

// Service provides high-level audit logging of import and export operations.
type Service struct {
	repo   *audit.Repository
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger.With("component", "audit")}
}

// Log records a generic audit event.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(context.Background(), event); err != nil {
			s.logger.Error("failed to log audit event", "action", event.Action, "error", err)
		}
	}()
}

// Wait blocks until every pending LogAsync write has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogImport records an import operation from source ("url", "file", "clipboard", ...).
// A failed acquisition or parse is recorded as failed; otherwise the status
// reflects the item outcomes.
func (s *Service) LogImport(source, origin string, outcomes []services.ItemOutcome, err error) {
	summary := services.Summarize(outcomes)
	event := &entities.AuditEvent{
		EventType: entities.AuditEventImport,
		Action:    "import_" + source,
		Description: fmt.Sprintf("Imported %d environment(s) from %s",
			summary.Committed+summary.Repaired, describeOrigin(source, origin)),
		Status: entities.AuditStatusSuccess,
	}

	for _, o := range outcomes {
		if o.Committed() {
			event.EntityUUID = o.UUID
			break
		}
	}

	metadata := map[string]any{
		"origin":   origin,
		"summary":  summary,
		"outcomes": outcomes,
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	switch {
	case err != nil:
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), maxErrorLen)
	case summary.Failed > 0 || summary.Skipped > 0:
		event.Status = entities.AuditStatusPartial
	}

	s.LogAsync(event)
}

// LogExport records an export of envUUID in format to path.
func (s *Service) LogExport(format, envUUID, path string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventExport,
		Action:      "export_" + format,
		Description: "Exported environment to " + path,
		EntityUUID:  envUUID,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.Description = "Export failed"
		event.ErrorMsg = truncate(err.Error(), maxErrorLen)
	}

	s.LogAsync(event)
}

// LogClipboard records a clipboard copy or paste.
func (s *Service) LogClipboard(action, entityUUID string, err error) {
	event := &entities.AuditEvent{
		EventType:  entities.AuditEventClipboard,
		Action:     action,
		EntityUUID: entityUUID,
		Status:     entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), maxErrorLen)
	}

	s.LogAsync(event)
}

// LogSync records a remote sync run.
func (s *Service) LogSync(action, description string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventSync,
		Action:      action,
		Description: description,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), maxErrorLen)
	}

	s.LogAsync(event)
}

// LogSettings records a settings change event.
func (s *Service) LogSettings(action, description string) {
	s.LogAsync(&entities.AuditEvent{
		EventType:   entities.AuditEventSettings,
		Action:      action,
		Description: description,
		Status:      entities.AuditStatusSuccess,
	})
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(ctx context.Context, filter audit.Filter) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(ctx, filter)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

func describeOrigin(source, origin string) string {
	if origin == "" {
		return source
	}
	return source + " " + origin
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
