package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mikestefanello/backlite"
)

const defaultRetentionDays = 30

// AuditEventCleaner deletes audit events older than a retention period.
type AuditEventCleaner interface {
	DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

// SnapshotPruner deletes saved import payloads older than a cutoff.
type SnapshotPruner interface {
	Prune(olderThan time.Time) (int, error)
}

// CleanupAuditEventsTask applies the audit retention period to audit events
// and, when snapshots are enabled, to saved import payloads.
type CleanupAuditEventsTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for audit cleanup tasks.
func (t CleanupAuditEventsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_audit_events",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration: 24 * time.Hour,
			Data:     &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func (t CleanupAuditEventsTask) retention() time.Duration {
	days := t.RetentionDays
	if days <= 0 {
		days = defaultRetentionDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// CleanupAuditEventsProcessor creates a processor function for
// CleanupAuditEventsTask. snapshots may be nil.
func CleanupAuditEventsProcessor(cleaner AuditEventCleaner, snapshots SnapshotPruner, logger *slog.Logger) backlite.QueueProcessor[CleanupAuditEventsTask] {
	return func(ctx context.Context, task CleanupAuditEventsTask) error {
		if cleaner == nil {
			return fmt.Errorf("audit event cleaner not configured")
		}
		retention := task.retention()

		deleted, err := cleaner.DeleteOldEvents(ctx, retention)
		if err != nil {
			return fmt.Errorf("cleanup audit events: %w", err)
		}

		pruned := 0
		if snapshots != nil {
			pruned, err = snapshots.Prune(time.Now().Add(-retention))
			if err != nil {
				return fmt.Errorf("prune import snapshots: %w", err)
			}
		}

		logger.Info("applied audit retention",
			"events_deleted", deleted,
			"snapshots_pruned", pruned,
			"retention", retention)
		return nil
	}
}

// NewCleanupAuditEventsQueue creates a backlite queue for audit cleanup tasks.
func NewCleanupAuditEventsQueue(cleaner AuditEventCleaner, snapshots SnapshotPruner, logger *slog.Logger) backlite.Queue {
	return backlite.NewQueue(CleanupAuditEventsProcessor(cleaner, snapshots, logger))
}
