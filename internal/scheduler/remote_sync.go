// Package scheduler runs periodic jobs on robfig/cron.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/envport/internal/services"
	"github.com/mrlokans/envport/internal/settingsstore"
)

const syncTimeout = 10 * time.Minute

// URLImporter imports the export document served at a URL.
type URLImporter interface {
	ImportFromURL(ctx context.Context, url string) ([]services.ItemOutcome, error)
}

// SyncAuditor records sync runs.
type SyncAuditor interface {
	LogSync(action, description string, err error)
}

// SyncResult summarizes one sync run.
type SyncResult struct {
	URLs     int
	Failed   int
	Imported int
}

// RemoteSyncScheduler periodically re-imports the configured export document URLs.
type RemoteSyncScheduler struct {
	settingsStore *settingsstore.SettingsStore
	importer      URLImporter
	auditor       SyncAuditor
	logger        *slog.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isSyncing  bool
	cancelFunc context.CancelFunc
}

// NewRemoteSyncScheduler creates a new scheduler instance. auditor may be nil.
func NewRemoteSyncScheduler(settingsStore *settingsstore.SettingsStore, importer URLImporter, auditor SyncAuditor, logger *slog.Logger) *RemoteSyncScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RemoteSyncScheduler{
		settingsStore: settingsStore,
		importer:      importer,
		auditor:       auditor,
		logger:        logger.With("component", "remote_sync"),
	}
}

// Start begins the scheduler if sync is enabled and URLs are configured.
func (s *RemoteSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	config := s.settingsStore.RemoteSyncConfig(ctx)
	if !config.Enabled {
		s.logger.Info("remote sync disabled")
		return nil
	}
	if len(config.URLs) == 0 {
		s.logger.Info("remote sync has no URLs configured, skipping")
		return nil
	}

	if err := settingsstore.ValidateCronSchedule(config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", config.Schedule, err)
	}

	s.cron = cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)))
	entryID, err := s.cron.AddFunc(config.Schedule, func() {
		s.runSync()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sync job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := settingsstore.NextRunTime(config.Schedule)
	s.logger.Info("remote sync scheduler started",
		"schedule", config.Schedule,
		"description", settingsstore.CronDescription(config.Schedule),
		"urls", len(config.URLs),
		"next_run", nextRun)

	c := s.cron
	go func() {
		<-cancelCtx.Done()
		s.stop(c)
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running sync to finish.
func (s *RemoteSyncScheduler) Stop() {
	s.mu.RLock()
	c := s.cron
	s.mu.RUnlock()
	s.stop(c)
}

// stop halts c if it is still the active cron instance.
func (s *RemoteSyncScheduler) stop(c *cron.Cron) {
	s.mu.Lock()
	if !s.isRunning || s.cron != c {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	cancel := s.cancelFunc
	s.cancelFunc = nil
	s.mu.Unlock()

	// runSync takes the lock, so wait for jobs without holding it
	<-c.Stop().Done()
	if cancel != nil {
		cancel()
	}

	s.logger.Info("remote sync scheduler stopped")
}

// Reschedule applies changed settings.
func (s *RemoteSyncScheduler) Reschedule(ctx context.Context) error {
	s.Stop()
	return s.Start(ctx)
}

// RunNow triggers an immediate sync in the background.
func (s *RemoteSyncScheduler) RunNow() {
	go s.runSync()
}

// IsRunning returns whether the scheduler is active.
func (s *RemoteSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsSyncing returns whether a sync is currently in progress.
func (s *RemoteSyncScheduler) IsSyncing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isSyncing
}

// NextRunTime returns when the next sync will occur.
func (s *RemoteSyncScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *RemoteSyncScheduler) runSync() {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	if _, err := s.SyncOnce(ctx); err != nil {
		s.logger.Info("remote sync skipped", "reason", err)
	}
}

// errAlreadySyncing is returned by SyncOnce while another run is in progress.
var errAlreadySyncing = errors.New("already syncing")

// SyncOnce imports every configured URL once, in order. A failing URL does
// not stop the others. The outcome is recorded in the settings store.
func (s *RemoteSyncScheduler) SyncOnce(ctx context.Context) (SyncResult, error) {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		return SyncResult{}, errAlreadySyncing
	}
	s.isSyncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	config := s.settingsStore.RemoteSyncConfig(ctx)
	result := SyncResult{URLs: len(config.URLs)}
	startTime := time.Now()

	var failures []string
	for _, url := range config.URLs {
		if ctx.Err() != nil {
			break
		}
		outcomes, err := s.importer.ImportFromURL(ctx, url)
		if err != nil {
			result.Failed++
			failures = append(failures, fmt.Sprintf("%s: %v", url, err))
			s.logger.Warn("remote sync import failed", "url", url, "error", err)
			continue
		}
		summary := services.Summarize(outcomes)
		result.Imported += summary.Committed + summary.Repaired
	}

	status := "success"
	message := fmt.Sprintf("Imported %d environment(s) from %d URL(s) in %v",
		result.Imported, result.URLs, time.Since(startTime).Round(time.Millisecond))
	var syncErr error
	if result.Failed > 0 {
		status = "partial"
		if result.Failed == result.URLs {
			status = "failed"
		}
		message = strings.Join(failures, "; ")
		syncErr = fmt.Errorf("%d of %d URL(s) failed", result.Failed, result.URLs)
	}

	if err := s.settingsStore.SetRemoteSyncStatus(ctx, status, message, result.Imported); err != nil {
		s.logger.Error("failed to record sync status", "error", err)
	}
	if s.auditor != nil {
		s.auditor.LogSync("remote_sync", message, syncErr)
	}
	s.logger.Info("remote sync finished", "status", status, "imported", result.Imported, "failed", result.Failed)

	return result, nil
}
