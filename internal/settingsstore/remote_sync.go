package settingsstore

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/envport/internal/entities"
)

// RemoteSyncConfig is the effective configuration for remote sync.
type RemoteSyncConfig struct {
	Enabled  bool     `json:"enabled"`
	Schedule string   `json:"schedule"`
	URLs     []string `json:"urls"`
}

// RemoteSyncConfigInfo includes source information for each field.
type RemoteSyncConfigInfo struct {
	RemoteSyncConfig
	EnabledSource  string `json:"enabled_source"` // "database" or "environment"
	ScheduleSource string `json:"schedule_source"`
	URLsSource     string `json:"urls_source"`
}

// RemoteSyncStatus represents the last sync run.
type RemoteSyncStatus struct {
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
	Status     string     `json:"status,omitempty"`  // "success", "partial", "failed", ""
	Message    string     `json:"message,omitempty"` // Error message or stats summary
	Imported   int        `json:"imported,omitempty"`
}

// RemoteSyncConfig returns the effective configuration.
func (s *SettingsStore) RemoteSyncConfig(ctx context.Context) RemoteSyncConfig {
	return s.RemoteSyncConfigInfo(ctx).RemoteSyncConfig
}

// RemoteSyncConfigInfo returns the configuration with source information.
func (s *SettingsStore) RemoteSyncConfigInfo(ctx context.Context) RemoteSyncConfigInfo {
	info := RemoteSyncConfigInfo{
		RemoteSyncConfig: RemoteSyncConfig{
			Enabled:  s.defaults.Enabled,
			Schedule: s.defaults.Schedule,
			URLs:     append([]string(nil), s.defaults.URLs...),
		},
	}

	enabled, ok := s.lookup(ctx, entities.SettingKeyRemoteSyncEnabled)
	if ok {
		info.Enabled = enabled == "true" || enabled == "1"
	}
	info.EnabledSource = sourceOf(ok)

	schedule, ok := s.lookup(ctx, entities.SettingKeyRemoteSyncSchedule)
	if ok {
		info.Schedule = schedule
	}
	info.ScheduleSource = sourceOf(ok)

	urls, ok := s.lookup(ctx, entities.SettingKeyRemoteSyncURLs)
	if ok {
		info.URLs = splitURLs(urls)
	}
	info.URLsSource = sourceOf(ok)

	return info
}

func (s *SettingsStore) SetRemoteSyncEnabled(ctx context.Context, enabled bool) error {
	return s.repo.SetSetting(ctx, entities.SettingKeyRemoteSyncEnabled, strconv.FormatBool(enabled))
}

func (s *SettingsStore) SetRemoteSyncSchedule(ctx context.Context, schedule string) error {
	return s.repo.SetSetting(ctx, entities.SettingKeyRemoteSyncSchedule, schedule)
}

func (s *SettingsStore) SetRemoteSyncURLs(ctx context.Context, urls []string) error {
	return s.repo.SetSetting(ctx, entities.SettingKeyRemoteSyncURLs, strings.Join(splitURLs(strings.Join(urls, "\n")), "\n"))
}

// ClearRemoteSyncSettings removes all database overrides, reverting to configuration.
func (s *SettingsStore) ClearRemoteSyncSettings(ctx context.Context) error {
	keys := []string{
		entities.SettingKeyRemoteSyncEnabled,
		entities.SettingKeyRemoteSyncSchedule,
		entities.SettingKeyRemoteSyncURLs,
	}
	for _, key := range keys {
		if err := s.repo.DeleteSetting(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// RemoteSyncStatus returns the last sync status.
func (s *SettingsStore) RemoteSyncStatus(ctx context.Context) RemoteSyncStatus {
	status := RemoteSyncStatus{}

	if value, ok := s.lookup(ctx, entities.SettingKeyRemoteSyncLastAt); ok {
		if ts, err := time.Parse(time.RFC3339, value); err == nil {
			status.LastSyncAt = &ts
		}
	}
	status.Status, _ = s.lookup(ctx, entities.SettingKeyRemoteSyncLastStatus)
	status.Message, _ = s.lookup(ctx, entities.SettingKeyRemoteSyncLastMessage)
	if value, ok := s.lookup(ctx, entities.SettingKeyRemoteSyncImported); ok {
		if count, err := strconv.Atoi(value); err == nil {
			status.Imported = count
		}
	}

	return status
}

// SetRemoteSyncStatus records the outcome of a sync run.
func (s *SettingsStore) SetRemoteSyncStatus(ctx context.Context, status, message string, imported int) error {
	now := time.Now().UTC().Format(time.RFC3339)

	values := [][2]string{
		{entities.SettingKeyRemoteSyncLastAt, now},
		{entities.SettingKeyRemoteSyncLastStatus, status},
		{entities.SettingKeyRemoteSyncLastMessage, message},
		{entities.SettingKeyRemoteSyncImported, strconv.Itoa(imported)},
	}
	for _, kv := range values {
		if err := s.repo.SetSetting(ctx, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// splitURLs accepts newline or comma separated URLs.
func splitURLs(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == '\n' || r == ','
	})
	var urls []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			urls = append(urls, f)
		}
	}
	return urls
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a standard five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// CronDescription returns a human-readable description of a cron schedule.
func CronDescription(schedule string) string {
	switch schedule {
	case "0 * * * *":
		return "Every hour at :00"
	case "*/15 * * * *":
		return "Every 15 minutes"
	case "*/30 * * * *":
		return "Every 30 minutes"
	case "0 */6 * * *":
		return "Every 6 hours"
	case "0 0 * * *":
		return "Daily at midnight"
	default:
		return "Custom schedule: " + schedule
	}
}

// NextRunTime calculates when a schedule fires next.
func NextRunTime(schedule string) (*time.Time, error) {
	sched, err := cronParser.Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(time.Now())
	return &next, nil
}
