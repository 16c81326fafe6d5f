package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Logging
		Fetch
		Tasks
		RemoteSync
		Audit
		Demo
		Toasts
		Clipboard
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path      string
		TasksPath string // Dedicated database for the task queue
	}
	Logging struct {
		Level  string // debug, info, warn, error
		Format string // text or json
	}
	Fetch struct {
		Timeout time.Duration
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	RemoteSync struct {
		Enabled  bool
		Schedule string   // Cron format: "0 * * * *" = hourly
		URLs     []string // Export documents re-imported on every run
	}
	Audit struct {
		RetentionDays int    // Days to keep audit events (default: 30)
		SnapshotDir   string // Raw import payloads are saved here when set
	}
	Demo struct {
		Enabled  bool // Seed a demo environment when the store is empty
		ReadOnly bool // Reject API writes, for public demo servers
	}
	Toasts struct {
		BufferSize int
	}
	Clipboard struct {
		Path string // Clipboard file; empty keeps the server clipboard in memory
	}
)

// splitList parses a comma separated env value, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("tasks_database_path", DefaultTasksDatabasePath)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("fetch_timeout", "30s")
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_snapshot_dir", "")
	v.SetDefault("demo_environment", true)
	v.SetDefault("demo_read_only", false)
	v.SetDefault("toast_buffer_size", 50)
	v.SetDefault("clipboard_path", "")

	// Remote sync defaults
	v.SetDefault("remote_sync_enabled", false)
	v.SetDefault("remote_sync_schedule", "0 * * * *") // Hourly at :00
	v.SetDefault("remote_sync_urls", "")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:      v.GetString("DATABASE_PATH"),
			TasksPath: v.GetString("TASKS_DATABASE_PATH"),
		},
		Logging: Logging{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Fetch: Fetch{
			Timeout: v.GetDuration("FETCH_TIMEOUT"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		RemoteSync: RemoteSync{
			Enabled:  v.GetBool("REMOTE_SYNC_ENABLED"),
			Schedule: v.GetString("REMOTE_SYNC_SCHEDULE"),
			URLs:     splitList(v.GetString("REMOTE_SYNC_URLS")),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
			SnapshotDir:   v.GetString("AUDIT_SNAPSHOT_DIR"),
		},
		Demo: Demo{
			Enabled:  v.GetBool("DEMO_ENVIRONMENT"),
			ReadOnly: v.GetBool("DEMO_READ_ONLY"),
		},
		Toasts: Toasts{
			BufferSize: v.GetInt("TOAST_BUFFER_SIZE"),
		},
		Clipboard: Clipboard{
			Path: v.GetString("CLIPBOARD_PATH"),
		},
	}
}
