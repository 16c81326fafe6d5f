package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// SettingKeyActiveEnvironment holds the UUID of the active environment.
	SettingKeyActiveEnvironment = "active_environment_uuid"

	// Remote sync overrides of the REMOTE_SYNC_* configuration
	SettingKeyRemoteSyncEnabled  = "remote_sync_enabled"
	SettingKeyRemoteSyncSchedule = "remote_sync_schedule"
	SettingKeyRemoteSyncURLs     = "remote_sync_urls"

	// Remote sync bookkeeping
	SettingKeyRemoteSyncLastAt      = "remote_sync_last_at"
	SettingKeyRemoteSyncLastStatus  = "remote_sync_last_status"
	SettingKeyRemoteSyncLastMessage = "remote_sync_last_message"
	SettingKeyRemoteSyncImported    = "remote_sync_imported"
)
