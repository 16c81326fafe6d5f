package entities

import "time"

type AuditEventType string

const (
	AuditEventImport    AuditEventType = "import"
	AuditEventExport    AuditEventType = "export"
	AuditEventClipboard AuditEventType = "clipboard"
	AuditEventSync      AuditEventType = "sync"
	AuditEventSettings  AuditEventType = "settings"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusPartial AuditStatus = "partial"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent records one import/export operation. Notification records are
// never persisted; this is the operation trail only.
type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action      string         `gorm:"size:100" json:"action"`      // e.g., "import_url", "export_openapi"
	Description string         `gorm:"size:500" json:"description"` // Human-readable summary
	EntityUUID  string         `gorm:"index;size:36" json:"entity_uuid,omitempty"`
	Metadata    string         `gorm:"type:text" json:"metadata,omitempty"` // JSON for extra data
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
