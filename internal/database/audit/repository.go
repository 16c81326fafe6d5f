package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/envport/internal/entities"
)

const defaultPageSize = 50

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Filter narrows an event listing. Zero values mean "any".
type Filter struct {
	EventType  entities.AuditEventType
	EntityUUID string
	Limit      int
	Offset     int
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(event).Error
}

// GetEvents retrieves paginated audit events, most recent first, with the
// total number of matching events.
func (r *Repository) GetEvents(ctx context.Context, filter Filter) ([]entities.AuditEvent, int64, error) {
	var events []entities.AuditEvent
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.AuditEvent{})
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}
	if filter.EntityUUID != "" {
		query = query.Where("entity_uuid = ?", filter.EntityUUID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&events).Error
	return events, total, err
}

// DeleteOldEvents removes audit events older than the specified time.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", olderThan).Delete(&entities.AuditEvent{})
	return result.RowsAffected, result.Error
}
