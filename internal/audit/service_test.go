package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	auditRepo "github.com/mrlokans/envport/internal/database/audit"
	"github.com/mrlokans/envport/internal/entities"
	"github.com/mrlokans/envport/internal/logging"
	"github.com/mrlokans/envport/internal/services"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	repo := auditRepo.NewRepository(db)
	svc := NewService(repo, logging.Discard())

	return svc, db
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventImport,
		Action:      "test_import",
		Description: "Test import event",
		Status:      entities.AuditStatusSuccess,
	}

	err := svc.Log(context.Background(), event)
	require.NoError(t, err)

	var saved entities.AuditEvent
	err = db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "test_import", saved.Action)
}

func TestService_LogImport(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("successful import", func(t *testing.T) {
		outcomes := []services.ItemOutcome{
			{Index: 0, Type: entities.ImportItemEnvironment, UUID: "env-1", Status: services.OutcomeCommitted},
			{Index: 1, Type: entities.ImportItemRoute, Status: services.OutcomeIgnored},
		}
		svc.LogImport("url", "https://example.com/env.json", outcomes, nil)
		svc.Wait()

		var event entities.AuditEvent
		err := db.Where("action = ?", "import_url").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
		assert.Equal(t, "env-1", event.EntityUUID)
		assert.Equal(t, "Imported 1 environment(s) from url https://example.com/env.json", event.Description)
		assert.Contains(t, event.Metadata, `"committed":1`)
	})

	t.Run("partial import", func(t *testing.T) {
		outcomes := []services.ItemOutcome{
			{Index: 0, Type: entities.ImportItemEnvironment, UUID: "env-2", Status: services.OutcomeSkippedTooNew},
		}
		svc.LogImport("file", "/tmp/env.json", outcomes, nil)
		svc.Wait()

		var event entities.AuditEvent
		err := db.Where("action = ?", "import_file").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusPartial, event.Status)
		assert.Empty(t, event.EntityUUID)
	})

	t.Run("failed import", func(t *testing.T) {
		svc.LogImport("clipboard", "", nil, errors.New("clipboard is empty"))
		svc.Wait()

		var event entities.AuditEvent
		err := db.Where("action = ?", "import_clipboard").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusFailed, event.Status)
		assert.Contains(t, event.ErrorMsg, "clipboard is empty")
	})
}

func TestService_LogExport(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogExport("openapi-v3", "env-1", "/tmp/openapi.json", nil)
	svc.LogExport("native", "env-1", "", errors.New("disk full"))
	svc.Wait()

	var ok entities.AuditEvent
	require.NoError(t, db.Where("action = ?", "export_openapi-v3").First(&ok).Error)
	assert.Equal(t, entities.AuditStatusSuccess, ok.Status)
	assert.Equal(t, "env-1", ok.EntityUUID)

	var failed entities.AuditEvent
	require.NoError(t, db.Where("action = ?", "export_native").First(&failed).Error)
	assert.Equal(t, entities.AuditStatusFailed, failed.Status)
	assert.Equal(t, "disk full", failed.ErrorMsg)
}

func TestService_LogClipboardAndSync(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogClipboard("copy_route", "route-1", nil)
	svc.LogSync("remote_sync", "Synced 2 URLs", errors.New("timeout"))
	svc.LogSettings("set_active", "Active environment changed")
	svc.Wait()

	var clip entities.AuditEvent
	require.NoError(t, db.Where("event_type = ?", entities.AuditEventClipboard).First(&clip).Error)
	assert.Equal(t, "route-1", clip.EntityUUID)

	var sync entities.AuditEvent
	require.NoError(t, db.Where("event_type = ?", entities.AuditEventSync).First(&sync).Error)
	assert.Equal(t, entities.AuditStatusFailed, sync.Status)

	var settings entities.AuditEvent
	require.NoError(t, db.Where("event_type = ?", entities.AuditEventSettings).First(&settings).Error)
	assert.Equal(t, "set_active", settings.Action)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Log(ctx, &entities.AuditEvent{
		EventType: entities.AuditEventImport,
		Action:    "old",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-72 * time.Hour),
	}))
	require.NoError(t, svc.Log(ctx, &entities.AuditEvent{
		EventType: entities.AuditEventImport,
		Action:    "new",
		Status:    entities.AuditStatusSuccess,
	}))

	deleted, err := svc.DeleteOldEvents(ctx, 48*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, total, err := svc.GetEvents(ctx, auditRepo.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "new", events[0].Action)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
