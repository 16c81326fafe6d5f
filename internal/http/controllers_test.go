package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/envport/internal/database/audit"
	"github.com/mrlokans/envport/internal/entities"
	"github.com/mrlokans/envport/internal/settingsstore"
	"github.com/mrlokans/envport/internal/storage"
)

type fakeAuditLog struct {
	lastFilter audit.Filter
	events     []entities.AuditEvent
	total      int64
	err        error
}

func (f *fakeAuditLog) GetEvents(_ context.Context, filter audit.Filter) ([]entities.AuditEvent, int64, error) {
	f.lastFilter = filter
	return f.events, f.total, f.err
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuditController_GetAuditEvents(t *testing.T) {
	t.Run("passes filter and paginates", func(t *testing.T) {
		log := &fakeAuditLog{
			events: []entities.AuditEvent{{ID: 1, EventType: entities.AuditEventImport, Action: "import_url"}},
			total:  30,
		}
		router := gin.New()
		router.GET("/api/audit", NewAuditController(log, nil).GetAuditEvents)

		w := serve(router, "GET", "/api/audit?type=import&entity=env-1&limit=10&offset=5", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, audit.Filter{
			EventType:  entities.AuditEventImport,
			EntityUUID: "env-1",
			Limit:      10,
			Offset:     5,
		}, log.lastFilter)

		resp := decode[PaginatedResponse](t, w)
		assert.Equal(t, int64(30), resp.Total)
		assert.Equal(t, 3, resp.TotalPages)
		assert.True(t, resp.HasMore)
	})

	t.Run("rejects unknown event type", func(t *testing.T) {
		router := gin.New()
		router.GET("/api/audit", NewAuditController(&fakeAuditLog{}, nil).GetAuditEvents)

		w := serve(router, "GET", "/api/audit?type=bogus", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("hides store errors", func(t *testing.T) {
		router := gin.New()
		router.GET("/api/audit", NewAuditController(&fakeAuditLog{err: errors.New("disk full")}, nil).GetAuditEvents)

		w := serve(router, "GET", "/api/audit", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk full")
	})
}

type fakeSnapshots struct {
	files []storage.FileInfo
}

func (f fakeSnapshots) List() ([]storage.FileInfo, error) {
	return f.files, nil
}

func TestAuditController_ListSnapshots(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		router := gin.New()
		router.GET("/snapshots", NewAuditController(&fakeAuditLog{}, nil).ListSnapshots)

		w := serve(router, "GET", "/snapshots", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "snapshots_disabled")
	})

	t.Run("lists files", func(t *testing.T) {
		lister := fakeSnapshots{files: []storage.FileInfo{{Name: "a.json", Path: "/snap/a.json", Size: 2}}}
		router := gin.New()
		router.GET("/snapshots", NewAuditController(&fakeAuditLog{}, lister).ListSnapshots)

		w := serve(router, "GET", "/snapshots", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "a.json")
	})

	t.Run("empty list is an array", func(t *testing.T) {
		router := gin.New()
		router.GET("/snapshots", NewAuditController(&fakeAuditLog{}, fakeSnapshots{}).ListSnapshots)

		w := serve(router, "GET", "/snapshots", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"snapshots":[]}`, w.Body.String())
	})
}

type fakeTaskStatus struct {
	status backlite.TaskStatus
	err    error
}

func (f fakeTaskStatus) Status(_ context.Context, _ string) (backlite.TaskStatus, error) {
	return f.status, f.err
}

func TestTasksController(t *testing.T) {
	newRouter := func(reader TaskStatusReader) *gin.Engine {
		tc := NewTasksController(reader)
		router := gin.New()
		router.GET("/api/tasks/types", tc.ListTaskTypes)
		router.GET("/api/tasks/:id", tc.GetTaskStatus)
		return router
	}

	t.Run("lists task types", func(t *testing.T) {
		w := serve(newRouter(fakeTaskStatus{}), "GET", "/api/tasks/types", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"queue":"import_url"`)
		assert.Contains(t, w.Body.String(), "cleanup_audit_events")
	})

	t.Run("reports status", func(t *testing.T) {
		w := serve(newRouter(fakeTaskStatus{status: backlite.TaskStatusRunning}), "GET", "/api/tasks/abc", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"abc","status":"running"}`, w.Body.String())
	})

	t.Run("unknown task", func(t *testing.T) {
		w := serve(newRouter(fakeTaskStatus{status: backlite.TaskStatusNotFound}), "GET", "/api/tasks/abc", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskStatusToString(t *testing.T) {
	assert.Equal(t, "pending", taskStatusToString(backlite.TaskStatusPending))
	assert.Equal(t, "success", taskStatusToString(backlite.TaskStatusSuccess))
	assert.Equal(t, "failure", taskStatusToString(backlite.TaskStatusFailure))
}

type settingsCall struct {
	action      string
	description string
}

type fakeSettingsAuditor struct {
	calls []settingsCall
}

func (f *fakeSettingsAuditor) LogSettings(action, description string) {
	f.calls = append(f.calls, settingsCall{action: action, description: description})
}

func TestRemoteSyncController(t *testing.T) {
	ts := newTestServer(t, stubFetcher{})
	auditor := &fakeSettingsAuditor{}
	rc := NewRemoteSyncController(ts.settings, nil, auditor)

	router := gin.New()
	router.GET("/settings", rc.GetSettings)
	router.PUT("/settings", rc.UpdateSettings)
	router.DELETE("/settings", rc.ResetSettings)
	router.POST("/settings/run", rc.SyncNow)
	router.GET("/settings/status", rc.GetStatus)

	t.Run("defaults come from configuration", func(t *testing.T) {
		w := serve(router, "GET", "/settings", "")

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[RemoteSyncSettingsResponse](t, w)
		assert.Equal(t, "0 * * * *", resp.Config.Schedule)
		assert.Equal(t, settingsstore.SourceEnvironment, resp.Config.ScheduleSource)
		assert.False(t, resp.IsRunning)
		assert.NotEmpty(t, resp.Presets)
	})

	t.Run("rejects invalid schedule", func(t *testing.T) {
		w := serve(router, "PUT", "/settings", `{"schedule":"not a cron"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects invalid url", func(t *testing.T) {
		w := serve(router, "PUT", "/settings", `{"urls":["ftp://example.com/env.json"]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("stores overrides", func(t *testing.T) {
		w := serve(router, "PUT", "/settings", `{"enabled":true,"schedule":"*/15 * * * *","urls":["https://example.com/env.json"]}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		config := ts.settings.RemoteSyncConfigInfo(context.Background())
		assert.True(t, config.Enabled)
		assert.Equal(t, "*/15 * * * *", config.Schedule)
		assert.Equal(t, []string{"https://example.com/env.json"}, config.URLs)
		assert.Equal(t, settingsstore.SourceDatabase, config.URLsSource)

		require.Len(t, auditor.calls, 1)
		assert.Equal(t, "update_remote_sync", auditor.calls[0].action)
		assert.Contains(t, auditor.calls[0].description, "schedule, urls, enabled")
	})

	t.Run("run without scheduler", func(t *testing.T) {
		w := serve(router, "POST", "/settings/run", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("status", func(t *testing.T) {
		w := serve(router, "GET", "/settings/status", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"is_syncing":false`)
	})

	t.Run("reset reverts to configuration", func(t *testing.T) {
		w := serve(router, "DELETE", "/settings", "")
		require.Equal(t, http.StatusOK, w.Code)

		config := ts.settings.RemoteSyncConfigInfo(context.Background())
		assert.False(t, config.Enabled)
		assert.Equal(t, "0 * * * *", config.Schedule)
		assert.Equal(t, settingsstore.SourceEnvironment, config.ScheduleSource)
		assert.Equal(t, "reset_remote_sync", auditor.calls[len(auditor.calls)-1].action)
	})
}
