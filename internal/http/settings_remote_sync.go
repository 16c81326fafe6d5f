package http

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/envport/internal/scheduler"
	"github.com/mrlokans/envport/internal/settingsstore"
)

// RemoteSyncController handles the remote sync settings endpoints.
type RemoteSyncController struct {
	settingsStore *settingsstore.SettingsStore
	scheduler     *scheduler.RemoteSyncScheduler
	auditor       SettingsAuditor
}

// NewRemoteSyncController creates a RemoteSyncController. scheduler and
// auditor may be nil.
func NewRemoteSyncController(store *settingsstore.SettingsStore, sched *scheduler.RemoteSyncScheduler, auditor SettingsAuditor) *RemoteSyncController {
	return &RemoteSyncController{
		settingsStore: store,
		scheduler:     sched,
		auditor:       auditor,
	}
}

// SchedulePreset is a common cron schedule offered to clients.
type SchedulePreset struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// RemoteSyncSettingsResponse is the response for GET /api/settings/remote-sync
type RemoteSyncSettingsResponse struct {
	Config    settingsstore.RemoteSyncConfigInfo `json:"config"`
	Status    settingsstore.RemoteSyncStatus     `json:"status"`
	Schedule  string                             `json:"schedule_description"`
	NextRun   *time.Time                         `json:"next_run,omitempty"`
	IsRunning bool                               `json:"is_running"`
	IsSyncing bool                               `json:"is_syncing"`
	Presets   []SchedulePreset                   `json:"presets"`
}

var schedulePresets = []SchedulePreset{
	{Label: "Every 15 minutes", Value: "*/15 * * * *", Description: "Runs at :00, :15, :30, :45"},
	{Label: "Every hour", Value: "0 * * * *", Description: "Runs at the top of every hour"},
	{Label: "Every 6 hours", Value: "0 */6 * * *", Description: "Runs at midnight, 6am, noon, 6pm"},
	{Label: "Daily at midnight", Value: "0 0 * * *", Description: "Runs once daily at 00:00"},
}

// GetSettings handles GET /api/settings/remote-sync
func (rc *RemoteSyncController) GetSettings(c *gin.Context) {
	ctx := c.Request.Context()
	config := rc.settingsStore.RemoteSyncConfigInfo(ctx)

	response := RemoteSyncSettingsResponse{
		Config:   config,
		Status:   rc.settingsStore.RemoteSyncStatus(ctx),
		Schedule: settingsstore.CronDescription(config.Schedule),
		Presets:  schedulePresets,
	}
	if rc.scheduler != nil {
		response.NextRun = rc.scheduler.NextRunTime()
		response.IsRunning = rc.scheduler.IsRunning()
		response.IsSyncing = rc.scheduler.IsSyncing()
	}

	c.JSON(http.StatusOK, response)
}

// UpdateRemoteSyncRequest is the request body for PUT /api/settings/remote-sync
// Omitted fields keep their current value.
type UpdateRemoteSyncRequest struct {
	Enabled  *bool    `json:"enabled"`
	Schedule string   `json:"schedule"`
	URLs     []string `json:"urls"`
}

// UpdateSettings handles PUT /api/settings/remote-sync
func (rc *RemoteSyncController) UpdateSettings(c *gin.Context) {
	var req UpdateRemoteSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}

	if req.Schedule != "" {
		if err := settingsstore.ValidateCronSchedule(req.Schedule); err != nil {
			respondBadRequest(c, "invalid cron schedule: "+err.Error())
			return
		}
	}
	for _, raw := range req.URLs {
		if u, err := url.Parse(strings.TrimSpace(raw)); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			respondBadRequest(c, fmt.Sprintf("invalid url %q", raw))
			return
		}
	}

	ctx := c.Request.Context()
	var changed []string
	if req.Schedule != "" {
		if err := rc.settingsStore.SetRemoteSyncSchedule(ctx, req.Schedule); err != nil {
			respondInternalError(c, err, "save remote sync schedule")
			return
		}
		changed = append(changed, "schedule")
	}
	if req.URLs != nil {
		if err := rc.settingsStore.SetRemoteSyncURLs(ctx, req.URLs); err != nil {
			respondInternalError(c, err, "save remote sync urls")
			return
		}
		changed = append(changed, "urls")
	}
	if req.Enabled != nil {
		if err := rc.settingsStore.SetRemoteSyncEnabled(ctx, *req.Enabled); err != nil {
			respondInternalError(c, err, "save remote sync enabled")
			return
		}
		changed = append(changed, "enabled")
	}

	if len(changed) > 0 && rc.auditor != nil {
		rc.auditor.LogSettings("update_remote_sync", "Updated remote sync "+strings.Join(changed, ", "))
	}

	if err := rc.reschedule(c); err != nil {
		respondError(c, http.StatusInternalServerError, "reschedule_failed", "settings saved but failed to reschedule: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"config": rc.settingsStore.RemoteSyncConfigInfo(ctx)})
}

// ResetSettings handles DELETE /api/settings/remote-sync
// Clears database overrides, reverting to configuration values.
func (rc *RemoteSyncController) ResetSettings(c *gin.Context) {
	ctx := c.Request.Context()
	if err := rc.settingsStore.ClearRemoteSyncSettings(ctx); err != nil {
		respondInternalError(c, err, "reset remote sync settings")
		return
	}
	if rc.auditor != nil {
		rc.auditor.LogSettings("reset_remote_sync", "Reset remote sync settings to configuration")
	}

	if err := rc.reschedule(c); err != nil {
		respondError(c, http.StatusInternalServerError, "reschedule_failed", "settings reset but failed to reschedule: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"config": rc.settingsStore.RemoteSyncConfigInfo(ctx)})
}

// reschedule restarts the scheduler with the stored settings. The scheduler
// outlives the request, so it is detached from the request's cancellation.
func (rc *RemoteSyncController) reschedule(c *gin.Context) error {
	if rc.scheduler == nil {
		return nil
	}
	return rc.scheduler.Reschedule(context.WithoutCancel(c.Request.Context()))
}

// SyncNow handles POST /api/settings/remote-sync/run
// Triggers an immediate sync in the background.
func (rc *RemoteSyncController) SyncNow(c *gin.Context) {
	if rc.scheduler == nil {
		respondError(c, http.StatusServiceUnavailable, "no_scheduler", "scheduler not available")
		return
	}

	config := rc.settingsStore.RemoteSyncConfig(c.Request.Context())
	if len(config.URLs) == 0 {
		respondBadRequest(c, "no remote sync URLs configured")
		return
	}
	if rc.scheduler.IsSyncing() {
		respondError(c, http.StatusConflict, "sync_in_progress", "sync already in progress")
		return
	}

	rc.scheduler.RunNow()
	respondAccepted(c, "sync started in background", nil)
}

// GetStatus handles GET /api/settings/remote-sync/status
func (rc *RemoteSyncController) GetStatus(c *gin.Context) {
	response := gin.H{
		"status":     rc.settingsStore.RemoteSyncStatus(c.Request.Context()),
		"is_running": false,
		"is_syncing": false,
	}
	if rc.scheduler != nil {
		response["next_run"] = rc.scheduler.NextRunTime()
		response["is_running"] = rc.scheduler.IsRunning()
		response["is_syncing"] = rc.scheduler.IsSyncing()
	}
	c.JSON(http.StatusOK, response)
}
