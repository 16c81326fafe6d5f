package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/envport/internal/demo"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Optional controllers are only registered when their dependencies are set.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	demoMode := demo.NewMiddleware(cfg.ReadOnly)
	router.Use(demoMode.InjectContext())

	health := NewHealthController(cfg.Database, cfg.Environments, cfg.Version, cfg.TaskClient != nil)
	environmentsController := NewEnvironmentsController(cfg.Environments)
	importController := NewImportController(cfg.ImportExport, cfg.TaskClient)
	menuController := NewMenuController(cfg.ImportExport, cfg.Toasts)
	clipboardController := NewClipboardController(cfg.Clipboard)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")
	api.Use(demoMode.Handler())

	// Environments
	api.GET("/environments", environmentsController.List)
	api.GET("/environments/active", environmentsController.GetActive)
	api.PUT("/environments/active", environmentsController.SetActive)
	api.GET("/environments/:uuid", environmentsController.Get)

	// Imports
	api.POST("/import", importController.Upload)
	api.POST("/import/url", importController.ImportURL)

	// Menu actions, toasts and clipboard
	api.GET("/menu", menuController.ListMenu)
	api.POST("/menu/:id", menuController.Trigger)
	api.POST("/routes/:uuid/copy", menuController.CopyRoute)
	api.GET("/toasts", menuController.Toasts)
	api.GET("/clipboard", clipboardController.Read)
	api.PUT("/clipboard", clipboardController.Write)

	// Audit log
	if cfg.AuditLog != nil {
		auditController := NewAuditController(cfg.AuditLog, cfg.Snapshots)
		api.GET("/audit", auditController.GetAuditEvents)
		api.GET("/audit/snapshots", auditController.ListSnapshots)
	}

	// Remote sync settings
	if cfg.SettingsStore != nil {
		remoteSync := NewRemoteSyncController(cfg.SettingsStore, cfg.Scheduler, cfg.Settings)
		api.GET("/settings/remote-sync", remoteSync.GetSettings)
		api.PUT("/settings/remote-sync", remoteSync.UpdateSettings)
		api.DELETE("/settings/remote-sync", remoteSync.ResetSettings)
		api.POST("/settings/remote-sync/run", remoteSync.SyncNow)
		api.GET("/settings/remote-sync/status", remoteSync.GetStatus)
	}

	// Task queue
	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient)
		api.GET("/tasks/types", tasksController.ListTaskTypes)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	return router
}
