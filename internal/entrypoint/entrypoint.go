package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/envport/internal/audit"
	"github.com/mrlokans/envport/internal/clipboard"
	"github.com/mrlokans/envport/internal/config"
	"github.com/mrlokans/envport/internal/database"
	auditrepo "github.com/mrlokans/envport/internal/database/audit"
	"github.com/mrlokans/envport/internal/database/environments"
	"github.com/mrlokans/envport/internal/database/settings"
	"github.com/mrlokans/envport/internal/exporters"
	"github.com/mrlokans/envport/internal/fetch"
	http_controllers "github.com/mrlokans/envport/internal/http"
	"github.com/mrlokans/envport/internal/importexport"
	"github.com/mrlokans/envport/internal/logging"
	"github.com/mrlokans/envport/internal/notify"
	"github.com/mrlokans/envport/internal/openapi"
	"github.com/mrlokans/envport/internal/scheduler"
	"github.com/mrlokans/envport/internal/services"
	"github.com/mrlokans/envport/internal/settingsstore"
	"github.com/mrlokans/envport/internal/storage"
	"github.com/mrlokans/envport/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, logger *slog.Logger, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		logger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 sends SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server", "timeout", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the server so no new jobs start mid-shutdown
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	logger.Info("server exiting")
}

// Run wires every component from cfg and serves the HTTP API.
func Run(cfg *config.Config, version string) {
	logger := logging.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Format, version)
	slog.SetDefault(logger)
	logger.Info("starting envport")

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database", "error", err)
		}
	}()

	files := storage.NewOSFiles()
	store := environments.NewRepository(db.DB)
	auditService := audit.NewService(auditrepo.NewRepository(db.DB), logger)
	defer auditService.Wait()

	// Interfaces stay nil when snapshots are disabled
	var snapshotter importexport.Snapshotter
	var snapshotLister http_controllers.SnapshotLister
	var snapshotPruner tasks.SnapshotPruner
	if cfg.Audit.SnapshotDir != "" {
		s := audit.NewSnapshotter(files, cfg.Audit.SnapshotDir)
		snapshotter, snapshotLister, snapshotPruner = s, s, s
		logger.Info("import snapshots enabled", "dir", cfg.Audit.SnapshotDir)
	}

	var clip services.Clipboard = clipboard.NewMemory()
	if cfg.Clipboard.Path != "" {
		clip = clipboard.NewFile(files, cfg.Clipboard.Path)
	}

	toasts := notify.NewToastQueue(cfg.Toasts.BufferSize)
	service := importexport.NewService(importexport.Deps{
		Store:       store,
		Converter:   openapi.NewConverter(files),
		Files:       files,
		Clipboard:   clip,
		Fetcher:     fetch.NewClient(cfg.Fetch.Timeout),
		Notifier:    notify.NewDispatcher(logger, toasts),
		Serializer:  exporters.NativeSerializer{Version: config.Version},
		Auditor:     auditService,
		Snapshotter: snapshotter,
		Logger:      logger,
	})

	if cfg.Demo.Enabled {
		seeded, err := service.SeedDemoEnvironment(context.Background())
		if err != nil {
			logger.Error("failed to seed demo environment", "error", err)
		} else if seeded {
			logger.Info("demo environment added")
		}
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.TasksPath, taskCfg, logger)
		if err != nil {
			logger.Error("failed to initialize task queue", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				logger.Error("error closing task client", "error", err)
			}
		}()

		taskClient.Register(
			tasks.NewImportURLQueue(service, logger),
			tasks.NewCleanupAuditEventsQueue(auditService, snapshotPruner, logger),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		if _, err := taskClient.Add(tasks.CleanupAuditEventsTask{RetentionDays: cfg.Audit.RetentionDays}).Save(); err != nil {
			logger.Warn("failed to enqueue audit cleanup", "error", err)
		}
	}

	settingsStore := settingsstore.New(settings.NewRepository(db.DB), cfg.RemoteSync)
	syncScheduler := scheduler.NewRemoteSyncScheduler(settingsStore, service, auditService, logger)
	if err := syncScheduler.Start(context.Background()); err != nil {
		logger.Error("failed to start remote sync scheduler", "error", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:      db,
		ImportExport:  service,
		Environments:  store,
		Toasts:        toasts,
		Clipboard:     clip,
		AuditLog:      auditService,
		Snapshots:     snapshotLister,
		SettingsStore: settingsStore,
		Scheduler:     syncScheduler,
		Settings:      auditService,
		TaskClient:    taskClient,
		ReadOnly:      cfg.Demo.ReadOnly,
		Version:       version,
	})

	onShutdown := func(ctx context.Context) {
		syncScheduler.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, logger, onShutdown)
}
