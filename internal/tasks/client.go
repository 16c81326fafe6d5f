package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
)

// Client wraps backlite to provide task queue functionality.
type Client struct {
	client *backlite.Client
	db     *sql.DB
	config Config
	logger *slog.Logger

	mu      sync.RWMutex
	started bool
}

// NewClient creates a new task queue client on a dedicated SQLite database
// at tasksDBPath.
func NewClient(tasksDBPath string, cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "tasks")
	cfg = cfg.withDefaults()

	// Open dedicated SQLite connection for tasks with WAL mode
	db, err := sql.Open("sqlite3", tasksDBPath+"?_journal=WAL&_timeout=5000&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open tasks database: %w", err)
	}

	// Configure connection pool for concurrent workers
	db.SetMaxOpenConns(cfg.Workers + 5)
	db.SetMaxIdleConns(cfg.Workers + 2)
	db.SetConnMaxLifetime(time.Hour)

	client, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          &slogAdapter{logger: logger},
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create backlite client: %w", err)
	}

	if err := client.Install(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to install backlite schema: %w", err)
	}

	return &Client{
		client: client,
		db:     db,
		config: cfg,
		logger: logger,
	}, nil
}

// Register registers task queues with the client.
// Must be called before Start().
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.client.Register(q)
	}
}

// Start begins processing tasks. Use Stop() for graceful shutdown.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	c.logger.Info("task queue started", "workers", c.config.Workers)
	c.client.Start(ctx)
}

// Stop gracefully shuts down the task queue, waiting for active tasks to complete.
// Returns true if all workers finished before the context deadline.
func (c *Client) Stop(ctx context.Context) bool {
	c.mu.RLock()
	if !c.started {
		c.mu.RUnlock()
		return true
	}
	c.mu.RUnlock()

	c.logger.Info("stopping task queue")
	success := c.client.Stop(ctx)
	if success {
		c.logger.Info("task queue stopped gracefully")
	} else {
		c.logger.Warn("task queue stopped with timeout, some tasks may not have completed")
	}
	return success
}

// Close releases all resources. Should be called after Stop().
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Add starts an operation to enqueue one or more tasks.
func (c *Client) Add(tasks ...backlite.Task) *backlite.TaskAddOp {
	return c.client.Add(tasks...)
}

// Status returns the status of a task by ID.
func (c *Client) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return c.client.Status(ctx, taskID)
}

// slogAdapter implements backlite.Logger on top of slog.
type slogAdapter struct {
	logger *slog.Logger
}

func (l *slogAdapter) Info(message string, params ...any) {
	l.logger.Info(message, params...)
}

func (l *slogAdapter) Error(message string, params ...any) {
	l.logger.Error(message, params...)
}
