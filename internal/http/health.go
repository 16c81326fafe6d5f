package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/envport/internal/database"
)

type HealthResponse struct {
	Status       string            `json:"status"`
	Time         string            `json:"time"`
	Version      string            `json:"version,omitempty"`
	Environments *int64            `json:"environments,omitempty"`
	Checks       map[string]string `json:"checks"`
}

// HealthController reports database reachability, the environment store and
// whether background tasks run. Any failing check makes the service unhealthy.
type HealthController struct {
	db           *database.Database
	environments EnvironmentCounter
	version      string
	taskQueue    bool
}

// NewHealthController creates a HealthController. db and environments may be
// nil; their checks then report "not configured".
func NewHealthController(db *database.Database, environments EnvironmentCounter, version string, taskQueue bool) *HealthController {
	return &HealthController{
		db:           db,
		environments: environments,
		version:      version,
		taskQueue:    taskQueue,
	}
}

// Status returns the health report
// GET /health
func (h *HealthController) Status(c *gin.Context) {
	ctx := c.Request.Context()
	response := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().UTC().Format(time.RFC3339),
		Version: h.version,
		Checks:  make(map[string]string, 3),
	}

	fail := func(name string, err error) {
		response.Checks[name] = "error: " + err.Error()
		response.Status = "unhealthy"
	}

	if err := h.pingDatabase(ctx); err != nil {
		fail("database", err)
	} else if h.db == nil {
		response.Checks["database"] = "not configured"
	} else {
		response.Checks["database"] = "ok"
	}

	switch {
	case h.environments == nil:
		response.Checks["environments"] = "not configured"
	case response.Status == "unhealthy":
		response.Checks["environments"] = "skipped"
	default:
		count, err := h.environments.Count(ctx)
		if err != nil {
			fail("environments", err)
			break
		}
		response.Environments = &count
		response.Checks["environments"] = fmt.Sprintf("ok (%d stored)", count)
	}

	if h.taskQueue {
		response.Checks["task_queue"] = "enabled"
	} else {
		response.Checks["task_queue"] = "disabled"
	}

	statusCode := http.StatusOK
	if response.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}
	c.IndentedJSON(statusCode, response)
}

func (h *HealthController) pingDatabase(ctx context.Context) error {
	if h.db == nil {
		return nil
	}
	sqlDB, err := h.db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
