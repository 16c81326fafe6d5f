package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/envport/internal/tasks"
)

// TaskStatusReader reports the status of a queued task.
type TaskStatusReader interface {
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// TasksController handles task queue endpoints.
type TasksController struct {
	client TaskStatusReader
}

// NewTasksController creates a new TasksController.
func NewTasksController(client TaskStatusReader) *TasksController {
	return &TasksController{client: client}
}

// TaskTypeInfo describes an available task type.
type TaskTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Queue       string `json:"queue"`
}

// ListTaskTypes handles GET /api/tasks/types
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	types := []TaskTypeInfo{
		{
			Type:        "import_url",
			Description: "Import an export document from a URL",
			Queue:       tasks.ImportURLTask{}.Config().Name,
		},
		{
			Type:        "cleanup_audit_events",
			Description: "Delete audit events past the retention window",
			Queue:       tasks.CleanupAuditEventsTask{}.Config().Name,
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"task_types": types,
	})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID, ok := requireParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.client.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
