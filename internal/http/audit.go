package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/envport/internal/database/audit"
	"github.com/mrlokans/envport/internal/entities"
	"github.com/mrlokans/envport/internal/storage"
)

type AuditController struct {
	auditLog  AuditLog
	snapshots SnapshotLister
}

// NewAuditController creates an AuditController. snapshots may be nil when
// import snapshots are disabled.
func NewAuditController(auditLog AuditLog, snapshots SnapshotLister) *AuditController {
	return &AuditController{auditLog: auditLog, snapshots: snapshots}
}

// GetAuditEvents returns paginated audit events as JSON
// GET /api/audit?type=import&entity=<uuid>&limit=25&offset=0
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	limit, offset, ok := parsePagination(c, 25, 100)
	if !ok {
		return
	}

	eventType := entities.AuditEventType(c.Query("type"))
	if eventType != "" && !validEventType(eventType) {
		respondBadRequest(c, "invalid event type")
		return
	}

	events, total, err := ac.auditLog.GetEvents(c.Request.Context(), audit.Filter{
		EventType:  eventType,
		EntityUUID: c.Query("entity"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		respondInternalError(c, err, "load audit events")
		return
	}

	totalPages := (int(total) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       events,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
		HasMore:    int64(offset+len(events)) < total,
		TotalPages: totalPages,
	})
}

// ListSnapshots returns saved import payloads, newest first
// GET /api/audit/snapshots
func (ac *AuditController) ListSnapshots(c *gin.Context) {
	if ac.snapshots == nil {
		respondError(c, http.StatusNotFound, "snapshots_disabled", "import snapshots are disabled")
		return
	}

	snapshots, err := ac.snapshots.List()
	if err != nil {
		respondInternalError(c, err, "list snapshots")
		return
	}
	if snapshots == nil {
		snapshots = []storage.FileInfo{}
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}

func validEventType(t entities.AuditEventType) bool {
	switch t {
	case entities.AuditEventImport,
		entities.AuditEventExport,
		entities.AuditEventClipboard,
		entities.AuditEventSync,
		entities.AuditEventSettings:
		return true
	}
	return false
}
