package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/envport/internal/dialogs"
	"github.com/mrlokans/envport/internal/importers"
	"github.com/mrlokans/envport/internal/importexport"
	"github.com/mrlokans/envport/internal/notify"
	"github.com/mrlokans/envport/internal/openapi"
)

// MenuController triggers menu actions and hands back the toasts they raised.
type MenuController struct {
	service ImportExportService
	toasts  *notify.ToastQueue
}

func NewMenuController(service ImportExportService, toasts *notify.ToastQueue) *MenuController {
	return &MenuController{service: service, toasts: toasts}
}

// TriggerRequest carries the answers to the dialogs a menu action may open.
// An empty path answers the dialog with "cancel".
type TriggerRequest struct {
	OpenPath string `json:"open_path"`
	SavePath string `json:"save_path"`
}

// TriggerResponse reports a menu action and the toasts it raised.
type TriggerResponse struct {
	ID     importexport.MenuID `json:"id"`
	Error  string              `json:"error,omitempty"`
	Toasts []notify.Toast      `json:"toasts"`
}

// ListMenu handles GET /api/menu
func (mc *MenuController) ListMenu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ids": importexport.MenuIDs()})
}

// Trigger handles POST /api/menu/:id
func (mc *MenuController) Trigger(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	var req TriggerRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
	}

	menuID := importexport.MenuID(id)
	ctx, collector := notify.WithCollector(c.Request.Context())
	err := mc.service.Trigger(ctx, menuID, dialogs.Preset{
		OpenPath: req.OpenPath,
		SavePath: req.SavePath,
	})
	if errors.Is(err, importexport.ErrUnknownMenuID) {
		respondNotFound(c, "menu action")
		return
	}

	resp := TriggerResponse{ID: menuID, Toasts: collector.Toasts()}
	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		status = statusForMenuError(err)
	}
	c.JSON(status, resp)
}

func statusForMenuError(err error) int {
	switch {
	case errors.Is(err, importexport.ErrClipboardFormat),
		errors.Is(err, importers.ErrParse),
		errors.Is(err, importers.ErrAcquire),
		errors.Is(err, importers.ErrEmptyClipboard),
		errors.Is(err, openapi.ErrUnsupportedVersion):
		return http.StatusUnprocessableEntity
	case errors.Is(err, importexport.ErrNoActiveEnvironment),
		errors.Is(err, importexport.ErrRouteNotFound):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Toasts handles GET /api/toasts
// Returns toasts raised outside a menu request, oldest first, and empties
// the queue.
func (mc *MenuController) Toasts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"toasts": mc.toasts.Drain()})
}

// CopyRoute handles POST /api/routes/:uuid/copy
func (mc *MenuController) CopyRoute(c *gin.Context) {
	routeUUID, ok := requireParam(c, "uuid")
	if !ok {
		return
	}

	ctx, collector := notify.WithCollector(c.Request.Context())
	err := mc.service.CopyRouteToClipboard(ctx, routeUUID)
	resp := TriggerResponse{Toasts: collector.Toasts()}
	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		status = statusForMenuError(err)
	}
	c.JSON(status, resp)
}
