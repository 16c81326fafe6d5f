package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/envport/internal/database/environments"
)

// EnvironmentsController exposes stored environments.
type EnvironmentsController struct {
	store EnvironmentStore
}

func NewEnvironmentsController(store EnvironmentStore) *EnvironmentsController {
	return &EnvironmentsController{store: store}
}

// List handles GET /api/environments
func (ec *EnvironmentsController) List(c *gin.Context) {
	records, err := ec.store.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list environments")
		return
	}

	active, err := ec.store.GetActiveEnvironment(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "get active environment")
		return
	}
	activeUUID := ""
	if active != nil {
		activeUUID = active.UUID
	}

	c.JSON(http.StatusOK, gin.H{
		"environments": records,
		"active_uuid":  activeUUID,
	})
}

// Get handles GET /api/environments/:uuid
// Returns the full current-schema document.
func (ec *EnvironmentsController) Get(c *gin.Context) {
	envUUID, ok := requireParam(c, "uuid")
	if !ok {
		return
	}

	env, err := ec.store.Get(c.Request.Context(), envUUID)
	if errors.Is(err, environments.ErrEnvironmentNotFound) {
		respondNotFound(c, "environment")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get environment")
		return
	}
	c.JSON(http.StatusOK, env)
}

// GetActive handles GET /api/environments/active
func (ec *EnvironmentsController) GetActive(c *gin.Context) {
	env, err := ec.store.GetActiveEnvironment(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "get active environment")
		return
	}
	if env == nil {
		respondNotFound(c, "active environment")
		return
	}
	c.JSON(http.StatusOK, env)
}

// SetActiveRequest is the request body for PUT /api/environments/active
type SetActiveRequest struct {
	UUID string `json:"uuid" binding:"required"`
}

// SetActive handles PUT /api/environments/active
func (ec *EnvironmentsController) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "uuid is required")
		return
	}

	err := ec.store.SetActive(c.Request.Context(), req.UUID)
	if errors.Is(err, environments.ErrEnvironmentNotFound) {
		respondNotFound(c, "environment")
		return
	}
	if err != nil {
		respondInternalError(c, err, "set active environment")
		return
	}
	respondSuccess(c, "active environment updated")
}
