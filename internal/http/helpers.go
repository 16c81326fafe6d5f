package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data       any   `json:"data"`
	Total      int64 `json:"total"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	HasMore    bool  `json:"has_more"`
	TotalPages int   `json:"total_pages,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	slog.Error("internal error", "context", context, "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError sends an error response with the given status code and code.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parsePagination reads limit and offset query parameters.
// limit defaults to defaultLimit and is capped at maxLimit.
func parsePagination(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int, ok bool) {
	limit = defaultLimit
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			respondBadRequest(c, "invalid limit")
			return 0, 0, false
		}
		limit = min(v, maxLimit)
	}
	if s := c.Query("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			respondBadRequest(c, "invalid offset")
			return 0, 0, false
		}
		offset = v
	}
	return limit, offset, true
}

// requireParam extracts a non-empty URL parameter or responds with 400.
func requireParam(c *gin.Context, name string) (string, bool) {
	value := c.Param(name)
	if value == "" {
		respondBadRequest(c, name+" is required")
		return "", false
	}
	return value, true
}
