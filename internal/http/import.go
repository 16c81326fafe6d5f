package http

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/envport/internal/importers"
	"github.com/mrlokans/envport/internal/services"
	"github.com/mrlokans/envport/internal/tasks"
)

// maxUploadSize bounds an uploaded export document.
const maxUploadSize = 10 << 20

// ImportController accepts export documents over HTTP.
type ImportController struct {
	service    ImportExportService
	taskClient *tasks.Client
}

// NewImportController creates an ImportController. taskClient may be nil,
// in which case URL imports always run inline.
func NewImportController(service ImportExportService, taskClient *tasks.Client) *ImportController {
	return &ImportController{service: service, taskClient: taskClient}
}

// ImportResponse reports the per-item outcome of one import.
type ImportResponse struct {
	Outcomes []services.ItemOutcome `json:"outcomes"`
	Summary  services.ImportSummary `json:"summary"`
}

func newImportResponse(outcomes []services.ItemOutcome) ImportResponse {
	if outcomes == nil {
		outcomes = []services.ItemOutcome{}
	}
	return ImportResponse{Outcomes: outcomes, Summary: services.Summarize(outcomes)}
}

// Upload handles POST /api/import
// Accepts either a multipart form with a "file" field or a raw JSON body.
func (ic *ImportController) Upload(c *gin.Context) {
	data, origin, err := readUpload(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if len(data) == 0 {
		respondBadRequest(c, "request body is empty")
		return
	}

	outcomes, err := ic.service.ImportBytes(c.Request.Context(), data, origin)
	if errors.Is(err, importers.ErrParse) {
		respondError(c, http.StatusBadRequest, "parse_error", "imported data is not valid JSON")
		return
	}
	if err != nil {
		respondInternalError(c, err, "import upload")
		return
	}
	c.JSON(http.StatusOK, newImportResponse(outcomes))
}

func readUpload(c *gin.Context) ([]byte, string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	if c.ContentType() == "multipart/form-data" {
		header, err := c.FormFile("file")
		if err != nil {
			return nil, "", errors.New("file is required")
		}
		f, err := header.Open()
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		return data, header.Filename, err
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, "", errors.New("failed to read request body")
	}
	return data, c.DefaultQuery("origin", "request body"), nil
}

// ImportURLRequest is the request body for POST /api/import/url
type ImportURLRequest struct {
	URL   string `json:"url" binding:"required"`
	Async bool   `json:"async"`
}

// ImportURL handles POST /api/import/url
// Async requests are queued when a task client is configured.
func (ic *ImportController) ImportURL(c *gin.Context) {
	var req ImportURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "url is required")
		return
	}
	if u, err := url.Parse(req.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		respondBadRequest(c, "url must be an http or https URL")
		return
	}

	if req.Async && ic.taskClient != nil {
		ids, err := ic.taskClient.Add(tasks.ImportURLTask{URL: req.URL}).Save()
		if err != nil {
			respondInternalError(c, err, "enqueue url import")
			return
		}
		respondAccepted(c, "import enqueued", gin.H{"task_id": ids[0]})
		return
	}

	outcomes, err := ic.service.ImportFromURL(c.Request.Context(), req.URL)
	switch {
	case errors.Is(err, importers.ErrAcquire):
		respondError(c, http.StatusBadGateway, "fetch_error", err.Error())
		return
	case errors.Is(err, importers.ErrParse):
		respondError(c, http.StatusUnprocessableEntity, "parse_error", "remote document is not valid JSON")
		return
	case err != nil:
		respondInternalError(c, err, "import url")
		return
	}
	c.JSON(http.StatusOK, newImportResponse(outcomes))
}
