package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/envport/internal/services"
)

// ClipboardController reads and writes the server-side clipboard, so clients
// can paste a document before triggering a clipboard menu action.
type ClipboardController struct {
	clipboard services.Clipboard
}

func NewClipboardController(clipboard services.Clipboard) *ClipboardController {
	return &ClipboardController{clipboard: clipboard}
}

type ClipboardBody struct {
	Text string `json:"text"`
}

// Read handles GET /api/clipboard
func (cc *ClipboardController) Read(c *gin.Context) {
	text, err := cc.clipboard.ReadText(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "read clipboard")
		return
	}
	c.JSON(http.StatusOK, ClipboardBody{Text: text})
}

// Write handles PUT /api/clipboard
func (cc *ClipboardController) Write(c *gin.Context) {
	var body ClipboardBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := cc.clipboard.WriteText(c.Request.Context(), body.Text); err != nil {
		respondInternalError(c, err, "write clipboard")
		return
	}
	respondSuccess(c, "clipboard updated")
}
