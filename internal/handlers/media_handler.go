package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
)

type MediaHandler struct {
	BaseHandler
	service services.MediaService
}

func NewMediaHandler(service services.MediaService, logger utils.Logger) *MediaHandler {
	return &MediaHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ProxyDownload streams a stored file through a signed URL
// @Summary Download proxy
// @Tags media
// @Produce octet-stream
// @Param url query string true "Previously issued media URL"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse "URL missing"
// @Failure 404 {object} ErrorResponse "File not found or fetch failed"
// @Router /proxy_download [get]
func (h *MediaHandler) ProxyDownload(c *gin.Context) {
	rawURL := c.Query("url")
	h.LogRequest(c, "Proxying download", "url", rawURL)

	resp, err := h.service.Download(c.Request.Context(), rawURL)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer resp.Body.Close()

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, resp.ContentLength, contentType, resp.Body, map[string]string{
		"Content-Disposition": contentDisposition(resp.Filename),
	})
}

func contentDisposition(filename string) string {
	filename = strings.NewReplacer(`"`, "", "\r", "", "\n", "").Replace(filename)
	if filename == "" {
		filename = "download"
	}
	return fmt.Sprintf(`attachment; filename="%s"`, filename)
}
