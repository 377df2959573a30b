// README: Image proxy handlers; normalize backend output into {url}.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripbrief/internal/modules/imageproxy"
)

// ImageService is satisfied by *imageproxy.Service.
type ImageService interface {
	Generate(ctx context.Context, backend imageproxy.Backend, prompt string) (string, error)
}

type ImageHandler struct {
	images ImageService
}

func NewImageHandler(images ImageService) *ImageHandler {
	return &ImageHandler{images: images}
}

// Generate handles POST /api/images/:backend.
func (h *ImageHandler) Generate(c *gin.Context) {
	var req imageproxy.ProxyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	backend := imageproxy.Backend(c.Param("backend"))
	url, err := h.images.Generate(c.Request.Context(), backend, req.Prompt)
	if err != nil {
		_ = c.Error(err)
		writeImageError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, imageproxy.ProxyResponse{URL: url})
}
