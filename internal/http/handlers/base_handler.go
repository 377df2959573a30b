// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripbrief/internal/modules/imageproxy"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeImageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, imageproxy.ErrEmptyPrompt):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, imageproxy.ErrUnknownBackend):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, imageproxy.ErrCredentialMissing):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(c, http.StatusBadGateway, err.Error())
	}
}
