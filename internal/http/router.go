// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripbrief/internal/http/handlers"
	"tripbrief/internal/http/middleware"
	"tripbrief/internal/obs"
)

type RouterDeps struct {
	Planner handlers.Planner
	Images  handlers.ImageService
	Metrics *obs.Metrics
	Logger  *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(deps.Logger),
		middleware.Recovery(deps.Logger),
	)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := r.Group("/api")

	tripHandler := handlers.NewTripHandler(deps.Planner)
	api.POST("/trips/validate", tripHandler.Validate)
	api.POST("/trips/plan", tripHandler.Plan)

	imageHandler := handlers.NewImageHandler(deps.Images)
	api.POST("/images/:backend", imageHandler.Generate)

	return r
}
