package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/bmlt-tools/snapshot-server/internal/http/handlers"
	httpMW "github.com/bmlt-tools/snapshot-server/internal/http/middleware"
)

type RouterConfig struct {
	HealthHandler     *httpH.HealthHandler
	RootServerHandler *httpH.RootServerHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	if cfg.RootServerHandler != nil {
		r.GET("/rootservers", cfg.RootServerHandler.List)
		r.POST("/rootservers", cfg.RootServerHandler.Create)
		r.GET("/rootservers/:id", cfg.RootServerHandler.Get)
		r.DELETE("/rootservers/:id", cfg.RootServerHandler.Delete)
		r.GET("/rootservers/:id/snapshots", cfg.RootServerHandler.ListSnapshots)
	}

	return r
}
