package server

import (
	"github.com/alexanderramin/studyplan/internal/logger"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	PlanHandler *PlanHandler
	Logger      *logger.Logger
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(cfg.Logger))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(CORS(cfg.CORSOrigins))
	}

	h := cfg.PlanHandler
	r.GET("/healthcheck", h.HealthCheck)
	r.GET("/modules", h.Modules)
	r.POST("/generate", h.Generate)
	r.POST("/download", h.Download)
	return r
}
