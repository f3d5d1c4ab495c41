package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine with recovery, request logging and CORS
// for origins.
func NewRouter(h *Handler, log *zap.Logger, origins []string) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))

	if len(origins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = origins
		cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
		r.Use(cors.New(cfg))
	}

	h.RegisterRoutes(r)
	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
