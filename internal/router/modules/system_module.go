package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/account-service/internal/interface/http"
	"github.com/oksasatya/account-service/internal/interface/middleware"
)

type SystemModule struct {
	Handler *handlers.SystemHandler
	Redis   *redis.Client
	Max     int
	Window  time.Duration
}

func NewSystemModule(h *handlers.SystemHandler, rdb *redis.Client, max int, window time.Duration) *SystemModule {
	return &SystemModule{Handler: h, Redis: rdb, Max: max, Window: window}
}

func (m *SystemModule) Register(rg *gin.RouterGroup) {
	// internal callers (health checks, sidecars) skip the limiter
	selfLimiter := middleware.RateLimit(m.Redis, m.Max, m.Window, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	rg.GET("/self", selfLimiter, m.Handler.Self)
	rg.GET("/health", m.Handler.Health)
}
