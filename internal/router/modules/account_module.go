package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/account-service/internal/interface/http"
	"github.com/oksasatya/account-service/internal/interface/middleware"
)

// AccountModule wires registration and confirmation.
// Public: POST /api/register, PUT /api/confirmation/:token?code=
type AccountModule struct {
	Handler *handlers.AccountHandler
	Redis   *redis.Client
	Max     int
	Window  time.Duration
}

func NewAccountModule(h *handlers.AccountHandler, rdb *redis.Client, max int, window time.Duration) *AccountModule {
	return &AccountModule{Handler: h, Redis: rdb, Max: max, Window: window}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(m.Redis, m.Max, m.Window, middleware.KeyByIPAndPath(), nil)

	rg.POST("/register", limiter, m.Handler.Register)
	rg.PUT("/confirmation/:token", limiter, m.Handler.Confirm)
}
