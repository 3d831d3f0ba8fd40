package handlers

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/account-service/internal/domain/repository"
	"github.com/oksasatya/account-service/pkg/helpers"
	"github.com/oksasatya/account-service/pkg/response"
)

// SystemHandler exposes liveness and health information.
type SystemHandler struct {
	Env       string
	Repo      repo.UserRepository
	Redis     *redis.Client
	Logger    *logrus.Logger
	startedAt time.Time
}

func NewSystemHandler(env string, r repo.UserRepository, rdb *redis.Client, logger *logrus.Logger) *SystemHandler {
	return &SystemHandler{Env: env, Repo: r, Redis: rdb, Logger: logger, startedAt: time.Now().UTC()}
}

type ApplicationHealth struct {
	Environment string `json:"environment"`
	Uptime      string `json:"uptime"`
	HeapAllocMB string `json:"heapAllocMB"`
	HeapSysMB   string `json:"heapSysMB"`
	Goroutines  int    `json:"goroutines"`
}

type SystemHealth struct {
	CPUs       int    `json:"cpus"`
	GoVersion  string `json:"goVersion"`
	Hostname   string `json:"hostname"`
	TotalMemMB string `json:"totalMemMB"`
}

type HealthData struct {
	Application  ApplicationHealth `json:"application"`
	System       SystemHealth      `json:"system"`
	Dependencies map[string]string `json:"dependencies"`
	TimeStamp    int64             `json:"timeStamp"`
}

// Self handles GET /self.
func (h *SystemHandler) Self(c *gin.Context) {
	response.Success[any](c, http.StatusOK, nil, MsgSuccess, nil)
}

// Health handles GET /health. Dependency failures are reported, not fatal.
func (h *SystemHandler) Health(c *gin.Context) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	host, _ := os.Hostname()

	data := HealthData{
		Application: ApplicationHealth{
			Environment: h.Env,
			Uptime:      time.Since(h.startedAt).Truncate(time.Second).String(),
			HeapAllocMB: mb(ms.HeapAlloc),
			HeapSysMB:   mb(ms.HeapSys),
			Goroutines:  runtime.NumGoroutine(),
		},
		System: SystemHealth{
			CPUs:       runtime.NumCPU(),
			GoVersion:  runtime.Version(),
			Hostname:   host,
			TotalMemMB: mb(ms.Sys),
		},
		Dependencies: h.dependencies(c.Request.Context()),
		TimeStamp:    time.Now().UnixMilli(),
	}
	response.Success(c, http.StatusOK, data, MsgSuccess, nil)
}

func (h *SystemHandler) dependencies(ctx context.Context) map[string]string {
	deps := map[string]string{}
	if h.Repo != nil {
		c, cancel := context.WithTimeout(ctx, 2*time.Second)
		deps["store"] = status(h.Repo.Ping(c))
		cancel()
	}
	if h.Redis != nil {
		deps["redis"] = status(helpers.PingRedis(ctx, h.Redis))
	}
	return deps
}

func status(err error) string {
	if err != nil {
		return "down"
	}
	return "up"
}

func mb(b uint64) string {
	return strconv.FormatFloat(float64(b)/1024/1024, 'f', 2, 64)
}
