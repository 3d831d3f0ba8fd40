package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/account-service/config"
	"github.com/oksasatya/account-service/internal/application"
	"github.com/oksasatya/account-service/internal/container"
	"github.com/oksasatya/account-service/internal/infrastructure/memory"
	"github.com/oksasatya/account-service/pkg/helpers"
	"github.com/oksasatya/account-service/pkg/mailer"
)

func newEngine(t *testing.T, debug bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := helpers.NewDiscardLogger()

	container.SetConfig(&config.Config{Env: "test", RateLimitMax: 10, RateLimitWindow: time.Minute, DebugMetricsEnabled: debug})
	container.SetLogger(logger)
	container.SetRedis(nil)
	container.SetES(nil)
	container.SetUserRepo(memory.NewUserRepository())
	container.SetDispatcher(application.NewDispatcher(mailer.LogNotifier{Logger: logger}, logger, time.Second))

	e := gin.New()
	reg := NewRegistry(e)
	InitModules(reg)
	reg.RegisterAll()
	return e
}

func TestRoutesAreRegistered(t *testing.T) {
	e := newEngine(t, false)

	routes := map[string]bool{}
	for _, r := range e.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"POST /api/register",
		"PUT /api/confirmation/:token",
		"GET /api/self",
		"GET /api/health",
	} {
		assert.True(t, routes[want], want)
	}
	assert.False(t, routes["GET /api/debug/vars"])
}

func TestDebugRouteWhenEnabled(t *testing.T) {
	e := newEngine(t, true)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "accounts_registered_total")

	w = httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/debug/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestUnknownRouteEnvelope(t *testing.T) {
	e := newEngine(t, false)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, RouteNotFound, body["message"])
	assert.Equal(t, false, body["success"])
}
