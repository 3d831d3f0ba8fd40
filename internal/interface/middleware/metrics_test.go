package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsRecordsRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(reg, "")
	require.NoError(t, err)

	r := gin.New()
	r.Use(m.Handler())
	r.PUT("/confirmation/:token", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	for _, token := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/confirmation/"+token, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	got := testutil.ToFloat64(m.Requests.With(prometheus.Labels{
		"method": http.MethodPut, "route": "/confirmation/:token", "status": "400",
	}))
	assert.Equal(t, float64(2), got)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Requests.With(prometheus.Labels{
		"method": http.MethodGet, "route": "unmatched", "status": "404",
	})))
	assert.Positive(t, testutil.CollectAndCount(m.Duration))
}

func TestHTTPMetricsReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewHTTPMetrics(reg, "accounts")
	require.NoError(t, err)
	second, err := NewHTTPMetrics(reg, "accounts")
	require.NoError(t, err)
	assert.Same(t, first.Requests, second.Requests)
}

func TestHTTPMetricsNilIsNoop(t *testing.T) {
	var m *HTTPMetrics
	r := gin.New()
	r.Use(m.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
