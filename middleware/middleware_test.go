package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiter_MemoryBackend(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(NewMemoryLimiter(2, time.Minute)))
	r.GET("/admin/brands", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "ok", nil))
	})

	do := func() (*httptest.ResponseRecorder, models.ApiResponse) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/brands", http.NoBody)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(rec, req)
		var body models.ApiResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return rec, body
	}

	rec, body := do()
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, body.Rate)
	assert.Equal(t, 2, body.Rate.Limit)
	assert.Equal(t, 1, body.Rate.Remaining)

	rec, _ = do()
	assert.Equal(t, http.StatusOK, rec.Code)

	before := testutil.ToFloat64(metrics.RateLimitRejectionsTotal)
	rec, body = do()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.True(t, body.Error)
	require.NotNil(t, body.Rate)
	assert.Equal(t, 0, body.Rate.Remaining)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RateLimitRejectionsTotal))
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	t.Parallel()
	l := NewMemoryLimiter(1, time.Minute)

	ok, _, err := l.Take(t.Context(), "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _, err = l.Take(t.Context(), "a")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, _, err = l.Take(t.Context(), "b")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVisitor(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(Visitor(false))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, VisitorID(c))
	})

	t.Run("issues a new id", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", http.NoBody))

		id := rec.Body.String()
		assert.NoError(t, uuid.Validate(id))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, VisitorCookie, cookies[0].Name)
		assert.Equal(t, id, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("keeps an existing id", func(t *testing.T) {
		t.Parallel()
		existing := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/whoami", http.NoBody)
		req.AddCookie(&http.Cookie{Name: VisitorCookie, Value: existing})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, existing, rec.Body.String())
	})

	t.Run("replaces a forged id", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/whoami", http.NoBody)
		req.AddCookie(&http.Cookie{Name: VisitorCookie, Value: "'; DROP TABLE"})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.NoError(t, uuid.Validate(rec.Body.String()))
	})
}

func TestRequestLog(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(RequestLog(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", http.NoBody)
	req.Header.Set(RequestIDHeader, "req-123")
	r.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.EqualValues(t, http.StatusInternalServerError, entries[1].ContextMap()["status"])
}

func TestMetrics(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/store/products/:slug", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/store/products/:slug", "404")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/store/products/nope", http.NoBody))
	assert.Equal(t, before+1, testutil.ToFloat64(counter))

	health := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/healthz", "200")
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))
	assert.Zero(t, testutil.ToFloat64(health))
}
