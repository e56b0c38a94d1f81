package cmd

import (
	"bytes"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jarcoal/httpmock"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := Root()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestHistoryCommands(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history.json")

	_, err := run(t, "history", "add", "p1", "shoes", "--file", file)
	require.NoError(t, err)
	_, err = run(t, "history", "add", "p2", "hats", "--file", file)
	require.NoError(t, err)
	_, err = run(t, "history", "add", "p1", "shoes", "--file", file)
	require.NoError(t, err)

	out, err := run(t, "history", "list", "--file", file)
	require.NoError(t, err)
	assert.Regexp(t, `(?s)1\s+p1\s+shoes.*2\s+p2\s+hats`, out)

	_, err = run(t, "history", "clear", "--file", file)
	require.NoError(t, err)

	out, err = run(t, "history", "list", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "History is empty.")
}

func TestBrowseCommand(t *testing.T) {
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	viper.Set("server", "http://storefront.test")
	t.Cleanup(func() { viper.Set("server", "http://localhost:8081") })

	httpmock.RegisterResponder(http.MethodGet, "http://storefront.test/api/v1/store/products",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "hats", req.URL.Query().Get("category"))
			return httpmock.NewStringResponse(http.StatusOK, `{
				"message": "ok",
				"data": [{"id": "p3", "name": "Summer Cap", "slug": "summer-cap", "category": "hats", "brand": "nike", "price": 15}],
				"meta": {"page": 1, "limit": 9, "total": 1, "total_pages": 1}
			}`), nil
		})

	out, err := run(t, "browse", "--category", "hats")
	require.NoError(t, err)
	assert.Contains(t, out, "summer-cap")
	assert.Contains(t, out, "Summer Cap")
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestNewRouter_RegistersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Server: config.ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}}}

	router := newRouter(cfg, middleware.NewMemoryLimiter(10, time.Minute), zap.NewNop())

	registered := map[string]bool{}
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /healthz",
		"GET /metrics",
		"GET /api/v1/store/products",
		"GET /api/v1/store/products/browsing-history",
		"GET /api/v1/store/products/filters/metadata",
		"GET /api/v1/store/products/:slug",
		"GET /api/v1/store/categories",
		"GET /api/v1/store/brands",
		"POST /api/v1/store/history",
		"DELETE /api/v1/store/wishlist/:productId",
		"POST /api/v1/store/orders",
		"GET /api/v1/admin/brands/:id",
		"PATCH /api/v1/admin/categories/:id",
		"DELETE /api/v1/admin/products/:id",
		"PATCH /api/v1/admin/orders/:id/status",
		"GET /api/v1/admin/orders/:id/invoice",
	} {
		assert.True(t, registered[want], want)
	}
}
