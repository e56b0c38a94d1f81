package wishlist_controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Modeva-Ecommerce/modeva-storefront/catalog"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
)

var (
	savedID  = uuid.MustParse("00000000-0000-7000-8000-000000000001")
	hiddenID = uuid.MustParse("00000000-0000-7000-8000-000000000002")
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	services.InitCatalog(catalog.NewMemoryRepository(
		models.Product{ID: savedID, Name: "Runner", Slug: "runner", Category: "shoes", IsPublished: true},
		models.Product{ID: hiddenID, Name: "Draft", Slug: "draft", Category: "shoes"},
	))
	os.Exit(m.Run())
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.Visitor(false))
	r.GET("/store/wishlist", GetWishlist)
	r.POST("/store/wishlist", AddWishlistItem)
	r.DELETE("/store/wishlist/:productId", RemoveWishlistItem)
	return r
}

type response struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   bool            `json:"error"`
}

func send(t *testing.T, r *gin.Engine, visitor *http.Cookie, method, target, body string) (int, response) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(visitor)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var out response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

// Every case here is rejected before the wishlist table is touched.
func TestWishlist_RejectsInvalidRequests(t *testing.T) {
	r := newRouter()
	visitor := &http.Cookie{Name: middleware.VisitorCookie, Value: uuid.NewString()}

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		wantCode int
	}{
		{"missing product id", http.MethodPost, "/store/wishlist", `{}`, http.StatusBadRequest},
		{"malformed product id", http.MethodPost, "/store/wishlist", `{"product_id":"abc"}`, http.StatusBadRequest},
		{"unknown product", http.MethodPost, "/store/wishlist", `{"product_id":"` + uuid.NewString() + `"}`, http.StatusNotFound},
		{"unpublished product", http.MethodPost, "/store/wishlist", `{"product_id":"` + hiddenID.String() + `"}`, http.StatusNotFound},
		{"remove malformed id", http.MethodDelete, "/store/wishlist/abc", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := send(t, r, visitor, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.wantCode, code)
			assert.True(t, body.Error)
		})
	}
}
