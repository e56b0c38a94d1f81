package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Modeva-Ecommerce/modeva-storefront/history"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/search"
)

const (
	baseURL = "http://storefront.test"
	idA     = "0190a5b2-7c3e-7d4f-8a1b-2c3d4e5f6a70"
	idB     = "0190a5b2-7c3e-7d4f-8a1b-2c3d4e5f6a71"
)

func newTestClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	return New(baseURL+"/", WithHTTPClient(&http.Client{Transport: transport})), transport
}

func TestClient_Search(t *testing.T) {
	t.Parallel()
	c, transport := newTestClient(t)

	var got *http.Request
	transport.RegisterResponder(http.MethodGet, baseURL+productsPath,
		func(req *http.Request) (*http.Response, error) {
			got = req
			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
				"message": "Products fetched successfully",
				"data": []models.ProductCard{
					{ID: idA, Name: "Trail Runner", Slug: "trail-runner", Price: 30, Category: "shoes", Brand: "nike"},
				},
				"meta": models.Pagination{Page: 2, Limit: 9, Total: 10, TotalPages: 2},
			})
		})

	s := search.Defaults()
	s.Category = "shoes"
	s.Price = "10-50"
	s.Page = "2"

	page, err := c.Search(context.Background(), search.Derive(s))
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "shoes", got.URL.Query().Get("category"))
	assert.Equal(t, "10-50", got.URL.Query().Get("price"))
	assert.Equal(t, "2", got.URL.Query().Get("page"))
	assert.False(t, got.URL.Query().Has("brand"))

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "trail-runner", page.Products[0].Slug)
}

func TestClient_SearchUnsatisfiableSkipsRequest(t *testing.T) {
	t.Parallel()
	c, transport := newTestClient(t)

	s := search.Defaults()
	s.Price = "cheap"

	page, err := c.Search(context.Background(), search.Derive(s))
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Equal(t, 0, transport.GetTotalCallCount())
}

func TestClient_SearchError(t *testing.T) {
	t.Parallel()
	c, transport := newTestClient(t)

	transport.RegisterResponder(http.MethodGet, baseURL+productsPath,
		httpmock.NewStringResponder(http.StatusInternalServerError, `{"message":"Failed to fetch products","error":true}`))

	_, err := c.Search(context.Background(), search.Derive(search.Defaults()))
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Failed to fetch products", apiErr.Message)
}

func TestClient_ReadProducts(t *testing.T) {
	t.Parallel()

	t.Run("history reorders to recency", func(t *testing.T) {
		t.Parallel()
		c, transport := newTestClient(t)

		var got *http.Request
		transport.RegisterResponder(http.MethodGet, baseURL+browsingHistoryPath,
			func(req *http.Request) (*http.Response, error) {
				got = req
				return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
					"message": "ok",
					"data":    []models.ProductCard{{ID: idA}, {ID: idB}},
				})
			})

		cards, err := c.ReadProducts(context.Background(), history.ReadQuery{
			Mode: history.ModeHistory,
			IDs:  []string{idB, "junk", idA},
		})
		require.NoError(t, err)

		require.NotNil(t, got)
		assert.Equal(t, "history", got.URL.Query().Get("type"))
		assert.Equal(t, idB+","+idA, got.URL.Query().Get("ids"))
		require.Len(t, cards, 2)
		assert.Equal(t, idB, cards[0].ID)
		assert.Equal(t, idA, cards[1].ID)
	})

	t.Run("related sends categories", func(t *testing.T) {
		t.Parallel()
		c, transport := newTestClient(t)

		var got *http.Request
		transport.RegisterResponder(http.MethodGet, baseURL+browsingHistoryPath,
			func(req *http.Request) (*http.Response, error) {
				got = req
				return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
					"message": "ok",
					"data":    []models.ProductCard{{ID: "x", Category: "shoes"}},
				})
			})

		cards, err := c.ReadProducts(context.Background(), history.ReadQuery{
			Mode:       history.ModeRelated,
			IDs:        []string{idA},
			Categories: []string{"shoes", "shoes", ""},
		})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "related", got.URL.Query().Get("type"))
		assert.Equal(t, "shoes", got.URL.Query().Get("categories"))
		assert.Len(t, cards, 1)
	})

	t.Run("empty history skips request", func(t *testing.T) {
		t.Parallel()
		c, transport := newTestClient(t)

		cards, err := c.ReadProducts(context.Background(), history.ReadQuery{Mode: history.ModeHistory})
		require.NoError(t, err)
		assert.Empty(t, cards)
		assert.Equal(t, 0, transport.GetTotalCallCount())
	})
}

func TestClient_DrivesSession(t *testing.T) {
	c, transport := newTestClient(t)
	transport.RegisterResponder(http.MethodGet, baseURL+productsPath,
		func(req *http.Request) (*http.Response, error) {
			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
				"message": "ok",
				"data":    []models.ProductCard{{ID: idA, Brand: req.URL.Query().Get("brand")}},
				"meta":    models.Pagination{Page: 1, Limit: 9, Total: 1, TotalPages: 1},
			})
		})

	session := search.NewSession(search.Defaults(), c)
	defer session.Close()

	session.SetFilter(search.Patch{Brand: search.String("puma")})
	session.Wait()

	res := session.Results()
	require.Len(t, res.Products, 1)
	assert.Equal(t, "puma", res.Products[0].Brand)
}
