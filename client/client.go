// Package client talks to the storefront API. It is the network side of the
// search session and the browsing-history rails used by the CLI.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/Modeva-Ecommerce/modeva-storefront/history"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/search"
)

const (
	productsPath        = "/api/v1/store/products"
	browsingHistoryPath = "/api/v1/store/products/browsing-history"

	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10
)

// APIError is a non-2xx answer from the storefront.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("storefront returned %d", e.Status)
	}
	return fmt.Sprintf("storefront returned %d: %s", e.Status, e.Message)
}

// Client is a storefront API client. It implements search.Fetcher and
// history.ProductReader.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a client for the storefront at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope[T any] struct {
	Message string             `json:"message"`
	Data    T                  `json:"data"`
	Error   bool               `json:"error"`
	Meta    *models.Pagination `json:"meta"`
}

// Search fetches one page of products. Unsatisfiable specs return an empty
// page without a request.
func (c *Client) Search(ctx context.Context, q search.QuerySpec) (search.Page, error) {
	if q.Unsatisfiable {
		return search.EmptyPage(q.Page), nil
	}

	var env envelope[[]models.ProductCard]
	if err := c.get(ctx, productsPath, q.Values(), &env); err != nil {
		return search.Page{}, errors.Wrap(err, "search products")
	}

	page := search.EmptyPage(q.Page)
	if env.Data != nil {
		page.Products = env.Data
	}
	if env.Meta != nil {
		page.Page = env.Meta.Page
		page.Total = env.Meta.Total
		page.TotalPages = env.Meta.TotalPages
	}
	return page, nil
}

// ReadProducts fetches a browsing-history rail.
func (c *Client) ReadProducts(ctx context.Context, q history.ReadQuery) ([]models.ProductCard, error) {
	q = q.Normalize()
	if q.Empty() {
		return []models.ProductCard{}, nil
	}

	params := url.Values{}
	params.Set("type", string(q.Mode))
	if len(q.IDs) > 0 {
		params.Set("ids", strings.Join(q.IDs, ","))
	}
	if len(q.Categories) > 0 {
		params.Set("categories", strings.Join(q.Categories, ","))
	}

	var env envelope[[]models.ProductCard]
	if err := c.get(ctx, browsingHistoryPath, params, &env); err != nil {
		return nil, errors.Wrapf(err, "read %s products", q.Mode)
	}
	if env.Data == nil {
		return []models.ProductCard{}, nil
	}
	if q.Mode == history.ModeHistory {
		return history.OrderByIDs(env.Data, q.IDs), nil
	}
	return env.Data, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var env envelope[json.RawMessage]
	if json.Unmarshal(body, &env) == nil {
		apiErr.Message = env.Message
	}
	return apiErr
}
