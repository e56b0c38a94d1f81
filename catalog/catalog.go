// Package catalog answers the storefront's product read paths: faceted search
// and the browsing-history rails.
package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/Modeva-Ecommerce/modeva-storefront/history"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/search"
)

// ErrNotFound is returned when a requested product does not exist or is not
// published.
var ErrNotFound = errors.New("product not found")

// Repository defines read operations for the published catalog.
type Repository interface {
	Search(ctx context.Context, q search.QuerySpec) (search.Page, error)
	ReadProducts(ctx context.Context, q history.ReadQuery) ([]models.ProductCard, error)
	BySlug(ctx context.Context, slug string) (*models.Product, error)
	ByIDs(ctx context.Context, ids []string) ([]models.Product, error)
}

func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

func cards(products []models.Product) []models.ProductCard {
	out := make([]models.ProductCard, len(products))
	for i, p := range products {
		out[i] = p.Card()
	}
	return out
}

// validIDs drops anything that is not a UUID so it never reaches a uuid column.
func validIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			out = append(out, id)
		}
	}
	return out
}
