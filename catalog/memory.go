package catalog

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/Modeva-Ecommerce/modeva-storefront/history"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/search"
)

// MemoryRepository is an in-process catalog with the same filtering and
// ordering rules as GormRepository. Used by tests and the demo server.
type MemoryRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

func NewMemoryRepository(products ...models.Product) *MemoryRepository {
	return &MemoryRepository{products: slices.Clone(products)}
}

// Put inserts or replaces a product by id.
func (m *MemoryRepository) Put(p models.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == p.ID {
			m.products[i] = p
			return
		}
	}
	m.products = append(m.products, p)
}

func (m *MemoryRepository) Search(_ context.Context, q search.QuerySpec) (search.Page, error) {
	page := search.EmptyPage(q.Page)
	if q.Unsatisfiable {
		return page, nil
	}

	m.mu.RLock()
	var matched []models.Product
	for _, p := range m.products {
		if p.IsPublished && q.Match(p) {
			matched = append(matched, p)
		}
	}
	m.mu.RUnlock()

	sortProducts(matched, q.Sort)

	limit := q.Limit
	if limit <= 0 {
		limit = search.PageSize
	}
	page.Total = len(matched)
	page.TotalPages = totalPages(len(matched), limit)

	start := min(max(q.Offset(), 0), len(matched))
	end := min(start+limit, len(matched))
	page.Products = cards(matched[start:end])
	return page, nil
}

func (m *MemoryRepository) ReadProducts(_ context.Context, q history.ReadQuery) ([]models.ProductCard, error) {
	q = q.Normalize()
	if q.Empty() {
		return []models.ProductCard{}, nil
	}

	m.mu.RLock()
	var matched []models.Product
	for _, p := range m.products {
		if !p.IsPublished {
			continue
		}
		id := p.ID.String()
		switch q.Mode {
		case history.ModeHistory:
			if slices.Contains(q.IDs, id) {
				matched = append(matched, p)
			}
		case history.ModeRelated:
			if slices.Contains(q.IDs, id) {
				continue
			}
			if len(q.Categories) > 0 && !slices.Contains(q.Categories, p.Category) {
				continue
			}
			matched = append(matched, p)
		}
	}
	m.mu.RUnlock()

	if q.Mode == history.ModeHistory {
		return history.OrderByIDs(cards(matched), q.IDs), nil
	}
	sortProducts(matched, search.DefaultSort)
	if len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return cards(matched), nil
}

func (m *MemoryRepository) BySlug(_ context.Context, slug string) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.Slug == slug && p.IsPublished {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) ByIDs(_ context.Context, ids []string) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Product{}
	for _, p := range m.products {
		if p.IsPublished && slices.Contains(ids, p.ID.String()) {
			out = append(out, p)
		}
	}
	return out, nil
}

// sortProducts mirrors orderClauses.
func sortProducts(products []models.Product, sort string) {
	byID := func(a, b models.Product) int {
		return cmp.Compare(a.ID.String(), b.ID.String())
	}
	var less func(a, b models.Product) int
	switch sort {
	case search.SortPriceLowToHigh:
		less = func(a, b models.Product) int { return cmp.Compare(a.Price, b.Price) }
	case search.SortPriceHighToLow:
		less = func(a, b models.Product) int { return cmp.Compare(b.Price, a.Price) }
	case search.SortNewestArrivals:
		less = func(a, b models.Product) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case search.SortAvgCustomerReview:
		less = func(a, b models.Product) int {
			return cmp.Or(cmp.Compare(b.AvgRating, a.AvgRating), cmp.Compare(b.NumReviews, a.NumReviews))
		}
	default:
		less = func(a, b models.Product) int {
			return cmp.Or(cmp.Compare(b.NumSales, a.NumSales), b.CreatedAt.Compare(a.CreatedAt))
		}
	}
	slices.SortStableFunc(products, func(a, b models.Product) int {
		return cmp.Or(less(a, b), byID(a, b))
	})
}
