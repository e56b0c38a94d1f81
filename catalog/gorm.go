package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"gorm.io/gorm"

	"github.com/Modeva-Ecommerce/modeva-storefront/history"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/search"
)

// GormRepository reads the catalog from Postgres.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository wraps an open gorm handle.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Search runs a faceted, paginated product search.
func (r *GormRepository) Search(ctx context.Context, q search.QuerySpec) (search.Page, error) {
	if q.Unsatisfiable {
		return search.EmptyPage(q.Page), nil
	}

	dataSQL, countSQL, args := SearchSQL(q)

	var total int64
	if err := r.db.WithContext(ctx).Raw(countSQL, args...).Scan(&total).Error; err != nil {
		return search.Page{}, errors.Wrap(err, "count products")
	}

	page := search.EmptyPage(q.Page)
	page.Total = int(total)
	page.TotalPages = totalPages(int(total), q.Limit)
	if total == 0 || q.Offset() >= int(total) {
		return page, nil
	}

	var products []models.Product
	if err := r.db.WithContext(ctx).Raw(dataSQL, args...).Scan(&products).Error; err != nil {
		return search.Page{}, errors.Wrap(err, "select products")
	}
	page.Products = cards(products)
	return page, nil
}

// ReadProducts resolves a browsing-history rail. History results come back in
// the order of q.IDs.
func (r *GormRepository) ReadProducts(ctx context.Context, q history.ReadQuery) ([]models.ProductCard, error) {
	q = q.Normalize()
	if q.Empty() {
		return []models.ProductCard{}, nil
	}

	query, args := ReadSQL(q)

	var products []models.Product
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&products).Error; err != nil {
		return nil, errors.Wrapf(err, "read %s products", q.Mode)
	}

	out := cards(products)
	if q.Mode == history.ModeHistory {
		out = history.OrderByIDs(out, q.IDs)
	}
	return out, nil
}

// BySlug returns one published product.
func (r *GormRepository) BySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_published = ?", slug, true).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get product %q", slug)
	}
	return &p, nil
}

// ByIDs returns the published products among ids, in no particular order.
func (r *GormRepository) ByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	products := []models.Product{}
	ids = validIDs(ids)
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ? AND is_published = ?", ids, true).
		Find(&products).Error
	if err != nil {
		return nil, errors.Wrap(err, "get products by id")
	}
	return products, nil
}
