package filter_controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// RatingThresholds are the minimum-rating options offered by the storefront.
var RatingThresholds = []int{4, 3, 2, 1}

// GetFilterMetadata godoc
// @Summary Get all filter metadata
// @Description Categories, brands and tags with product counts, the price range and rating thresholds for the storefront filters
// @Tags store
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.FilterMetadata}
// @Failure 500 {object} models.ApiResponse
// @Router /store/products/filters/metadata [get]
func GetFilterMetadata(c *gin.Context) {
	if cached, ok := cache.GetFilterMetadata(); ok {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter metadata fetched", cached))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), config.DefaultTimeout)
	defer cancel()

	metadata, err := LoadFilterMetadata(ctx, config.CatalogGorm)
	if err != nil {
		zap.L().Error("[store.filters.metadata] failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch filter metadata"))
		return
	}

	cache.SetFilterMetadata(metadata)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter metadata fetched", metadata))
}

// LoadFilterMetadata runs the facet queries concurrently.
func LoadFilterMetadata(ctx context.Context, db *gorm.DB) (*models.FilterMetadata, error) {
	metadata := &models.FilterMetadata{Ratings: RatingThresholds}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		metadata.Categories, err = getCategoriesWithSubcategories(ctx, db)
		return err
	})
	g.Go(func() (err error) {
		metadata.Brands, err = getBrandOptions(ctx, db)
		return err
	})
	g.Go(func() (err error) {
		metadata.Tags, err = getTagOptions(ctx, db)
		return err
	})
	g.Go(func() (err error) {
		metadata.PriceRange, err = getPriceRange(ctx, db)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return metadata, nil
}

type categoryRow struct {
	ID       string  `gorm:"column:id"`
	Name     string  `gorm:"column:name"`
	Slug     string  `gorm:"column:slug"`
	ParentID *string `gorm:"column:parent_id"`
}

// getCategoriesWithSubcategories fetches active categories as a two level tree.
func getCategoriesWithSubcategories(ctx context.Context, db *gorm.DB) ([]models.CategoryData, error) {
	var rows []categoryRow
	err := db.WithContext(ctx).Raw(`
		SELECT id::text AS id, name, slug, parent_id::text AS parent_id
		FROM categories
		WHERE status = 'Active'
		ORDER BY created_at ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return categoryTree(rows), nil
}

// categoryTree nests rows under their parents, keeping row order. Children
// whose parent is not in rows are dropped.
func categoryTree(rows []categoryRow) []models.CategoryData {
	children := map[string][]models.CategoryData{}
	var parents []models.CategoryData
	for _, r := range rows {
		cat := models.CategoryData{ID: r.ID, Name: r.Name, Slug: r.Slug}
		if r.ParentID != nil {
			cat.ParentID = *r.ParentID
			children[cat.ParentID] = append(children[cat.ParentID], cat)
			continue
		}
		parents = append(parents, cat)
	}

	out := make([]models.CategoryData, 0, len(parents))
	for _, p := range parents {
		p.Subcategories = children[p.ID]
		out = append(out, p)
	}
	return out
}

func getBrandOptions(ctx context.Context, db *gorm.DB) ([]models.FilterOption, error) {
	opts := []models.FilterOption{}
	err := db.WithContext(ctx).Raw(`
		SELECT b.name AS label, b.slug AS value, COUNT(p.id)::int AS count
		FROM brands b
		LEFT JOIN products p ON p.brand = b.slug AND p.is_published = TRUE
		GROUP BY b.name, b.slug
		ORDER BY b.name ASC
	`).Scan(&opts).Error
	return opts, err
}

func getTagOptions(ctx context.Context, db *gorm.DB) ([]models.FilterOption, error) {
	opts := []models.FilterOption{}
	err := db.WithContext(ctx).Raw(`
		SELECT t.tag AS label, t.tag AS value, COUNT(*)::int AS count
		FROM products p
		CROSS JOIN LATERAL jsonb_array_elements_text(p.tags) AS t(tag)
		WHERE p.is_published = TRUE
		GROUP BY t.tag
		ORDER BY count DESC, t.tag ASC
	`).Scan(&opts).Error
	return opts, err
}

// getPriceRange fetches the minimum and maximum published product prices.
func getPriceRange(ctx context.Context, db *gorm.DB) (*models.PriceRangeData, error) {
	var priceRange models.PriceRangeData
	err := db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(MIN(price), 0)::float8 AS min,
			COALESCE(MAX(price), 0)::float8 AS max
		FROM products
		WHERE is_published = TRUE
	`).Scan(&priceRange).Error
	if err != nil {
		return nil, err
	}
	return &priceRange, nil
}
