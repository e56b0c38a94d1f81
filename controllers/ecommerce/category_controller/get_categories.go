package category_controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// GetCategories godoc
// @Summary Get storefront categories
// @Description Active categories as a parent/subcategory tree with published product counts. A parent's count includes its subcategories.
// @Tags store
// @Produce json
// @Success 200 {object} models.ApiResponse{data=[]models.StorefrontCategory}
// @Failure 500 {object} models.ApiResponse
// @Router /store/categories [get]
func GetCategories(c *gin.Context) {
	if tree, ok := cache.GetTree(); ok {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories fetched successfully", tree))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	tree, err := LoadCategoryTree(ctx, config.CatalogGorm)
	if err != nil {
		zap.L().Error("[store.categories.list] query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch categories"))
		return
	}

	cache.SetTree(tree)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories fetched successfully", tree))
}

// LoadCategoryTree reads active categories with published product counts.
func LoadCategoryTree(ctx context.Context, db *gorm.DB) ([]models.StorefrontCategory, error) {
	query := `
		SELECT
			c.id::text AS id,
			c.name,
			c.slug,
			c.description,
			c.parent_id::text AS parent_id,
			COUNT(DISTINCT p.id)::int AS product_count
		FROM categories c
		LEFT JOIN products p ON p.category = c.slug AND p.is_published = TRUE
		WHERE c.status = 'Active'
		GROUP BY c.id, c.name, c.slug, c.description, c.parent_id
		ORDER BY c.name ASC
	`

	var rows []models.StorefrontCategory
	if err := db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return BuildCategoryTree(rows), nil
}

// BuildCategoryTree nests subcategories under their parents, keeping input
// order. Subcategories whose parent is missing (inactive) are dropped.
func BuildCategoryTree(rows []models.StorefrontCategory) []models.StorefrontCategory {
	children := map[string][]models.StorefrontCategory{}
	for _, row := range rows {
		if row.ParentID != nil {
			children[*row.ParentID] = append(children[*row.ParentID], row)
		}
	}

	tree := []models.StorefrontCategory{}
	for _, row := range rows {
		if row.ParentID != nil {
			continue
		}
		row.Subcategories = children[row.ID]
		for _, sub := range row.Subcategories {
			row.ProductCount += sub.ProductCount
		}
		tree = append(tree, row)
	}
	return tree
}
