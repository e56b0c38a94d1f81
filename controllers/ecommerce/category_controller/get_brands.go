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

// GetBrands godoc
// @Summary Get storefront brands
// @Description All brands with published product counts
// @Tags store
// @Produce json
// @Success 200 {object} models.ApiResponse{data=[]models.StorefrontBrand}
// @Failure 500 {object} models.ApiResponse
// @Router /store/brands [get]
func GetBrands(c *gin.Context) {
	if brands, ok := cache.GetBrands(); ok {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Brands fetched successfully", brands))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	brands, err := LoadBrands(ctx, config.CatalogGorm)
	if err != nil {
		zap.L().Error("[store.brands.list] query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch brands"))
		return
	}

	cache.SetBrands(brands)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Brands fetched successfully", brands))
}

// LoadBrands reads all brands with published product counts.
func LoadBrands(ctx context.Context, db *gorm.DB) ([]models.StorefrontBrand, error) {
	brands := []models.StorefrontBrand{}
	err := db.WithContext(ctx).Raw(`
		SELECT
			b.id::text AS id,
			b.name,
			b.slug,
			b.logo_url,
			COUNT(p.id)::int AS product_count
		FROM brands b
		LEFT JOIN products p ON p.brand = b.slug AND p.is_published = TRUE
		GROUP BY b.id, b.name, b.slug, b.logo_url
		ORDER BY b.name ASC
	`).Scan(&brands).Error
	return brands, err
}
