package brand_controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

// GetBrands godoc
// @Summary List brands
// @Tags CMS - Brands
// @Produce json
// @Param q query string false "Name or slug contains"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.Brand}
// @Router /api/v1/admin/brands [get]
func GetBrands(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c, 20, 100)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	db := config.CatalogGorm.WithContext(ctx).Model(&models.Brand{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		db = db.Where("name ILIKE ? OR slug ILIKE ?", "%"+q+"%", "%"+q+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		zap.L().Error("[admin.brand.list] count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch brands"))
		return
	}

	brands := []models.Brand{}
	if err := db.Order("name ASC").Limit(limit).Offset(offset).Find(&brands).Error; err != nil {
		zap.L().Error("[admin.brand.list] query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch brands"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Brands fetched successfully", brands,
		models.NewPagination(page, limit, int(total))))
}
