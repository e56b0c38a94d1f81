package brand_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// DeleteBrand godoc
// @Summary Delete a brand
// @Description Fails with 409 while products still reference the brand.
// @Tags CMS - Brands
// @Param id path string true "Brand ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /api/v1/admin/brands/{id} [delete]
func DeleteBrand(c *gin.Context) {
	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid brand ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var brand models.Brand
	if err := config.CatalogGorm.WithContext(ctx).First(&brand, "id = ?", brandID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Brand not found"))
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		}
		return
	}

	var inUse int64
	if err := config.CatalogGorm.WithContext(ctx).Model(&models.Product{}).
		Where("brand = ?", brand.Slug).
		Count(&inUse).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to check brand usage"))
		return
	}
	if inUse > 0 {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Cannot delete a brand that products still reference"))
		return
	}

	if err := config.CatalogGorm.WithContext(ctx).Delete(&brand).Error; err != nil {
		zap.L().Error("[admin.brand.delete] failed", zap.String("id", brandID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete brand"))
		return
	}

	cache.Invalidate()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Brand deleted successfully", nil))
}
