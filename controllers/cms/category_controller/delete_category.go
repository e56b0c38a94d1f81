package category_controller

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

// DeleteCategory godoc
// @Summary Delete a category
// @Description Fails with 409 while products or subcategories still reference the category.
// @Tags CMS - Categories
// @Param id path string true "Category ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /api/v1/admin/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid category ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var category models.Category
	if err := config.CatalogGorm.WithContext(ctx).First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Category not found"))
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		}
		return
	}

	var productCount, childCount int64
	if err := config.CatalogGorm.WithContext(ctx).Model(&models.Product{}).
		Where("category = ?", category.Slug).
		Count(&productCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to check category usage"))
		return
	}
	if err := config.CatalogGorm.WithContext(ctx).Model(&models.Category{}).
		Where("parent_id = ?", categoryID).
		Count(&childCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to check category usage"))
		return
	}
	if productCount > 0 {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Cannot delete a category that products still reference"))
		return
	}
	if childCount > 0 {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Cannot delete category with subcategories"))
		return
	}

	if err := config.CatalogGorm.WithContext(ctx).Delete(&category).Error; err != nil {
		zap.L().Error("[admin.category.delete] failed", zap.String("id", categoryID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete category"))
		return
	}

	cache.Invalidate()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Category deleted successfully", nil))
}
