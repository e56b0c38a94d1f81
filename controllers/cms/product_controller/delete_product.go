package product_controller

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

// DeleteProduct godoc
// @Summary Delete a product
// @Description Deletes the product and any wishlist entries for it. Past order lines keep their snapshot.
// @Tags CMS - Products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/admin/products/{id} [delete]
func DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var product models.Product
	if err := config.CatalogGorm.WithContext(ctx).Select("id, slug").First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		}
		return
	}

	err = config.CatalogGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.WishlistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		zap.L().Error("[admin.product.delete] failed", zap.String("id", productID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete product"))
		return
	}

	cache.Invalidate()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product deleted successfully", nil))
}
