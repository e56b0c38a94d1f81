package wishlist_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// RemoveWishlistItem godoc
// @Summary Remove a product from the wishlist
// @Tags store
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /store/wishlist/{productId} [delete]
func RemoveWishlistItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	visitorID := middleware.VisitorID(c)
	res := config.CatalogGorm.WithContext(ctx).
		Where("visitor_id = ? AND product_id = ?", visitorID, productID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		zap.L().Error("[store.wishlist.remove] delete failed", zap.String("visitor_id", visitorID), zap.Error(res.Error))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update wishlist"))
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product is not in the wishlist"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product removed from wishlist", nil))
}
