package wishlist_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/history"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
)

// GetWishlist godoc
// @Summary Get the visitor's wishlist
// @Description Saved products, most recently saved first. Products that were unpublished since are left out.
// @Tags store
// @Produce json
// @Success 200 {object} models.ApiResponse{data=[]models.ProductCard}
// @Failure 500 {object} models.ApiResponse
// @Router /store/wishlist [get]
func GetWishlist(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	visitorID := middleware.VisitorID(c)
	var items []models.WishlistItem
	if err := config.CatalogGorm.WithContext(ctx).
		Where("visitor_id = ?", visitorID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		zap.L().Error("[store.wishlist.get] query failed", zap.String("visitor_id", visitorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch wishlist"))
		return
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ProductID.String()
	}

	products, err := services.Catalog().ByIDs(ctx, ids)
	if err != nil {
		zap.L().Error("[store.wishlist.get] product lookup failed", zap.String("visitor_id", visitorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch wishlist"))
		return
	}

	cards := make([]models.ProductCard, len(products))
	for i, p := range products {
		cards[i] = p.Card()
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Wishlist fetched", history.OrderByIDs(cards, ids)))
}
