package wishlist_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
)

// AddWishlistItem godoc
// @Summary Save a product to the wishlist
// @Description Saving an already saved product is a no-op.
// @Tags store
// @Accept json
// @Produce json
// @Param payload body models.AddWishlistItemRequest true "Product to save"
// @Success 201 {object} models.ApiResponse{data=models.WishlistItem}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /store/wishlist [post]
func AddWishlistItem(c *gin.Context) {
	var req models.AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "product_id is required"))
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}
	visitorID, err := uuid.Parse(middleware.VisitorID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Missing visitor id"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	products, err := services.Catalog().ByIDs(ctx, []string{productID.String()})
	if err != nil {
		zap.L().Error("[store.wishlist.add] product lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update wishlist"))
		return
	}
	if len(products) == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}

	item := models.WishlistItem{VisitorID: visitorID, ProductID: productID}
	if err := config.CatalogGorm.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&item).Error; err != nil {
		zap.L().Error("[store.wishlist.add] insert failed", zap.String("visitor_id", visitorID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update wishlist"))
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Product saved to wishlist", item))
}
