package order_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// GetOrderDetails godoc
// @Summary Get one of the visitor's orders
// @Tags store
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.ApiResponse{data=models.Order}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /store/orders/{id} [get]
func GetOrderDetails(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Scoped to the visitor so order ids cannot be enumerated.
	var order models.Order
	err = config.CatalogGorm.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND visitor_id = ?", orderID, middleware.VisitorID(c)).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
		return
	}
	if err != nil {
		zap.L().Error("[store.order.get] query failed", zap.String("order_id", orderID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch order"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order fetched", order))
}
