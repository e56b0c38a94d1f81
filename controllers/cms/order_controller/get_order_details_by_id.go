package order_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// GetOrderDetailsByID godoc
// @Summary Get order details (CMS)
// @Tags Admin - Orders
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} models.ApiResponse{data=models.Order}
// @Failure 400 {object} models.ApiResponse "Invalid order ID"
// @Failure 404 {object} models.ApiResponse "Order not found"
// @Router /admin/orders/{id} [get]
func GetOrderDetailsByID(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	order, err := loadOrder(ctx, orderID)
	if errors.Is(err, errOrderNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
		return
	}
	if err != nil {
		zap.L().Error("[admin.order.details] load failed", zap.String("id", orderID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order fetched successfully", order))
}
