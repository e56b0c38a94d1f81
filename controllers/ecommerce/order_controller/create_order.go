package order_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
)

// CreateOrder godoc
// @Summary Place an order
// @Description Prices the cart against current catalog data (10% tax, 5% shipping), decrements stock and records the sales.
// @Tags store
// @Accept json
// @Produce json
// @Param payload body models.CreateOrderRequest true "Checkout details"
// @Success 201 {object} models.ApiResponse{data=models.Order}
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse "Insufficient stock"
// @Failure 500 {object} models.ApiResponse
// @Router /store/orders [post]
func CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	visitorID, err := uuid.Parse(middleware.VisitorID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Missing visitor id"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	order, err := services.PlaceOrder(ctx, config.CatalogGorm, visitorID, req)
	switch {
	case errors.Is(err, services.ErrProductUnavailable):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	case errors.Is(err, services.ErrInsufficientStock):
		c.JSON(http.StatusConflict, models.ErrorResponse(c, err.Error()))
		return
	case err != nil:
		zap.L().Error("[store.order.create] failed", zap.String("visitor_id", visitorID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create order"))
		return
	}

	for _, item := range order.Items {
		cache.Products.Remove(item.ProductSlug)
	}
	metrics.OrdersCreatedTotal.Inc()
	zap.L().Info("[store.order.create] success",
		zap.String("order_number", order.OrderNumber),
		zap.String("total", order.TotalAmount.StringFixed(2)),
		zap.Int("items", len(order.Items)))

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Order created successfully", order))
}
