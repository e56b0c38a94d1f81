package order_controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
)

// UpdateOrderStatus godoc
// @Summary Update order status (CMS)
// @Description Move an order along pending, processing, shipped, completed. Pending and processing orders may be cancelled, which restores stock. admin_notes is required when cancelling.
// @Tags Admin - Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Param payload body models.UpdateOrderStatusRequest true "Update payload"
// @Success 200 {object} models.ApiResponse{data=models.UpdateOrderStatusResponse}
// @Failure 400 {object} models.ApiResponse "Bad request"
// @Failure 404 {object} models.ApiResponse "Order not found"
// @Failure 409 {object} models.ApiResponse "Transition not allowed"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /admin/orders/{id}/status [patch]
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Debug("[admin.order.update] bind failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	if msg := validateStatusRequest(req); msg != "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, msg))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	order, err := services.UpdateOrderStatus(ctx, config.CatalogGorm, orderID, req.Status, req.AdminNotes)
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
		return
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Cannot change order status: "+err.Error()))
		return
	case err != nil:
		zap.L().Error("[admin.order.update] failed", zap.String("id", orderID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update order"))
		return
	}

	if order.Status == models.OrderStatusCancelled {
		for _, item := range order.Items {
			cache.Products.Remove(item.ProductSlug)
		}
	}
	metrics.OrderStatusTransitionsTotal.WithLabelValues(order.Status).Inc()
	zap.L().Info("[admin.order.update] success",
		zap.String("order_number", order.OrderNumber), zap.String("status", order.Status))

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order updated successfully", models.UpdateOrderStatusResponse{
		ID:          order.ID.String(),
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		AdminNotes:  order.AdminNotes,
	}))
}

// validateStatusRequest returns a message when the request cannot be applied
// to any order.
func validateStatusRequest(req models.UpdateOrderStatusRequest) string {
	if req.Status == models.OrderStatusCancelled &&
		(req.AdminNotes == nil || strings.TrimSpace(*req.AdminNotes) == "") {
		return "admin_notes is required when cancelling an order"
	}
	return ""
}
