package order_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

// GetOrders godoc
// @Summary Get the visitor's order history
// @Tags store
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 50)" default(10)
// @Success 200 {object} models.ApiResponse{data=[]models.OrderHistoryResponse,meta=models.Pagination}
// @Failure 500 {object} models.ApiResponse
// @Router /store/orders [get]
func GetOrders(c *gin.Context) {
	visitorID := middleware.VisitorID(c)
	page, limit, offset := utils.ParsePagination(c, 10, 50)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var total int64
	if err := config.CatalogGorm.WithContext(ctx).
		Model(&models.Order{}).
		Where("visitor_id = ?", visitorID).
		Count(&total).Error; err != nil {
		zap.L().Error("[store.order.list] count failed", zap.String("visitor_id", visitorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders"))
		return
	}

	orders := []models.OrderHistoryResponse{}
	err := config.CatalogGorm.WithContext(ctx).Raw(`
		SELECT
			o.id::text AS id,
			o.order_number,
			o.status,
			o.total_amount,
			o.created_at,
			COALESCE(SUM(oi.quantity), 0)::int AS item_count
		FROM orders o
		LEFT JOIN order_items oi ON o.id = oi.order_id
		WHERE o.visitor_id = ?
		GROUP BY o.id
		ORDER BY o.created_at DESC
		LIMIT ? OFFSET ?
	`, visitorID, limit, offset).Scan(&orders).Error
	if err != nil {
		zap.L().Error("[store.order.list] query failed", zap.String("visitor_id", visitorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Orders fetched", orders,
		models.NewPagination(page, limit, int(total))))
}
