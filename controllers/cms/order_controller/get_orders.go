package order_controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

// CMSOrderListRow is one row of the admin order list.
type CMSOrderListRow struct {
	models.OrderHistoryResponse
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

// GetOrders godoc
// @Summary Get orders (CMS)
// @Description Retrieve all orders with pagination. Supports filtering by status and searching by order number or customer.
// @Tags Admin - Orders
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 50)" default(10)
// @Param status query string false "Filter by order status (pending, processing, shipped, completed, cancelled)"
// @Param q query string false "Search by order number, customer email, or customer name"
// @Success 200 {object} models.ApiResponse{data=[]CMSOrderListRow,meta=models.Pagination}
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /admin/orders [get]
func GetOrders(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c, 10, 50)

	var conditions []string
	var args []any
	if status := strings.ToLower(strings.TrimSpace(c.Query("status"))); status != "" {
		conditions = append(conditions, "o.status = ?")
		args = append(args, status)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		conditions = append(conditions, "(o.order_number ILIKE ? OR o.customer_email ILIKE ? OR o.customer_name ILIKE ?)")
		args = append(args, like, like, like)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var total int64
	if err := config.CatalogGorm.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM orders o "+where, args...).
		Scan(&total).Error; err != nil {
		zap.L().Error("[admin.orders] count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count orders"))
		return
	}

	rows := []CMSOrderListRow{}
	query := `
		SELECT
			o.id::text AS id, o.order_number, o.status, o.total_amount, o.created_at,
			o.customer_name, o.customer_email,
			COALESCE((SELECT SUM(i.quantity) FROM order_items i WHERE i.order_id = o.id), 0)::int AS item_count
		FROM orders o
		` + where + `
		ORDER BY o.created_at DESC
		LIMIT ? OFFSET ?`
	if err := config.CatalogGorm.WithContext(ctx).
		Raw(query, append(args, limit, offset)...).
		Scan(&rows).Error; err != nil {
		zap.L().Error("[admin.orders] query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Orders fetched successfully", rows,
		models.NewPagination(page, limit, int(total))))
}
