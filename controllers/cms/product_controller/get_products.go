package product_controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/catalog"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/search"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

// GetProducts godoc
// @Summary List products
// @Description Paginated product list including unpublished products
// @Tags CMS - Products
// @Produce json
// @Param q query string false "Name, slug or description contains"
// @Param category query string false "Category slug"
// @Param brand query string false "Brand slug"
// @Param published query bool false "Filter by published state"
// @Param sort query string false "Sort key" Enums(best-selling, price-low-to-high, price-high-to-low, newest-arrivals, avg-customer-review) default(newest-arrivals)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.Product}
// @Router /api/v1/admin/products [get]
func GetProducts(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c, 20, 100)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var conditions []string
	var args []any
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		conditions = append(conditions, "(p.name ILIKE ? OR p.slug ILIKE ? OR p.description ILIKE ?)")
		args = append(args, like, like, like)
	}
	if category := c.Query("category"); category != "" {
		conditions = append(conditions, "p.category = ?")
		args = append(args, category)
	}
	if brand := c.Query("brand"); brand != "" {
		conditions = append(conditions, "p.brand = ?")
		args = append(args, brand)
	}
	if published, err := strconv.ParseBool(c.Query("published")); err == nil {
		conditions = append(conditions, "p.is_published = ?")
		args = append(args, published)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := config.CatalogGorm.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM products p "+where, args...).
		Scan(&total).Error; err != nil {
		zap.L().Error("[admin.product.list] count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch products"))
		return
	}

	products := []models.Product{}
	query := "SELECT p.* FROM products p " + where +
		" ORDER BY " + catalog.OrderClause(c.DefaultQuery("sort", search.SortNewestArrivals)) +
		" LIMIT ? OFFSET ?"
	if err := config.CatalogGorm.WithContext(ctx).
		Raw(query, append(args, limit, offset)...).
		Scan(&products).Error; err != nil {
		zap.L().Error("[admin.product.list] query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch products"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products fetched successfully", products,
		models.NewPagination(page, limit, int(total))))
}
