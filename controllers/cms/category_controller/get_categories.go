package category_controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

// GetCategories godoc
// @Summary List categories
// @Description Paginated categories with product counts. Filter by name or slug (q), status, and level (parents or children).
// @Tags CMS - Categories
// @Produce json
// @Param q query string false "Name or slug contains"
// @Param status query string false "Status" Enums(Active, Inactive)
// @Param level query string false "Level" Enums(parents, children)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.ApiResponse{data=[]models.CategoryWithProducts}
// @Router /api/v1/admin/categories [get]
func GetCategories(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c, 10, 100)

	var conditions []string
	var args []any
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		conditions = append(conditions, "(c.name ILIKE ? OR c.slug ILIKE ?)")
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	if status := c.Query("status"); status == "Active" || status == "Inactive" {
		conditions = append(conditions, "c.status = ?")
		args = append(args, status)
	}
	switch c.Query("level") {
	case "parents":
		conditions = append(conditions, "c.parent_id IS NULL")
	case "children":
		conditions = append(conditions, "c.parent_id IS NOT NULL")
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var total int64
	if err := config.CatalogGorm.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM categories c "+where, args...).
		Scan(&total).Error; err != nil {
		zap.L().Error("[admin.category.list] count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch categories"))
		return
	}

	categories := []models.CategoryWithProducts{}
	query := `
		SELECT
			c.id, c.name, c.slug, c.description, c.status,
			c.parent_id, c.parent_name, c.created_at, c.updated_at,
			COUNT(p.id)::int AS products
		FROM categories c
		LEFT JOIN products p ON p.category = c.slug
		` + where + `
		GROUP BY c.id
		ORDER BY c.created_at ASC
		LIMIT ? OFFSET ?`
	if err := config.CatalogGorm.WithContext(ctx).
		Raw(query, append(args, limit, offset)...).
		Scan(&categories).Error; err != nil {
		zap.L().Error("[admin.category.list] query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch categories"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Categories fetched successfully", categories,
		models.NewPagination(page, limit, int(total))))
}
