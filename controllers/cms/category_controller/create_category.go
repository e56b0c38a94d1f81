package category_controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

// CreateCategory godoc
// @Summary Create a category
// @Description Create a top-level category, or a subcategory when parent_id is set. The slug is derived from the name when omitted.
// @Tags CMS - Categories
// @Accept json
// @Produce json
// @Param category body models.CategoryRequest true "Category"
// @Success 201 {object} models.ApiResponse{data=models.Category}
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse "Slug already in use"
// @Router /api/v1/admin/categories [post]
func CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	slug, ok := utils.ResolveSlug(req.Slug, req.Name)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Slug must be lowercase letters, digits and hyphens"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	category := models.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: req.Description,
		Status:      "Active",
	}

	if req.ParentID != nil {
		var parent models.Category
		if err := config.CatalogGorm.WithContext(ctx).First(&parent, "id = ?", *req.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Parent category not found"))
			} else {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
			}
			return
		}
		if parent.ParentID != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Selected parent category must be top-level"))
			return
		}
		category.ParentID = &parent.ID
		category.ParentName = &parent.Name
	}

	if err := config.CatalogGorm.WithContext(ctx).Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "A category with this slug already exists"))
			return
		}
		zap.L().Error("[admin.category.create] insert failed", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create category"))
		return
	}

	cache.Invalidate()
	zap.L().Info("[admin.category.create] success", zap.String("id", category.ID.String()), zap.String("slug", slug))
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Category created successfully", category))
}
