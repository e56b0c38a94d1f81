package category_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// GetCategoryByID godoc
// @Summary Get a category
// @Description Category with its subcategories
// @Tags CMS - Categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.ApiResponse{data=models.Category}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/admin/categories/{id} [get]
func GetCategoryByID(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid category ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var category models.Category
	err = config.CatalogGorm.WithContext(ctx).
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&category, "id = ?", categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Category not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Category fetched successfully", category))
}
