package brand_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// GetBrandByID godoc
// @Summary Get a brand
// @Tags CMS - Brands
// @Produce json
// @Param id path string true "Brand ID"
// @Success 200 {object} models.ApiResponse{data=models.Brand}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/admin/brands/{id} [get]
func GetBrandByID(c *gin.Context) {
	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid brand ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var brand models.Brand
	err = config.CatalogGorm.WithContext(ctx).First(&brand, "id = ?", brandID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Brand not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Brand fetched successfully", brand))
}
