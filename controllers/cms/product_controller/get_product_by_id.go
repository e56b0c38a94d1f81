package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// GetProductByID godoc
// @Summary Get a product
// @Tags CMS - Products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} models.ApiResponse{data=models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/admin/products/{id} [get]
func GetProductByID(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var product models.Product
	err = config.CatalogGorm.WithContext(ctx).First(&product, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product fetched successfully", product))
}
