package product_controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/history"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// UpdateProduct godoc
// @Summary Update an existing product
// @Description Partial update; only provided fields change.
// @Tags CMS - Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param product body models.UpdateProductRequest true "Product update fields"
// @Success 200 {object} models.ApiResponse{data=models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /api/v1/admin/products/{id} [patch]
func UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	var input models.UpdateProductRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	updates, msg := productUpdates(input)
	if msg != "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, msg))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var product models.Product
	if err := config.CatalogGorm.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		}
		return
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "No changes detected", product))
		return
	}

	category, _ := updates["category"].(string)
	brand, _ := updates["brand"].(string)
	refErr, err := validateReferences(ctx, config.CatalogGorm, category, brand)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}
	if refErr != nil {
		c.JSON(refErr.status, models.ErrorResponse(c, refErr.message))
		return
	}

	if err := config.CatalogGorm.WithContext(ctx).Model(&product).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "A product with this slug already exists"))
			return
		}
		zap.L().Error("[admin.product.update] failed", zap.String("id", productID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update product"))
		return
	}

	if err := config.CatalogGorm.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to reload product"))
		return
	}

	cache.Invalidate()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product updated successfully", product))
}

// productUpdates maps the provided fields to column updates. A non-empty
// message means the input is invalid.
func productUpdates(input models.UpdateProductRequest) (map[string]any, string) {
	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, "Name cannot be empty"
		}
		updates["name"] = name
	}
	if input.Slug != nil {
		slug := strings.TrimSpace(*input.Slug)
		if !history.IsSlug(slug) {
			return nil, "Slug must be lowercase letters, digits and hyphens"
		}
		updates["slug"] = slug
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.ListPrice != nil {
		updates["list_price"] = *input.ListPrice
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Brand != nil {
		updates["brand"] = *input.Brand
	}
	if input.Tags != nil {
		updates["tags"] = datatypes.JSONSlice[string](cleanTags(*input.Tags))
	}
	if input.CountInStock != nil {
		updates["count_in_stock"] = *input.CountInStock
	}
	if input.IsPublished != nil {
		updates["is_published"] = *input.IsPublished
	}
	return updates, ""
}
