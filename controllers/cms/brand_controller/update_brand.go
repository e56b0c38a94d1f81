package brand_controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/history"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// UpdateBrand godoc
// @Summary Update a brand
// @Description A slug change is applied to the brand's products in the same transaction.
// @Tags CMS - Brands
// @Accept json
// @Produce json
// @Param id path string true "Brand ID"
// @Param brand body models.UpdateBrandRequest true "Fields to update"
// @Success 200 {object} models.ApiResponse{data=models.Brand}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /api/v1/admin/brands/{id} [patch]
func UpdateBrand(c *gin.Context) {
	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid brand ID"))
		return
	}

	var input models.UpdateBrandRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		slug := strings.TrimSpace(*input.Slug)
		if !history.IsSlug(slug) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Slug must be lowercase letters, digits and hyphens"))
			return
		}
		updates["slug"] = slug
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.LogoURL != nil {
		updates["logo_url"] = *input.LogoURL
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var brand models.Brand
	if err := config.CatalogGorm.WithContext(ctx).First(&brand, "id = ?", brandID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Brand not found"))
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		}
		return
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "No changes detected", brand))
		return
	}

	oldSlug := brand.Slug
	err = config.CatalogGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&brand).Updates(updates).Error; err != nil {
			return err
		}
		if newSlug, ok := updates["slug"].(string); ok && newSlug != oldSlug {
			return tx.Model(&models.Product{}).
				Where("brand = ?", oldSlug).
				Update("brand", newSlug).Error
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "A brand with this slug already exists"))
		return
	}
	if err != nil {
		zap.L().Error("[admin.brand.update] failed", zap.String("id", brandID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update brand"))
		return
	}

	cache.Invalidate()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Brand updated successfully", brand))
}
