package brand_controller

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

// CreateBrand godoc
// @Summary Create a brand
// @Tags CMS - Brands
// @Accept json
// @Produce json
// @Param brand body models.BrandRequest true "Brand"
// @Success 201 {object} models.ApiResponse{data=models.Brand}
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /api/v1/admin/brands [post]
func CreateBrand(c *gin.Context) {
	var req models.BrandRequest
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

	brand := models.Brand{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	}
	if err := config.CatalogGorm.WithContext(ctx).Create(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "A brand with this slug already exists"))
			return
		}
		zap.L().Error("[admin.brand.create] insert failed", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create brand"))
		return
	}

	cache.Invalidate()
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Brand created successfully", brand))
}
