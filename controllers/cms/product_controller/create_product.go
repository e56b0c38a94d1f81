package product_controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
)

// CreateProduct godoc
// @Summary Create a new product
// @Description Category and brand are referenced by slug and must exist. The product slug is derived from the name when omitted.
// @Tags CMS - Products
// @Accept json
// @Produce json
// @Param product body models.ProductRequest true "Product details"
// @Success 201 {object} models.ApiResponse{data=models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/products [post]
func CreateProduct(c *gin.Context) {
	start := time.Now()

	var req models.ProductRequest
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

	refErr, err := validateReferences(ctx, config.CatalogGorm, req.Category, req.Brand)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}
	if refErr != nil {
		c.JSON(refErr.status, models.ErrorResponse(c, refErr.message))
		return
	}

	product := models.Product{
		Name:         strings.TrimSpace(req.Name),
		Slug:         slug,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Price:        req.Price,
		ListPrice:    req.ListPrice,
		Category:     req.Category,
		Brand:        req.Brand,
		Tags:         datatypes.JSONSlice[string](cleanTags(req.Tags)),
		CountInStock: req.CountInStock,
		IsPublished:  req.IsPublished == nil || *req.IsPublished,
	}

	if err := config.CatalogGorm.WithContext(ctx).Create(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "A product with this slug already exists"))
			return
		}
		zap.L().Error("[admin.product.create] insert failed", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create product"))
		return
	}

	// is_published has a database default of true, so an explicit false
	// must be written after the insert.
	if !product.IsPublished {
		if err := config.CatalogGorm.WithContext(ctx).Model(&product).Update("is_published", false).Error; err != nil {
			zap.L().Error("[admin.product.create] unpublish failed", zap.String("id", product.ID.String()), zap.Error(err))
		}
	}

	cache.Invalidate()
	zap.L().Info("[admin.product.create] success",
		zap.String("id", product.ID.String()), zap.String("slug", slug), zap.Duration("took", time.Since(start)))
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Product created successfully", product))
}
