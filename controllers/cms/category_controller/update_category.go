package category_controller

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

var (
	errParentNotFound    = errors.New("parent category not found")
	errParentNotTopLevel = errors.New("parent category is not top-level")
)

// UpdateCategory godoc
// @Summary Update a category
// @Description Update name, slug, description, status or parent. A slug change is applied to every product in the category in the same transaction.
// @Tags CMS - Categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body models.UpdateCategoryRequest true "Update category"
// @Success 200 {object} models.ApiResponse{data=models.Category}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /api/v1/admin/categories/{id} [patch]
func UpdateCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid category ID"))
		return
	}

	var input models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}
	if input.Slug != nil {
		trimmed := strings.TrimSpace(*input.Slug)
		if !history.IsSlug(trimmed) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Slug must be lowercase letters, digits and hyphens"))
			return
		}
		input.Slug = &trimmed
	}
	if input.ParentID != nil && *input.ParentID == categoryID {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Category cannot be its own parent"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var existing models.Category
	if err := config.CatalogGorm.WithContext(ctx).First(&existing, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Category not found"))
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		}
		return
	}

	if !hasChanges(input, existing) {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "No changes detected", existing))
		return
	}

	oldSlug := existing.Slug
	err = config.CatalogGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{}

		if input.ParentID != nil {
			var parent models.Category
			if err := tx.First(&parent, "id = ?", *input.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errParentNotFound
				}
				return err
			}
			if parent.ParentID != nil {
				return errParentNotTopLevel
			}
			updates["parent_id"] = parent.ID
			updates["parent_name"] = parent.Name
		}
		if input.Name != nil {
			updates["name"] = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Status != nil {
			updates["status"] = *input.Status
		}
		if input.Slug != nil {
			updates["slug"] = *input.Slug
		}

		// AfterUpdate keeps children's parent_name in sync.
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}

		if input.Slug != nil && *input.Slug != oldSlug {
			return tx.Model(&models.Product{}).
				Where("category = ?", oldSlug).
				Update("category", *input.Slug).Error
		}
		return nil
	})
	switch {
	case errors.Is(err, errParentNotFound):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Parent category not found"))
		return
	case errors.Is(err, errParentNotTopLevel):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Selected parent category must be top-level"))
		return
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "A category with this slug already exists"))
		return
	case err != nil:
		zap.L().Error("[admin.category.update] failed", zap.String("id", categoryID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update category"))
		return
	}

	if err := config.CatalogGorm.WithContext(ctx).First(&existing, "id = ?", categoryID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to reload category"))
		return
	}

	cache.Invalidate()
	zap.L().Info("[admin.category.update] success",
		zap.String("id", categoryID.String()), zap.String("old_slug", oldSlug), zap.String("slug", existing.Slug))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Category updated successfully", existing))
}

// hasChanges checks if any field in the request differs from existing
func hasChanges(input models.UpdateCategoryRequest, existing models.Category) bool {
	if input.Name != nil && strings.TrimSpace(*input.Name) != existing.Name {
		return true
	}
	if input.Slug != nil && *input.Slug != existing.Slug {
		return true
	}
	if input.Description != nil && *input.Description != existing.Description {
		return true
	}
	if input.Status != nil && *input.Status != existing.Status {
		return true
	}
	if input.ParentID != nil {
		if existing.ParentID == nil {
			return true
		}
		if *input.ParentID != *existing.ParentID {
			return true
		}
	}
	return false
}
