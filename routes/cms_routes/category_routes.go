package cms_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/cms/category_controller"
)

func SetupCategoryRoutes(rg *gin.RouterGroup) {
	category := rg.Group("/categories")

	// ════════════════════════════════════════════════════════════
	// Reads
	// ════════════════════════════════════════════════════════════
	category.GET("", category_controller.GetCategories)
	category.GET("/:id", category_controller.GetCategoryByID)

	// ════════════════════════════════════════════════════════════
	// Writes (invalidate storefront caches)
	// ════════════════════════════════════════════════════════════
	category.POST("", category_controller.CreateCategory)
	category.PATCH("/:id", category_controller.UpdateCategory)
	category.DELETE("/:id", category_controller.DeleteCategory)
}
