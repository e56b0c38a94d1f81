package cms_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/cms/product_controller"
)

func SetupProductRoutes(rg *gin.RouterGroup) {
	product := rg.Group("/products")

	// ════════════════════════════════════════════════════════════
	// Reads
	// ════════════════════════════════════════════════════════════
	product.GET("", product_controller.GetProducts)
	product.GET("/:id", product_controller.GetProductByID)

	// ════════════════════════════════════════════════════════════
	// Writes (invalidate storefront caches)
	// ════════════════════════════════════════════════════════════
	product.POST("", product_controller.CreateProduct)
	product.PATCH("/:id", product_controller.UpdateProduct)
	product.DELETE("/:id", product_controller.DeleteProduct)
}
