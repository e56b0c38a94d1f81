package cms_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/cms/brand_controller"
)

func SetupBrandRoutes(rg *gin.RouterGroup) {
	brand := rg.Group("/brands")

	brand.GET("", brand_controller.GetBrands)
	brand.GET("/:id", brand_controller.GetBrandByID)
	brand.POST("", brand_controller.CreateBrand)
	brand.PATCH("/:id", brand_controller.UpdateBrand)
	brand.DELETE("/:id", brand_controller.DeleteBrand)
}
