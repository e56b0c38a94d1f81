package cms_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
)

// SetupAdminRoutes registers the catalog and order management API under
// /admin. Every admin request passes through the rate limiter.
func SetupAdminRoutes(rg *gin.RouterGroup, limiter middleware.Limiter) *gin.RouterGroup {
	admin := rg.Group("/admin")
	admin.Use(middleware.RateLimiter(limiter))

	SetupBrandRoutes(admin)
	SetupCategoryRoutes(admin)
	SetupProductRoutes(admin)
	SetupOrderRoutes(admin)
	return admin
}
