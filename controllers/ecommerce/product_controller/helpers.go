package product_controller

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
)

// requestContext bounds a catalog read by the standard timeout and by the
// client connection.
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), config.DefaultTimeout)
	return ctx, cancel
}

// splitList reads a comma separated parameter, also accepting repeats
// (?ids=a,b&ids=c).
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
