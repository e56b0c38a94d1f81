package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParsePagination reads page and limit query parameters. Invalid values fall
// back to page 1 and defaultLimit; limit is capped at maxLimit.
func ParsePagination(c *gin.Context, defaultLimit, maxLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return page, limit, (page - 1) * limit
}
