package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	VisitorCookie = "visitor_id"
	VisitorKey    = "visitor_id"

	visitorCookieMaxAge = 365 * 24 * time.Hour
)

// Visitor assigns every shopper an anonymous, cookie-backed id. It keys the
// browsing history, wishlist and orders; it is not authentication.
func Visitor(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(VisitorCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}

		// Refresh on every request so active visitors keep their id.
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     VisitorCookie,
			Value:    id,
			Path:     "/",
			MaxAge:   int(visitorCookieMaxAge.Seconds()),
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
		c.Set(VisitorKey, id)
		c.Next()
	}
}

// VisitorID returns the id set by Visitor.
func VisitorID(c *gin.Context) string {
	return c.GetString(VisitorKey)
}
