package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware adds headers suited to a JSON-only API
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Stop browsers from sniffing JSON as HTML
		c.Header("X-Content-Type-Options", "nosniff")

		c.Header("X-Frame-Options", "DENY")

		// Responses are data, never documents
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Message listings contain personal data
		c.Header("Cache-Control", "no-store")

		c.Next()
	}
}

// HSTSMiddleware enforces HTTPS (only for production)
func HSTSMiddleware(isProduction bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isProduction {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}
