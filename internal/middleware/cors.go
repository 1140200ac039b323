package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	allowOrigin  = "*"
	allowMethods = "GET, OPTIONS"
	allowHeaders = "Content-Type, Authorization, X-Request-ID"
)

// CORS sets the cross-origin headers on every response, before any other handler runs.
// Registered on the engine so 404s and probes carry them too.
//
// Headers:
//   - Access-Control-Allow-Origin: *
//   - Access-Control-Allow-Methods: GET, OPTIONS
//   - Access-Control-Allow-Headers: Content-Type, Authorization, X-Request-ID
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", allowOrigin)
		h.Set("Access-Control-Allow-Methods", allowMethods)
		h.Set("Access-Control-Allow-Headers", allowHeaders)
		c.Next()
	}
}

// JSONContent sets Content-Type: application/json up front, so pre-flight
// answers carry it as well. Kept off the swagger routes, which serve HTML and assets.
func JSONContent() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

// Preflight answers OPTIONS requests with 200 and an empty body.
// Handlers registered after it never see pre-flight requests.
func Preflight() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
