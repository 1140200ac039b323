package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/coinpulse/internal/logger"
)

// CacheStatusKey is set by handlers to report how a payload was served
// ("fresh", "hit", "stale", "mock"); RequestLogger adds it to the access log.
const CacheStatusKey = "cache_status"

// RequestLogger is a Gin middleware that logs method, path, status code,
// request latency, request ID and cache status (if available).
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
//
// Example log output:
//
//	{"level":"info","request_id":"...","method":"GET","path":"/api/crypto-data","status":200,"latency_ms":3,"cache_status":"hit","message":"http_request"}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		rid, _ := c.Get(RequestIDKey)

		ev := logger.L().Info()
		if status >= 500 {
			ev = logger.L().Error()
		}
		if cs, ok := c.Get(CacheStatusKey); ok {
			ev = ev.Str("cache_status", toString(cs))
		}
		ev.Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
