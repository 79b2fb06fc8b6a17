// Package gin adapts a floodgate.Limiter to the Gin web framework.
package gin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jassus213/floodgate"
)

// RateLimiter creates a Gin middleware handler that consumes one trigger from
// limiter per request. Every route the middleware is attached to shares the
// same counter.
//
// Example:
//
//	cooldown := floodgate.NewCooldown(100, time.Minute)
//	router := gin.Default()
//	router.Use(ginmw.RateLimiter(cooldown))
func RateLimiter(limiter floodgate.Limiter, options ...floodgate.Option) gin.HandlerFunc {
	cfg := floodgate.NewConfig(options...)

	return func(c *gin.Context) {
		result, err := limiter.Allow(c.Request.Context())
		if err != nil {
			cfg.Logger.Errorf("Limiter failed for %s %s: %v", c.Request.Method, c.FullPath(), err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatUint(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatUint(result.Remaining, 10))

		resetTimestamp := time.Now().Add(result.ResetAfter).Unix()
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTimestamp, 10))

		if !result.Allowed {
			cfg.Logger.Debugf(
				"Request denied from '%s'. Retry after: %s, Limit: %d",
				c.ClientIP(), result.ResetAfter, result.Limit,
			)
			cfg.ErrorHandler(c.Writer, c.Request, floodgate.ErrorExceeded, result)
			c.Abort()
			return
		}

		cfg.Logger.Debugf(
			"Request allowed from '%s'. Remaining: %d, Limit: %d",
			c.ClientIP(), result.Remaining, result.Limit,
		)

		c.Next()
	}
}
