package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"backoffice/api/internal/config"
)

// SignInThrottle enforces a fixed-window attempt budget per client IP on
// the credential endpoints, backed by a redis counter. Redis being down
// fails open; losing the throttle is preferable to losing sign-in.
func SignInThrottle(cfg config.ThrottleConfig, client *redis.Client, log zerolog.Logger) gin.HandlerFunc {
	if cfg.SignInAttempts <= 0 || client == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("throttle:signin:%s", c.ClientIP())

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			log.Warn().Err(err).Msg("sign-in throttle unavailable")
			c.Next()
			return
		}
		if count == 1 {
			if err := client.Expire(ctx, key, cfg.SignInWindow).Err(); err != nil {
				log.Warn().Err(err).Msg("sign-in throttle expire failed")
			}
		}

		if count > int64(cfg.SignInAttempts) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too_many_attempts"})
			return
		}

		c.Next()
	}
}
