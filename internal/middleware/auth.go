package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"backoffice/api/internal/config"
	"backoffice/api/internal/repository"
	"backoffice/api/internal/security"
)

// SessionCookie is the client-held session artifact. It is a cache only:
// this middleware re-derives the authoritative identity and role from the
// credential store on every request.
const SessionCookie = "session_user"

func Auth(cfg *config.AppConfig, users repository.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				tokenStr = cookie
			}
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_session"})
			return
		}

		claims, err := security.ParseSessionToken(tokenStr, cfg.Security.SessionSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_session"})
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_not_found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
			return
		}

		if user.IsDisabled {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user_disabled"})
			return
		}

		c.Set("session_claims", *claims)
		c.Set("current_user", user)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}
