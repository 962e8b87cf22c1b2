package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"backoffice/api/internal/config"
	"backoffice/api/internal/middleware"
	"backoffice/api/internal/models"
	"backoffice/api/internal/repository"
	"backoffice/api/internal/service"
)

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	auth     *service.AuthService
	recovery *service.RecoveryService
	accounts *service.UserService
	users    repository.UserStore
	db       *pgxpool.Pool
	cache    *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRecoveryTokenRepository(db)

	return HandlerSet{
		log:      log,
		cfg:      cfg,
		auth:     service.NewAuthService(userRepo, cfg, log),
		recovery: service.NewRecoveryService(userRepo, tokenRepo, cfg, log),
		accounts: service.NewUserService(userRepo, log),
		users:    userRepo,
		db:       db,
		cache:    cache,
	}
}

func (h HandlerSet) Routes(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	sec := router.Group("/security")
	{
		sec.POST("/register", h.RegisterUser)
		sec.POST("/signin",
			middleware.SignInThrottle(h.cfg.Throttle, h.cache, h.log),
			h.SignIn,
		)
		sec.POST("/signout", h.SignOut)
		sec.GET("/users/:email/security-questions", h.SecurityQuestionsByEmail)
		sec.POST("/verify/users/:email/security-questions", h.VerifySecurityQuestions)
		sec.POST("/users/:email/reset-password", h.ResetPassword)
		sec.POST("/verify/users/:email", h.VerifyUserExists)
	}

	profile := router.Group("/profile")
	profile.Use(middleware.Auth(h.cfg, h.users))
	{
		profile.GET("/:email", h.Profile)
		profile.PUT("/:email", h.UpdateProfile)
	}

	admin := router.Group("/users")
	admin.Use(
		middleware.Auth(h.cfg, h.users),
		middleware.RequireRoles(models.UserRoleAdmin),
	)
	{
		admin.GET("", h.ListUsers)
		admin.GET("/:userId", h.UserByID)
		admin.PUT("/:userId", h.UpdateUserAccess)
		admin.DELETE("/:userId", h.DisableUser)
	}
}

// respondError maps the service error taxonomy onto HTTP statuses.
// Unmatched errors become a generic 500; the underlying cause is logged
// and only echoed back outside production.
func (h HandlerSet) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Msg("internal error")
		body := gin.H{"error": "internal_server_error"}
		if h.cfg.Environment != "production" {
			body["detail"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}
