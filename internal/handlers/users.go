package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice/api/internal/middleware"
	"backoffice/api/internal/models"
	"backoffice/api/internal/service"
)

func (h HandlerSet) ListUsers(c *gin.Context) {
	users, err := h.accounts.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	items := make([]userResponse, 0, len(users))
	for _, user := range users {
		items = append(items, toUserResponse(user))
	}

	c.JSON(http.StatusOK, items)
}

func (h HandlerSet) UserByID(c *gin.Context) {
	user, err := h.accounts.FindByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

type accessUpdateRequest struct {
	Role       *string `json:"role"`
	IsDisabled *bool   `json:"isDisabled"`
}

func (h HandlerSet) UpdateUserAccess(c *gin.Context) {
	var req accessUpdateRequest
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.accounts.UpdateAccess(c.Request.Context(), c.Param("userId"), service.AccessUpdate{
		Role:       req.Role,
		IsDisabled: req.IsDisabled,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DisableUser soft-disables an account. Nothing is ever deleted.
func (h HandlerSet) DisableUser(c *gin.Context) {
	if err := h.accounts.Disable(c.Request.Context(), c.Param("userId")); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// canAccessProfile allows a user to reach their own profile and admins to
// reach any.
func canAccessProfile(c *gin.Context, email string) bool {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return false
	}
	return user.Role == models.UserRoleAdmin || user.Email == email
}

func (h HandlerSet) Profile(c *gin.Context) {
	email := c.Param("email")
	if !canAccessProfile(c, email) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	user, err := h.accounts.FindByEmail(c.Request.Context(), email)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

type profileUpdateRequest struct {
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phoneNumber"`
}

func (h HandlerSet) UpdateProfile(c *gin.Context) {
	email := c.Param("email")
	if !canAccessProfile(c, email) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var req profileUpdateRequest
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.accounts.UpdateProfile(c.Request.Context(), email, service.ProfileUpdate{
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
