package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backoffice/api/internal/middleware"
	"backoffice/api/internal/models"
	"backoffice/api/internal/security"
	"backoffice/api/internal/service"
)

type securityQuestionPayload struct {
	QuestionText string `json:"questionText"`
	AnswerText   string `json:"answerText"`
}

type registerRequest struct {
	FirstName         string                    `json:"firstName"`
	LastName          string                    `json:"lastName"`
	Email             string                    `json:"email"`
	Password          string                    `json:"password"`
	Address           string                    `json:"address"`
	PhoneNumber       string                    `json:"phoneNumber"`
	Role              string                    `json:"role"`
	IsDisabled        bool                      `json:"isDisabled"`
	SecurityQuestions []securityQuestionPayload `json:"selectedSecurityQuestions"`
}

type userResponse struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"userId"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	PhoneNumber int64     `json:"phoneNumber"`
	Address     string    `json:"address"`
	Role        string    `json:"role"`
	IsDisabled  bool      `json:"isDisabled"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toUserResponse(user models.User) userResponse {
	return userResponse{
		ID:          user.ID,
		UserID:      user.UserID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		Address:     user.Address,
		Role:        string(user.Role),
		IsDisabled:  user.IsDisabled,
		CreatedAt:   user.CreatedAt,
	}
}

// RegisterUser creates a new account. Role and isDisabled are recognized
// fields but any caller-supplied value is discarded; unknown fields fail
// the request. The password hash never leaves the boundary.
func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questions := make([]models.SecurityQuestion, 0, len(req.SecurityQuestions))
	for _, q := range req.SecurityQuestions {
		questions = append(questions, models.SecurityQuestion{
			QuestionText: q.QuestionText,
			AnswerText:   q.AnswerText,
		})
	}

	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Password:          req.Password,
		Address:           req.Address,
		PhoneNumber:       req.PhoneNumber,
		SecurityQuestions: questions,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	User         userResponse `json:"user"`
	SessionToken string       `json:"sessionToken"`
	ExpiresAt    time.Time    `json:"expiresAt"`
}

func (h HandlerSet) SignIn(c *gin.Context) {
	var req signInRequest
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, expiresAt, err := security.IssueSessionToken(h.cfg.Security.SessionSecret, user, h.cfg.Security.SessionTTL)
	if err != nil {
		h.respondError(c, err)
		return
	}

	maxAge := int(h.cfg.Security.SessionTTL.Seconds())
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)
	// Role cookie mirrors the session for client-side route gating only.
	c.SetCookie("role", string(user.Role), maxAge, "/", "", false, false)

	c.JSON(http.StatusOK, signInResponse{
		User:         toUserResponse(user),
		SessionToken: token,
		ExpiresAt:    expiresAt,
	})
}

func (h HandlerSet) SignOut(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.SetCookie("role", "", -1, "/", "", false, false)
	c.Status(http.StatusNoContent)
}

type questionsResponse struct {
	Email             string                    `json:"email"`
	UserID            int64                     `json:"userId"`
	SecurityQuestions []securityQuestionPayload `json:"selectedSecurityQuestions"`
}

// SecurityQuestionsByEmail returns the stored question texts for the
// recovery form. Answers are redacted.
func (h HandlerSet) SecurityQuestionsByEmail(c *gin.Context) {
	email := c.Param("email")

	user, err := h.recovery.QuestionsByEmail(c.Request.Context(), email)
	if err != nil {
		h.respondError(c, err)
		return
	}

	questions := make([]securityQuestionPayload, 0, len(user.SecurityQuestions))
	for _, q := range user.SecurityQuestions {
		questions = append(questions, securityQuestionPayload{QuestionText: q.QuestionText})
	}

	c.JSON(http.StatusOK, questionsResponse{
		Email:             user.Email,
		UserID:            user.UserID,
		SecurityQuestions: questions,
	})
}

type verifyQuestionsRequest struct {
	SecurityQuestions []securityQuestionPayload `json:"selectedSecurityQuestions"`
}

func (h HandlerSet) VerifySecurityQuestions(c *gin.Context) {
	email := c.Param("email")

	var req verifyQuestionsRequest
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var answered []models.SecurityQuestion
	if req.SecurityQuestions != nil {
		answered = make([]models.SecurityQuestion, 0, len(req.SecurityQuestions))
		for _, q := range req.SecurityQuestions {
			answered = append(answered, models.SecurityQuestion{
				QuestionText: q.QuestionText,
				AnswerText:   q.AnswerText,
			})
		}
	}

	result, err := h.recovery.VerifyQuestions(c.Request.Context(), email, answered)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"verified":      true,
		"recoveryToken": result.RecoveryToken,
		"expiresAt":     result.ExpiresAt,
	})
}

type resetPasswordRequest struct {
	NewPassword   string `json:"newPassword"`
	RecoveryToken string `json:"recoveryToken"`
}

func (h HandlerSet) ResetPassword(c *gin.Context) {
	email := c.Param("email")

	var req resetPasswordRequest
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.recovery.ResetPassword(c.Request.Context(), email, req.NewPassword, req.RecoveryToken); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reset": true})
}

// VerifyUserExists confirms an email belongs to a registered account.
func (h HandlerSet) VerifyUserExists(c *gin.Context) {
	email := c.Param("email")

	user, err := h.accounts.FindByEmail(c.Request.Context(), email)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}
