package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"backoffice/api/internal/config"
	"backoffice/api/internal/ids"
	"backoffice/api/internal/models"
	"backoffice/api/internal/repository"
	"backoffice/api/internal/security"
)

// RecoveryService implements the two-step identity-recovery protocol:
// security-question verification followed by a password reset.
type RecoveryService struct {
	users  repository.UserStore
	tokens repository.RecoveryTokenStore
	cfg    *config.AppConfig
	log    zerolog.Logger
}

func NewRecoveryService(users repository.UserStore, tokens repository.RecoveryTokenStore, cfg *config.AppConfig, log zerolog.Logger) *RecoveryService {
	return &RecoveryService{
		users:  users,
		tokens: tokens,
		cfg:    cfg,
		log:    log,
	}
}

// QuestionsByEmail returns the identity needed to render the recovery
// form. Answers stay server-side; the boundary only ships question texts.
func (s *RecoveryService) QuestionsByEmail(ctx context.Context, email string) (models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

type VerifyResult struct {
	RecoveryToken string
	ExpiresAt     time.Time
}

// VerifyQuestions checks the supplied answers against the stored list and,
// on success, issues a short-lived single-use recovery token.
//
// Matching is positional by default: entry i must equal the stored entry
// at index i in both question and answer, and a supplied list longer than
// the stored one fails outright. With matchquestionsbyidentity set,
// answers are paired to stored questions by question text instead and all
// stored questions must be answered.
func (s *RecoveryService) VerifyQuestions(ctx context.Context, email string, answered []models.SecurityQuestion) (VerifyResult, error) {
	if answered == nil {
		return VerifyResult{}, validationError("selectedSecurityQuestions must be a list")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return VerifyResult{}, ErrUserNotFound
		}
		return VerifyResult{}, err
	}

	if s.cfg.Security.MatchQuestionsByIdentity {
		if !matchByIdentity(answered, user.SecurityQuestions) {
			return VerifyResult{}, ErrQuestionsMismatch
		}
	} else if !matchByPosition(answered, user.SecurityQuestions) {
		return VerifyResult{}, ErrQuestionsMismatch
	}

	token, tokenHash, err := security.GenerateRecoveryToken()
	if err != nil {
		return VerifyResult{}, err
	}

	record := models.RecoveryToken{
		ID:        ids.New(),
		Email:     user.Email,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(s.cfg.Security.RecoveryTokenTTL),
	}
	if err := s.tokens.Issue(ctx, record); err != nil {
		return VerifyResult{}, err
	}

	s.log.Info().
		Str("user_id", user.ID).
		Time("expires_at", record.ExpiresAt).
		Msg("security questions verified")

	return VerifyResult{RecoveryToken: token, ExpiresAt: record.ExpiresAt}, nil
}

// ResetPassword hashes the new secret and stores it. When the deployment
// requires recovery tokens, the token from VerifyQuestions must accompany
// the call and is consumed here; otherwise the caller is trusted to have
// completed verification first, preserving the two-call shape.
func (s *RecoveryService) ResetPassword(ctx context.Context, email string, newPassword string, recoveryToken string) error {
	if email == "" || newPassword == "" {
		return validationError("email and newPassword are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if s.cfg.Security.RequireRecoveryToken || recoveryToken != "" {
		if recoveryToken == "" {
			return ErrRecoveryToken
		}
		hash := security.HashRecoveryToken(recoveryToken)
		if err := s.tokens.Consume(ctx, user.Email, hash, time.Now()); err != nil {
			if errors.Is(err, repository.ErrRecoveryTokenNotFound) {
				return ErrRecoveryToken
			}
			return err
		}
	}

	passwordHash, err := security.HashPassword(newPassword, s.cfg.Security.BcryptCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

func matchByPosition(answered, stored []models.SecurityQuestion) bool {
	if len(answered) > len(stored) {
		return false
	}
	for i, entry := range answered {
		if entry.QuestionText != stored[i].QuestionText || entry.AnswerText != stored[i].AnswerText {
			return false
		}
	}
	return true
}

func matchByIdentity(answered, stored []models.SecurityQuestion) bool {
	if len(answered) != len(stored) {
		return false
	}
	byQuestion := make(map[string]string, len(answered))
	for _, entry := range answered {
		byQuestion[entry.QuestionText] = entry.AnswerText
	}
	if len(byQuestion) != len(stored) {
		return false
	}
	for _, entry := range stored {
		answer, ok := byQuestion[entry.QuestionText]
		if !ok || answer != entry.AnswerText {
			return false
		}
	}
	return true
}
