package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"backoffice/api/internal/config"
	"backoffice/api/internal/ids"
	"backoffice/api/internal/models"
	"backoffice/api/internal/repository"
	"backoffice/api/internal/security"
)

const securityQuestionCount = 4

type AuthService struct {
	users repository.UserStore
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewAuthService(users repository.UserStore, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users: users,
		cfg:   cfg,
		log:   log,
	}
}

type RegisterInput struct {
	FirstName         string
	LastName          string
	Email             string
	Password          string
	Address           string
	PhoneNumber       string
	SecurityQuestions []models.SecurityQuestion
}

// Register validates the candidate, hashes the secret and persists a new
// account. Role and disabled state are forced regardless of what the
// caller supplied; the stored record, hash included, is returned and the
// boundary decides what to redact.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	if err := validateRegistration(input); err != nil {
		return models.User{}, err
	}

	phone, err := normalizePhoneNumber(input.PhoneNumber)
	if err != nil {
		return models.User{}, err
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, err
	}

	passwordHash, err := security.HashPassword(input.Password, s.cfg.Security.BcryptCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:                ids.New(),
		Email:             input.Email,
		PasswordHash:      passwordHash,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		PhoneNumber:       phone,
		Address:           input.Address,
		Role:              models.UserRoleStandard,
		IsDisabled:        false,
		SecurityQuestions: input.SecurityQuestions,
	}

	stored, err := s.users.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}

	s.log.Info().
		Str("user_id", stored.ID).
		Int64("sequence_id", stored.UserID).
		Msg("user registered")

	return stored, nil
}

// SignIn verifies an email/secret pair and returns the full stored
// identity. Disabled accounts are not blocked here; the access guard
// checks the flag before granting entry to protected routes.
func (s *AuthService) SignIn(ctx context.Context, email string, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, validationError("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	if !security.VerifyPassword(password, user.PasswordHash) {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

func validateRegistration(input RegisterInput) error {
	switch {
	case input.FirstName == "":
		return validationError("firstName is required")
	case input.LastName == "":
		return validationError("lastName is required")
	case input.Email == "":
		return validationError("email is required")
	case input.Password == "":
		return validationError("password is required")
	case input.Address == "":
		return validationError("address is required")
	case input.PhoneNumber == "":
		return validationError("phoneNumber is required")
	}

	if len(input.SecurityQuestions) != securityQuestionCount {
		return validationError("exactly four security questions are required")
	}
	for _, question := range input.SecurityQuestions {
		if question.QuestionText == "" || question.AnswerText == "" {
			return validationError("each security question needs a question and an answer")
		}
	}
	return nil
}

// normalizePhoneNumber strips common formatting and keeps the digits.
func normalizePhoneNumber(raw string) (int64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')', '+':
			return -1
		}
		return r
	}, raw)

	phone, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, validationError("phoneNumber must be numeric")
	}
	return phone, nil
}
