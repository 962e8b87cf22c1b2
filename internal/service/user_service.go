package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"backoffice/api/internal/ids"
	"backoffice/api/internal/models"
	"backoffice/api/internal/repository"
)

// UserService covers the administrative and profile operations around the
// credential store: listing, role changes, disabling and profile updates.
type UserService struct {
	users repository.UserStore
	log   zerolog.Logger
}

func NewUserService(users repository.UserStore, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.ListAll(ctx)
}

func (s *UserService) FindByID(ctx context.Context, id string) (models.User, error) {
	if !ids.Valid(id) {
		return models.User{}, validationError("invalid user id")
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

type AccessUpdate struct {
	Role       *string
	IsDisabled *bool
}

// UpdateAccess changes role and/or disabled state. Accounts are never
// deleted; an administrative "delete" arrives here as a disable.
func (s *UserService) UpdateAccess(ctx context.Context, id string, update AccessUpdate) error {
	if !ids.Valid(id) {
		return validationError("invalid user id")
	}
	if update.Role == nil && update.IsDisabled == nil {
		return validationError("nothing to update")
	}

	var role *models.UserRole
	if update.Role != nil {
		if !models.ValidRole(*update.Role) {
			return validationError("unrecognized role")
		}
		value := models.UserRole(*update.Role)
		role = &value
	}

	if err := s.users.UpdateAccess(ctx, id, role, update.IsDisabled); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.log.Info().Str("user_id", id).Msg("user access updated")
	return nil
}

func (s *UserService) Disable(ctx context.Context, id string) error {
	disabled := true
	return s.UpdateAccess(ctx, id, AccessUpdate{IsDisabled: &disabled})
}

type ProfileUpdate struct {
	Address     *string
	PhoneNumber *string
}

func (s *UserService) UpdateProfile(ctx context.Context, email string, update ProfileUpdate) error {
	if update.Address == nil && update.PhoneNumber == nil {
		return validationError("nothing to update")
	}

	var phone *int64
	if update.PhoneNumber != nil {
		value, err := normalizePhoneNumber(*update.PhoneNumber)
		if err != nil {
			return err
		}
		phone = &value
	}

	if err := s.users.UpdateProfile(ctx, email, update.Address, phone); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
