package repository

import (
	"context"
	"time"

	"backoffice/api/internal/models"
)

// UserStore is the credential store contract consumed by the services.
// All operations are atomic at single-record granularity.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	Insert(ctx context.Context, user models.User) (models.User, error)
	UpdatePassword(ctx context.Context, id string, hash []byte) error
	UpdateAccess(ctx context.Context, id string, role *models.UserRole, isDisabled *bool) error
	UpdateProfile(ctx context.Context, email string, address *string, phoneNumber *int64) error
	ListAll(ctx context.Context) ([]models.User, error)
}

// RecoveryTokenStore persists single-use password-reset tokens.
type RecoveryTokenStore interface {
	Issue(ctx context.Context, token models.RecoveryToken) error
	Consume(ctx context.Context, email string, tokenHash []byte, now time.Time) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
