package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"backoffice/api/internal/models"
)

var ErrRecoveryTokenNotFound = errors.New("recovery token not found")

type RecoveryTokenRepository struct {
	pool *pgxpool.Pool
}

func NewRecoveryTokenRepository(pool *pgxpool.Pool) *RecoveryTokenRepository {
	return &RecoveryTokenRepository{pool: pool}
}

func (r *RecoveryTokenRepository) Issue(ctx context.Context, token models.RecoveryToken) error {
	const query = `
		INSERT INTO recovery_tokens (id, email, token_hash, created_at, expires_at)
		VALUES ($1, $2, $3, NOW(), $4)
	`
	_, err := r.pool.Exec(ctx, query,
		token.ID,
		token.Email,
		token.TokenHash,
		token.ExpiresAt,
	)
	return err
}

// Consume marks a live token as used. The single UPDATE makes expiry and
// single-use checks atomic with consumption.
func (r *RecoveryTokenRepository) Consume(ctx context.Context, email string, tokenHash []byte, now time.Time) error {
	const query = `
		UPDATE recovery_tokens
		SET consumed_at = $3
		WHERE email = $1 AND token_hash = $2
		  AND consumed_at IS NULL AND expires_at > $3
	`
	cmd, err := r.pool.Exec(ctx, query, email, tokenHash, now)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrRecoveryTokenNotFound
	}
	return nil
}

func (r *RecoveryTokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `
		DELETE FROM recovery_tokens
		WHERE expires_at <= $1 OR consumed_at IS NOT NULL
	`
	cmd, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
