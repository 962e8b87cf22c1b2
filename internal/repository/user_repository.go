package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"backoffice/api/internal/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `
	id, user_id, email, password_hash, first_name, last_name,
	phone_number, address, role, is_disabled, security_questions,
	created_at, updated_at
`

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// Insert persists a new user, assigning the next sequence id inside the
// statement itself. A unique index on user_id catches the race between
// two concurrent registrations reading the same maximum; the loser is
// retried with a freshly computed id.
func (r *UserRepository) Insert(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (
			id, user_id, email, password_hash, first_name, last_name,
			phone_number, address, role, is_disabled, security_questions,
			created_at, updated_at
		) VALUES (
			$1, (SELECT COALESCE(MAX(user_id), 0) + 1 FROM users),
			$2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		)
		RETURNING user_id, created_at, updated_at
	`

	const maxAttempts = 3
	for attempt := 1; ; attempt++ {
		row := r.pool.QueryRow(ctx, query,
			user.ID,
			user.Email,
			user.PasswordHash,
			user.FirstName,
			user.LastName,
			user.PhoneNumber,
			user.Address,
			user.Role,
			user.IsDisabled,
			user.SecurityQuestions,
		)

		err := row.Scan(&user.UserID, &user.CreatedAt, &user.UpdatedAt)
		if err == nil {
			return user, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return models.User{}, ErrDuplicateEmail
			}
			if attempt < maxAttempts {
				continue
			}
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, hash []byte) error {
	const query = `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, hash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateAccess(ctx context.Context, id string, role *models.UserRole, isDisabled *bool) error {
	const query = `
		UPDATE users SET
			role = COALESCE($2, role),
			is_disabled = COALESCE($3, is_disabled),
			updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, role, isDisabled)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, email string, address *string, phoneNumber *int64) error {
	const query = `
		UPDATE users SET
			address = COALESCE($2, address),
			phone_number = COALESCE($3, phone_number),
			updated_at = NOW()
		WHERE email = $1
	`
	cmd, err := r.pool.Exec(ctx, query, email, address, phoneNumber)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY user_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) scanOne(row pgx.Row) (models.User, error) {
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.UserID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.PhoneNumber,
		&user.Address,
		&user.Role,
		&user.IsDisabled,
		&user.SecurityQuestions,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}
