package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"backoffice/api/internal/config"
	"backoffice/api/internal/models"
	"backoffice/api/internal/repository"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Environment: "test",
		Security: config.SecurityConfig{
			SessionSecret:    "test-secret",
			SessionTTL:       time.Hour,
			BcryptCost:       bcrypt.MinCost,
			RecoveryTokenTTL: 15 * time.Minute,
		},
	}
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type memoryUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[string]models.User)}
}

func (m *memoryUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (m *memoryUserStore) FindByID(_ context.Context, id string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *memoryUserStore) Insert(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var maxSeq int64
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return models.User{}, repository.ErrDuplicateEmail
		}
		if existing.UserID > maxSeq {
			maxSeq = existing.UserID
		}
	}

	user.UserID = maxSeq + 1
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = user
	return user, nil
}

func (m *memoryUserStore) UpdatePassword(_ context.Context, id string, hash []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	m.users[id] = user
	return nil
}

func (m *memoryUserStore) UpdateAccess(_ context.Context, id string, role *models.UserRole, isDisabled *bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	if role != nil {
		user.Role = *role
	}
	if isDisabled != nil {
		user.IsDisabled = *isDisabled
	}
	user.UpdatedAt = time.Now()
	m.users[id] = user
	return nil
}

func (m *memoryUserStore) UpdateProfile(_ context.Context, email string, address *string, phoneNumber *int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, user := range m.users {
		if user.Email != email {
			continue
		}
		if address != nil {
			user.Address = *address
		}
		if phoneNumber != nil {
			user.PhoneNumber = *phoneNumber
		}
		user.UpdatedAt = time.Now()
		m.users[id] = user
		return nil
	}
	return repository.ErrUserNotFound
}

func (m *memoryUserStore) ListAll(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	for i := 1; i < len(users); i++ {
		for j := i; j > 0 && users[j].UserID < users[j-1].UserID; j-- {
			users[j], users[j-1] = users[j-1], users[j]
		}
	}
	return users, nil
}

type memoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]models.RecoveryToken
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{tokens: make(map[string]models.RecoveryToken)}
}

func (m *memoryTokenStore) Issue(_ context.Context, token models.RecoveryToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token.ID] = token
	return nil
}

func (m *memoryTokenStore) Consume(_ context.Context, email string, tokenHash []byte, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, token := range m.tokens {
		if token.Email != email || string(token.TokenHash) != string(tokenHash) {
			continue
		}
		if token.ConsumedAt != nil || !token.ExpiresAt.After(now) {
			return repository.ErrRecoveryTokenNotFound
		}
		consumed := now
		token.ConsumedAt = &consumed
		m.tokens[id] = token
		return nil
	}
	return repository.ErrRecoveryTokenNotFound
}

func (m *memoryTokenStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var purged int64
	for id, token := range m.tokens {
		if !token.ExpiresAt.After(now) || token.ConsumedAt != nil {
			delete(m.tokens, id)
			purged++
		}
	}
	return purged, nil
}
