package models

import "time"

// RecoveryToken binds a successful security-question verification to a
// later password reset. Only the SHA-256 hash of the token is stored;
// tokens are single use and expire after a short window.
type RecoveryToken struct {
	ID         string
	Email      string
	TokenHash  []byte
	CreatedAt  time.Time
	ExpiresAt  time.Time
	ConsumedAt *time.Time
}
