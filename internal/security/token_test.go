package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"backoffice/api/internal/models"
)

func sampleUser() models.User {
	return models.User{
		ID:        "2QxYs0nVwXl5FGm1T7wA8cR9dEf",
		UserID:    7,
		Email:     "ada@x.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      models.UserRoleAdmin,
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	user := sampleUser()

	token, expiresAt, err := IssueSessionToken("secret", user, time.Hour)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseSessionToken(token, "secret")
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.Equal(t, user.UserID, claims.UserID)
	require.Equal(t, "Ada", claims.FirstName)
	require.Equal(t, "Lovelace", claims.LastName)
	require.Equal(t, "admin", claims.Role)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, _, err := IssueSessionToken("secret", sampleUser(), time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionToken(token, "other-secret")
	require.Error(t, err)
}

func TestSessionTokenExpired(t *testing.T) {
	token, _, err := IssueSessionToken("secret", sampleUser(), -time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionToken(token, "secret")
	require.Error(t, err)
}

func TestRecoveryTokenHashBinding(t *testing.T) {
	token, hash, err := GenerateRecoveryToken()
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, hash, HashRecoveryToken(token))

	other, otherHash, err := GenerateRecoveryToken()
	require.NoError(t, err)
	require.NotEqual(t, token, other)
	require.NotEqual(t, hash, otherHash)
}
