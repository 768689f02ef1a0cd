package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserJWT(t *testing.T) {
	key := []byte("secret")

	token, err := GenerateUserJWT(42, "ADMIN", time.Hour, key)
	require.NoError(t, err)

	claims, err := ValidateUserJWT(token, key)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.ID)
	assert.Equal(t, "ADMIN", claims.Role)

	_, err = ValidateUserJWT(token, []byte("another secret"))
	require.Error(t, err)

	expired, err := GenerateUserJWT(42, "USER", -time.Minute, key)
	require.NoError(t, err)
	_, err = ValidateUserJWT(expired, key)
	require.ErrorIs(t, err, ErrTokenExpired)

	_, err = ValidateUserJWT("not a token", key)
	require.Error(t, err)
}

func TestUserJWTClaims(t *testing.T) {
	key := []byte("secret")

	token, err := GenerateUserJWT(7, "USER", time.Hour, key)
	require.NoError(t, err)

	claims, err := ValidateUserJWT(token, key)
	require.NoError(t, err)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.Equal(t, "7", claims.Subject)

	noRole, err := GenerateUserJWT(7, "", time.Hour, key)
	require.NoError(t, err)
	_, err = ValidateUserJWT(noRole, key)
	require.ErrorIs(t, err, ErrInvalidClaims)
}
