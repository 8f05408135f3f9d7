package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobly/internal/auth"
)

const secret = "secret-dev"

func TestCreateAndParseToken(t *testing.T) {
	token, err := auth.CreateToken(auth.User{Username: "admin", IsAdmin: true}, secret, 0)
	require.NoError(t, err)

	claims, err := auth.ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.True(t, claims.IsAdmin)
	assert.Nil(t, claims.ExpiresAt)
}

func TestParseTokenRejects(t *testing.T) {
	token, err := auth.CreateToken(auth.User{Username: "u1"}, secret, 0)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := auth.ParseToken(token, "other")
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := auth.ParseToken("not-a-token", secret)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := auth.CreateToken(auth.User{Username: "u1"}, secret, -time.Minute)
		require.NoError(t, err)

		_, err = auth.ParseToken(expired, secret)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("empty secret", func(t *testing.T) {
		_, err := auth.ParseToken(token, "")
		require.ErrorIs(t, err, auth.ErrEmptySecret)
	})
}
