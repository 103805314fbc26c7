package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateToken(7, "alice", false)
	require.NoError(t, err)
	assert.NotEmpty(t, token.SessionID)
	assert.EqualValues(t, 3600, token.ExpiresIn)
	assert.Equal(t, time.Hour, m.TTL())

	claims, err := m.ParseToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.False(t, claims.IsAdmin)
	assert.Equal(t, token.SessionID, claims.SessionID())
}

func TestManager_EachLoginIsNewSession(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	a, err := m.GenerateToken(1, "library", true)
	require.NoError(t, err)
	b, err := m.GenerateToken(1, "library", true)
	require.NoError(t, err)

	assert.NotEqual(t, a.SessionID, b.SessionID)
}

func TestManager_Rejects(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	t.Run("签名不一致", func(t *testing.T) {
		token, err := NewManager("other-secret", time.Hour).GenerateToken(1, "alice", false)
		require.NoError(t, err)

		_, err = m.ParseToken(token.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("已过期", func(t *testing.T) {
		token, err := NewManager("test-secret", -time.Minute).GenerateToken(1, "alice", false)
		require.NoError(t, err)

		_, err = m.ParseToken(token.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("格式错误", func(t *testing.T) {
		_, err := m.ParseToken("not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}
