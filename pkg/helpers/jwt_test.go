package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTGenerateAndParse(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("super-secret", time.Hour)
	tok, exp, err := m.GenerateToken("user-123")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestJWTParse_Expired(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("super-secret", -time.Minute)
	tok, _, err := m.GenerateToken("user-123")
	require.NoError(t, err)

	_, err = m.ParseToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTParse_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewJWTManager("right-secret", time.Hour)
	tok, _, err := issuer.GenerateToken("user-123")
	require.NoError(t, err)

	verifier := NewJWTManager("wrong-secret", time.Hour)
	_, err = verifier.ParseToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTParse_Garbage(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("secret", time.Hour)
	_, err := m.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
