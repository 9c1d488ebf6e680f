package helpers

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenNumericCode_Shape(t *testing.T) {
	t.Parallel()

	for i := 0; i < 200; i++ {
		code, err := GenNumericCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestPasswordHashAndCompare(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, CompareHashAndPassword(hash, "secret1"))
	assert.False(t, CompareHashAndPassword(hash, "secret2"))
	assert.False(t, CompareHashAndPassword("not-a-hash", "secret1"))
}
