package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	h, err := HashPassword("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", h)
	assert.True(t, CheckPassword("123456", h))
	assert.False(t, CheckPassword("654321", h))
	assert.False(t, CheckPassword("123456", "not-a-hash"))
}

func TestHashPasswordTooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 73))
	assert.Error(t, err)
}
