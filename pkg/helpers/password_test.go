package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	h, err := HashPassword("abc12345")
	require.NoError(t, err)
	assert.NotEqual(t, "abc12345", h)

	cost, err := bcrypt.Cost([]byte(h))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)

	assert.True(t, CompareHashAndPassword(h, "abc12345"))
	assert.False(t, CompareHashAndPassword(h, "abc123456"))
}

func TestStrongPassword(t *testing.T) {
	assert.True(t, StrongPassword("abc12345"))
	assert.True(t, StrongPassword("ABCDEFG1"))
	assert.False(t, StrongPassword("abcdefgh"))
	assert.False(t, StrongPassword("12345678"))
	assert.False(t, StrongPassword("abc1234"))
	assert.False(t, StrongPassword("abc1234!"))
	assert.False(t, StrongPassword("ábc12345"))

	assert.True(t, StrongPassword(strings.Repeat("a1", 36)))
	assert.False(t, StrongPassword(strings.Repeat("a1", 40)))
}

func TestHashPassword_AcceptsLongestStrongPassword(t *testing.T) {
	pw := strings.Repeat("a1", MaxPasswordLen/2)
	require.True(t, StrongPassword(pw))
	_, err := HashPassword(pw)
	require.NoError(t, err)
}

func TestBurnPasswordCheck(t *testing.T) {
	assert.False(t, BurnPasswordCheck("foodshare-no-such-account"))
	assert.False(t, BurnPasswordCheck("abc12345"))

	cost, err := bcrypt.Cost(dummyHash())
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)
}
