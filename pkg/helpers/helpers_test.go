package helpers

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordIsSalted(t *testing.T) {
	PasswordCost = bcrypt.MinCost
	t.Cleanup(func() { PasswordCost = bcrypt.DefaultCost })

	a, err := HashPassword("Str0ngP@ss")
	require.NoError(t, err)
	b, err := HashPassword("Str0ngP@ss")
	require.NoError(t, err)

	assert.NotEqual(t, "Str0ngP@ss", a)
	assert.NotEqual(t, a, b)
	assert.True(t, CompareHashAndPassword(a, "Str0ngP@ss"))
	assert.True(t, CompareHashAndPassword(b, "Str0ngP@ss"))
	assert.False(t, CompareHashAndPassword(a, "wrong"))
}

func TestGenOTPCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenOTPCode(ConfirmationCodeLength)
		require.NoError(t, err)
		assert.Len(t, code, ConfirmationCodeLength)
		assert.Empty(t, strings.Trim(code, "0123456789"))
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)

	_, err := GenOTPCode(0)
	assert.Error(t, err)
}

func TestGenConfirmationToken(t *testing.T) {
	a, err := GenConfirmationToken()
	require.NoError(t, err)
	b, err := GenConfirmationToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestEmailDomain(t *testing.T) {
	assert.Equal(t, "example.com", EmailDomain("ada@example.com"))
	assert.Equal(t, "", EmailDomain("not-an-email"))
}
