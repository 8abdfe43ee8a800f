package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newHasher(t *testing.T) *PasswordHasher {
	t.Helper()
	h, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestNewPasswordHasher_RejectsCostOutOfRange(t *testing.T) {
	_, err := NewPasswordHasher(bcrypt.MinCost - 1)
	require.ErrorIs(t, err, ErrInvalidCost)

	_, err = NewPasswordHasher(bcrypt.MaxCost + 1)
	require.ErrorIs(t, err, ErrInvalidCost)
}

func TestHash_IsSaltedAndVerifies(t *testing.T) {
	h := newHasher(t)

	a, err := h.Hash("Secret123")
	require.NoError(t, err)
	b, err := h.Hash("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "two hashes of the same password must differ")
	assert.NotContains(t, a, "Secret123")
	assert.True(t, h.Verify("Secret123", a))
	assert.True(t, h.Verify("Secret123", b))
	assert.False(t, h.Verify("secret123", a), "comparison is case-sensitive")
}

func TestHash_EmbedsCost(t *testing.T) {
	h := newHasher(t)
	hash, err := h.Hash("pw12")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestHash_TooLong(t *testing.T) {
	h := newHasher(t)
	_, err := h.Hash(strings.Repeat("x", 73))
	require.Error(t, err)
}

func TestVerify_MalformedHashIsFalse(t *testing.T) {
	h := newHasher(t)
	for _, bad := range []string{"", "not-a-hash", "$2a$04$short"} {
		assert.False(t, h.Verify("whatever", bad), "hash %q", bad)
	}
}

func TestVerifyDummy_AlwaysFalse(t *testing.T) {
	h := newHasher(t)
	assert.False(t, h.VerifyDummy(dummyPassword))
	assert.False(t, h.VerifyDummy("anything"))
}
