package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestOpaqueTokensAreRandom(t *testing.T) {
	a, err := NewOpaqueToken()
	require.NoError(t, err)
	b, err := NewOpaqueToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, HashToken(a), HashToken(a))
	assert.NotEqual(t, a, HashToken(a))
}

func TestSignedSessionRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	raw, s, err := NewSignedSession(secret, 42, time.Hour)
	require.NoError(t, err)

	got, err := ParseSignedSession(secret, raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got.UserID)
	assert.Equal(t, s.ID, got.ID)
}

func TestSignedSessionRejectsOtherKeyAndExpiry(t *testing.T) {
	raw, _, err := NewSignedSession([]byte("a"), 42, time.Hour)
	require.NoError(t, err)
	_, err = ParseSignedSession([]byte("b"), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, _, err := NewSignedSession([]byte("a"), 42, -time.Minute)
	require.NoError(t, err)
	_, err = ParseSignedSession([]byte("a"), expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseSignedSession([]byte("a"), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	h, err := HashPassword("secret6", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(h, "secret6"))
	assert.False(t, VerifyPassword(h, "secret7"))
	assert.False(t, VerifyPassword("garbage", "secret6"))
}

func TestNewDummyHashUsesCost(t *testing.T) {
	dummy, err := NewDummyHash(bcrypt.MinCost + 1)
	require.NoError(t, err)
	cost, err := bcrypt.Cost(dummy)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)

	assert.NotPanics(t, func() { BurnPasswordCheck(dummy, "secret6") })
}
