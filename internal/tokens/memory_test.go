package tokens

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueReturnsOpaqueHexToken(t *testing.T) {
	s := NewMemoryStore(DefaultTTL)

	token, err := s.Issue()
	require.NoError(t, err)
	assert.Len(t, token, 64)

	_, err = hex.DecodeString(token)
	assert.NoError(t, err)

	other, err := s.Issue()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestTokenValidForFullWindowThenExpires(t *testing.T) {
	current := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	s := NewMemoryStore(DefaultTTL)
	s.now = func() time.Time { return current }

	token, err := s.Issue()
	require.NoError(t, err)

	assert.True(t, s.IsValid(token), "valid immediately after issue")

	// One second short of the 8-hour deadline.
	current = current.Add(DefaultTTL - time.Second)
	assert.True(t, s.IsValid(token), "valid through the full window")

	// No sliding expiry: the lookups above must not have refreshed it.
	current = current.Add(2 * time.Second)
	assert.False(t, s.IsValid(token), "invalid once the window has passed")
}

func TestIsValidRejectsUnknownToken(t *testing.T) {
	s := NewMemoryStore(DefaultTTL)
	assert.False(t, s.IsValid("deadbeef"))
	assert.False(t, s.IsValid(""))
}

func TestSweepDropsOnlyExpiredTokens(t *testing.T) {
	current := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	s := NewMemoryStore(DefaultTTL)
	s.now = func() time.Time { return current }

	expired, err := s.Issue()
	require.NoError(t, err)

	current = current.Add(4 * time.Hour)
	live, err := s.Issue()
	require.NoError(t, err)

	current = current.Add(5 * time.Hour) // first token 9h old, second 5h

	assert.Equal(t, 1, s.Sweep())
	assert.False(t, s.IsValid(expired))
	assert.True(t, s.IsValid(live))

	assert.Equal(t, 0, s.Sweep(), "second sweep finds nothing")
}
