package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	s := NewStateSigner("secret", time.Minute)

	state, nonce, err := s.Issue()
	require.NoError(t, err)
	assert.NotEmpty(t, nonce)

	assert.NoError(t, s.Verify(state, nonce))
	assert.ErrorIs(t, s.Verify(state, "other-browser"), errStateMismatch)
	assert.Error(t, s.Verify(state, ""))
}

func TestStateRejectsForeignKeyAndExpiry(t *testing.T) {
	s := NewStateSigner("secret", time.Minute)
	state, nonce, err := s.Issue()
	require.NoError(t, err)

	assert.Error(t, NewStateSigner("other-secret", time.Minute).Verify(state, nonce))

	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	assert.Error(t, s.Verify(state, nonce))

	assert.Error(t, s.Verify("not-a-token", nonce))
}
