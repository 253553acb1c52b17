package session_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sealbox/internal/crypto"
	"sealbox/internal/domain"
	"sealbox/internal/services/session"
)

// stubDirectory serves a fixed set of identities.
type stubDirectory map[string]domain.Identity

func (d stubDirectory) Lookup(username string) (domain.Identity, error) {
	id, ok := d[username]
	if !ok {
		return domain.Identity{}, fmt.Errorf("%w: unknown user %q", domain.ErrNotFound, username)
	}
	return id, nil
}

func newUser(t *testing.T, username string) (stubDirectory, string) {
	t.Helper()
	pub, priv, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	return stubDirectory{username: {Username: username, PublicKey: pub}}, priv
}

func TestChallenge_RoundTrip(t *testing.T) {
	dir, priv := newUser(t, "alice")
	m := session.NewManager(dir)

	encrypted, err := m.BeginChallenge("alice")
	require.NoError(t, err)

	nonce, err := crypto.Decrypt(priv, encrypted)
	require.NoError(t, err)

	secret, err := m.VerifyChallenge("alice", string(nonce))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(secret), 64)

	username, err := m.Authenticate(secret)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestChallenge_IsSingleUse(t *testing.T) {
	dir, priv := newUser(t, "alice")
	m := session.NewManager(dir)

	encrypted, err := m.BeginChallenge("alice")
	require.NoError(t, err)
	nonce, err := crypto.Decrypt(priv, encrypted)
	require.NoError(t, err)

	_, err = m.VerifyChallenge("alice", string(nonce))
	require.NoError(t, err)

	// Replaying the same recovered nonce must fail once a secret was issued.
	_, err = m.VerifyChallenge("alice", string(nonce))
	assert.ErrorIs(t, err, domain.ErrAuth)
}

func TestBeginChallenge_ReplacesPrior(t *testing.T) {
	dir, priv := newUser(t, "alice")
	m := session.NewManager(dir)

	first, err := m.BeginChallenge("alice")
	require.NoError(t, err)
	_, err = m.BeginChallenge("alice")
	require.NoError(t, err)

	staleNonce, err := crypto.Decrypt(priv, first)
	require.NoError(t, err)
	_, err = m.VerifyChallenge("alice", string(staleNonce))
	assert.ErrorIs(t, err, domain.ErrAuth)
}

func TestVerifyChallenge_WrongNonce(t *testing.T) {
	dir, _ := newUser(t, "alice")
	m := session.NewManager(dir)

	_, err := m.BeginChallenge("alice")
	require.NoError(t, err)
	_, err = m.VerifyChallenge("alice", "guessed")
	assert.ErrorIs(t, err, domain.ErrAuth)
}

func TestVerifyChallenge_NoChallenge(t *testing.T) {
	dir, _ := newUser(t, "alice")
	m := session.NewManager(dir)
	_, err := m.VerifyChallenge("alice", "anything")
	assert.ErrorIs(t, err, domain.ErrAuth)
}

func TestBeginChallenge_UnknownUser(t *testing.T) {
	m := session.NewManager(stubDirectory{})
	_, err := m.BeginChallenge("nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuthenticate_RejectsUnknownOrEmptySecret(t *testing.T) {
	dir, _ := newUser(t, "alice")
	m := session.NewManager(dir)

	_, err := m.Authenticate("")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = m.Authenticate("never issued")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRelogin_SupersedesOldSecret(t *testing.T) {
	dir, priv := newUser(t, "alice")
	m := session.NewManager(dir)

	login := func() string {
		encrypted, err := m.BeginChallenge("alice")
		require.NoError(t, err)
		nonce, err := crypto.Decrypt(priv, encrypted)
		require.NoError(t, err)
		secret, err := m.VerifyChallenge("alice", string(nonce))
		require.NoError(t, err)
		return secret
	}

	first := login()
	second := login()

	_, err := m.Authenticate(first)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	username, err := m.Authenticate(second)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}
