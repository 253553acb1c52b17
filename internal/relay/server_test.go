package relay_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sealbox/internal/crypto"
	"sealbox/internal/domain"
	"sealbox/internal/relay"
	"sealbox/internal/services/directory"
	"sealbox/internal/services/mailbox"
	"sealbox/internal/services/session"
	"sealbox/internal/store"
)

func newTestRelay(t *testing.T) *relay.Client {
	t.Helper()
	st, err := store.OpenServer(t.TempDir())
	require.NoError(t, err)

	dir := directory.New(st)
	sessions := session.NewManager(dir)
	mail := mailbox.New(st, dir, nil)

	e := echo.New()
	relay.NewServer(dir, sessions, mail, nil).Register(e)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return relay.NewClient(srv.URL, srv.Client())
}

// login runs the full challenge handshake for a registered user.
func login(t *testing.T, rc *relay.Client, username, privateKey string) string {
	t.Helper()
	ctx := context.Background()

	encrypted, err := rc.Prelogin(ctx, username)
	require.NoError(t, err)
	nonce, err := crypto.Decrypt(privateKey, encrypted)
	require.NoError(t, err)
	secret, err := rc.Login(ctx, username, string(nonce))
	require.NoError(t, err)
	return secret
}

func TestRelay_EndToEnd(t *testing.T) {
	rc := newTestRelay(t)
	ctx := context.Background()

	alicePub, alicePriv, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	bobPub, bobPriv, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	require.NoError(t, rc.Signup(ctx, "alice", alicePub))
	require.NoError(t, rc.Signup(ctx, "bob", bobPub))

	aliceSecret := login(t, rc, "alice", alicePriv)

	clientTime := time.Now().UTC().Format(time.RFC3339)
	require.NoError(t, rc.Send(ctx, aliceSecret, domain.SendRequest{
		ToUsername: "bob",
		Text:       "hi",
		ClientTime: clientTime,
	}))

	bobSecret := login(t, rc, "bob", bobPriv)

	pending, err := rc.Pull(ctx, bobSecret)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "alice", pending[0].FromUsername)
	assert.Equal(t, "bob", pending[0].ToUsername)
	assert.Equal(t, clientTime, pending[0].ClientTime)
	assert.NotEmpty(t, pending[0].ServerTime)

	text, err := crypto.Decrypt(bobPriv, pending[0].Encrypted)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(text))

	// A second immediate pull is empty.
	again, err := rc.Pull(ctx, bobSecret)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestRelay_SignupFailures(t *testing.T) {
	rc := newTestRelay(t)
	ctx := context.Background()

	pub, _, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	require.NoError(t, rc.Signup(ctx, "alice", pub))
	assert.ErrorIs(t, rc.Signup(ctx, "alice", pub), domain.ErrAuth, "taken username maps back to 403")
	assert.ErrorIs(t, rc.Signup(ctx, "1bad", pub), domain.ErrValidation)
}

func TestRelay_PreloginUnknownUser(t *testing.T) {
	rc := newTestRelay(t)
	_, err := rc.Prelogin(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRelay_LoginBadNonce(t *testing.T) {
	rc := newTestRelay(t)
	ctx := context.Background()

	pub, _, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	require.NoError(t, rc.Signup(ctx, "alice", pub))

	_, err = rc.Prelogin(ctx, "alice")
	require.NoError(t, err)
	_, err = rc.Login(ctx, "alice", "not the nonce")
	assert.ErrorIs(t, err, domain.ErrAuth)
}

func TestRelay_UnauthenticatedCallsAre401(t *testing.T) {
	rc := newTestRelay(t)
	ctx := context.Background()

	err := rc.Send(ctx, "bogus", domain.SendRequest{
		ToUsername: "bob",
		Text:       "hi",
		ClientTime: time.Now().UTC().Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = rc.Pull(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRelay_SendToUnknownRecipient(t *testing.T) {
	rc := newTestRelay(t)
	ctx := context.Background()

	pub, priv, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	require.NoError(t, rc.Signup(ctx, "alice", pub))
	secret := login(t, rc, "alice", priv)

	err = rc.Send(ctx, secret, domain.SendRequest{
		ToUsername: "ghost",
		Text:       "hi",
		ClientTime: time.Now().UTC().Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
