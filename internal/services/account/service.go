package account

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sealbox/internal/crypto"
	"sealbox/internal/domain"
)

// Service drives the identity/session lifecycle against the relay.
//
// The mutex makes a 401-triggered re-login mutually exclusive with any other
// read of the cached secret, so a concurrent poll tick and an interactive
// send cannot race on a half-replaced session.
type Service struct {
	store domain.ClientStore
	relay domain.RelayClient
	mu    sync.Mutex
}

// New returns an account service over the given store and relay.
func New(store domain.ClientStore, relay domain.RelayClient) *Service {
	return &Service{store: store, relay: relay}
}

// Username returns the locally stored username, empty before signup.
func (s *Service) Username() string {
	return s.store.State().Username
}

// Signup generates a key pair, registers the public half and persists the
// identity with the private key sealed under the passphrase. A client that
// already holds an identity refuses to sign up again.
func (s *Service) Signup(ctx context.Context, username, passphrase string) error {
	st := s.store.State()
	if st.Username != "" {
		return fmt.Errorf("%w: already signed up as %q", domain.ErrConflict, st.Username)
	}
	if err := domain.ValidateUsername(username); err != nil {
		return err
	}
	publicKey, privateKey, err := crypto.GenerateKeyPair()
	if err != nil {
		return err
	}
	sealed, err := crypto.SealPrivateKey(passphrase, privateKey)
	if err != nil {
		return err
	}
	if err := s.relay.Signup(ctx, username, publicKey); err != nil {
		return err
	}
	return s.store.Update(func(st *domain.ClientState) {
		st.Username = username
		st.PublicKey = publicKey
		st.PrivateKey = sealed
	})
}

// Login runs the challenge handshake and caches the issued session secret.
func (s *Service) Login(ctx context.Context, passphrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginLocked(ctx, passphrase)
}

func (s *Service) loginLocked(ctx context.Context, passphrase string) error {
	st := s.store.State()
	if st.Username == "" {
		return fmt.Errorf("%w: no identity stored, sign up first", domain.ErrNotFound)
	}
	privateKey, err := crypto.OpenPrivateKey(passphrase, st.PrivateKey)
	if err != nil {
		return err
	}
	encrypted, err := s.relay.Prelogin(ctx, st.Username)
	if err != nil {
		return err
	}
	nonce, err := crypto.Decrypt(privateKey, encrypted)
	if err != nil {
		return err
	}
	secret, err := s.relay.Login(ctx, st.Username, string(nonce))
	if err != nil {
		return err
	}
	return s.store.Update(func(st *domain.ClientState) {
		st.SessionSecret = secret
	})
}

// PrivateKey unseals and returns the stored private key PEM.
func (s *Service) PrivateKey(passphrase string) (string, error) {
	st := s.store.State()
	if st.PrivateKey == "" {
		return "", fmt.Errorf("%w: no identity stored, sign up first", domain.ErrNotFound)
	}
	return crypto.OpenPrivateKey(passphrase, st.PrivateKey)
}

// WithSession runs fn with the cached session secret. If the relay rejects
// the session, the stale secret is cleared, login is re-run and fn retried
// exactly once. Whoever hits the 401 first performs the re-login; a caller
// that lost that race simply picks up the fresh secret.
func (s *Service) WithSession(ctx context.Context, passphrase string, fn func(secret string) error) error {
	s.mu.Lock()
	secret := s.store.State().SessionSecret
	s.mu.Unlock()

	err := fn(secret)
	if !errors.Is(err, domain.ErrUnauthorized) {
		return err
	}

	s.mu.Lock()
	if s.store.State().SessionSecret == secret {
		_ = s.store.Update(func(st *domain.ClientState) { st.SessionSecret = "" })
		if lerr := s.loginLocked(ctx, passphrase); lerr != nil {
			s.mu.Unlock()
			return lerr
		}
	}
	secret = s.store.State().SessionSecret
	s.mu.Unlock()
	return fn(secret)
}
