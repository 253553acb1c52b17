package session

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"

	"github.com/google/uuid"

	"sealbox/internal/crypto"
	"sealbox/internal/domain"
)

// secretLength and secretCharset mirror the issued bearer token shape:
// 64 characters of mixed letters, digits and symbols.
const secretLength = 64

const secretCharset = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!@#$%^&*()-_=+[]{}<>?"

// Directory is the lookup the manager needs from the user registry.
type Directory interface {
	Lookup(username string) (domain.Identity, error)
}

// challenge is one username's live login attempt. Once secret is filled the
// challenge is spent; a fresh BeginChallenge replaces it.
type challenge struct {
	nonce  string
	secret string
}

// Manager implements the challenge-response handshake and session lookup.
type Manager struct {
	dir Directory

	mu         sync.Mutex
	challenges map[string]*challenge // username -> live challenge
	secrets    map[string]string     // secret -> username
	byUser     map[string]string     // username -> current secret
}

// NewManager returns an empty session manager backed by the directory.
func NewManager(dir Directory) *Manager {
	return &Manager{
		dir:        dir,
		challenges: make(map[string]*challenge),
		secrets:    make(map[string]string),
		byUser:     make(map[string]string),
	}
}

// BeginChallenge generates a nonce, encrypts it under the user's public key
// and records it as the single live challenge for that username. The caller
// proves key possession by sending the decrypted nonce to VerifyChallenge.
func (m *Manager) BeginChallenge(username string) (string, error) {
	id, err := m.dir.Lookup(username)
	if err != nil {
		return "", err
	}
	nonce := uuid.NewString()
	encrypted, err := crypto.Encrypt(id.PublicKey, []byte(nonce))
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.challenges[username] = &challenge{nonce: nonce}
	m.mu.Unlock()
	return encrypted, nil
}

// VerifyChallenge checks the recovered nonce against the live challenge and,
// on match, issues a session secret. The challenge is single-use: a second
// verify against the same nonce fails. A new secret supersedes any session
// previously issued to the same username.
func (m *Manager) VerifyChallenge(username, decrypted string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch, ok := m.challenges[username]
	if !ok || ch.secret != "" || ch.nonce != decrypted {
		return "", fmt.Errorf("%w: login handshake failed", domain.ErrAuth)
	}
	secret, err := newSecret()
	if err != nil {
		return "", err
	}
	ch.secret = secret
	if old, ok := m.byUser[username]; ok {
		delete(m.secrets, old)
	}
	m.secrets[secret] = username
	m.byUser[username] = secret
	return secret, nil
}

// Authenticate resolves a bearer secret to its username.
func (m *Manager) Authenticate(secret string) (string, error) {
	if secret == "" {
		return "", domain.ErrUnauthorized
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	username, ok := m.secrets[secret]
	if !ok {
		return "", domain.ErrUnauthorized
	}
	return username, nil
}

func newSecret() (string, error) {
	out := make([]byte, secretLength)
	max := big.NewInt(int64(len(secretCharset)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrCrypto, err)
		}
		out[i] = secretCharset[n.Int64()]
	}
	return string(out), nil
}
