package directory

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"sealbox/internal/domain"
	"sealbox/internal/store"
)

// Service owns the user registry. Lookups are keyed; the insertion-ordered
// list is kept alongside for the persisted snapshot.
type Service struct {
	store *store.ServerFileStore
	now   func() time.Time

	mu    sync.RWMutex
	users []domain.Identity
	index map[string]int // username -> position in users
}

// New builds the directory from the persisted snapshot.
func New(s *store.ServerFileStore) *Service {
	users, _ := s.Load()
	svc := &Service{
		store: s,
		now:   time.Now,
		users: users,
		index: make(map[string]int, len(users)),
	}
	for i, u := range users {
		svc.index[u.Username] = i
	}
	return svc
}

// Register validates the username and public key, appends the identity and
// persists the registry. Taken usernames are a conflict; the match is
// case-sensitive and exact.
func (s *Service) Register(username, publicKey string) (domain.Identity, error) {
	if err := domain.ValidateUsername(username); err != nil {
		return domain.Identity{}, err
	}
	if strings.TrimSpace(publicKey) == "" {
		return domain.Identity{}, fmt.Errorf("%w: public key is required", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.index[username]; taken {
		return domain.Identity{}, fmt.Errorf("%w: username %q is taken", domain.ErrConflict, username)
	}
	id := domain.Identity{
		Username:  username,
		PublicKey: publicKey,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	s.users = append(s.users, id)
	s.index[username] = len(s.users) - 1
	if err := s.store.SaveUsers(s.users); err != nil {
		return domain.Identity{}, err
	}
	return id, nil
}

// Lookup returns the identity registered under username.
func (s *Service) Lookup(username string) (domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[username]
	if !ok {
		return domain.Identity{}, fmt.Errorf("%w: unknown user %q", domain.ErrNotFound, username)
	}
	return s.users[i], nil
}
