package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"sealbox/internal/domain"
)

const serverFilename = "storage.json"

// serverSnapshot is the relay's persisted document.
type serverSnapshot struct {
	UserList           []domain.Identity       `json:"userList"`
	PendingMessageList []domain.PendingMessage `json:"pendingMessageList"`
}

// ServerFileStore persists the relay snapshot. Each section is written
// through as a whole; the mutex keeps writes serialised so the last write
// always reflects a consistent in-memory view.
type ServerFileStore struct {
	path string
	mu   sync.Mutex
	snap serverSnapshot
}

// OpenServer loads the snapshot rooted at dir, creating the directory on
// first run. A load failure is reported but still yields a usable store with
// empty state, so the relay can start fresh.
func OpenServer(dir string) (*ServerFileStore, error) {
	s := &ServerFileStore{path: filepath.Join(dir, serverFilename)}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return s, fmt.Errorf("%w: create %s: %v", domain.ErrStorage, dir, err)
	}
	if err := readJSON(s.path, &s.snap); err != nil {
		s.snap = serverSnapshot{}
		return s, fmt.Errorf("%w: load %s: %v", domain.ErrStorage, s.path, err)
	}
	return s, nil
}

// Load returns the persisted users and pending messages.
func (s *ServerFileStore) Load() ([]domain.Identity, []domain.PendingMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := append([]domain.Identity(nil), s.snap.UserList...)
	pending := append([]domain.PendingMessage(nil), s.snap.PendingMessageList...)
	return users, pending
}

// SaveUsers replaces the user section and rewrites the snapshot.
func (s *ServerFileStore) SaveUsers(users []domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.UserList = append([]domain.Identity(nil), users...)
	return s.flush()
}

// SavePending replaces the pending-message section and rewrites the snapshot.
func (s *ServerFileStore) SavePending(pending []domain.PendingMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.PendingMessageList = append([]domain.PendingMessage(nil), pending...)
	return s.flush()
}

func (s *ServerFileStore) flush() error {
	if err := writeJSON(s.path, s.snap, 0o600); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrStorage, s.path, err)
	}
	return nil
}
