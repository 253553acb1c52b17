package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"sealbox/internal/domain"
)

const clientFilename = "storage.json"

// ClientFileStore persists the client snapshot under the home directory.
type ClientFileStore struct {
	path  string
	mu    sync.Mutex
	state domain.ClientState
}

// OpenClient loads the client snapshot rooted at dir, creating the directory
// on first run. Unlike the relay, a corrupt snapshot is a hard error: wiping
// it would destroy the locally held private key.
func OpenClient(dir string) (*ClientFileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", domain.ErrStorage, dir, err)
	}
	s := &ClientFileStore{path: filepath.Join(dir, clientFilename)}
	if err := readJSON(s.path, &s.state); err != nil {
		return nil, fmt.Errorf("%w: load %s: %v", domain.ErrStorage, s.path, err)
	}
	return s, nil
}

// State returns a copy of the current snapshot.
func (s *ClientFileStore) State() domain.ClientState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.MessageList = append([]domain.MailEntry(nil), s.state.MessageList...)
	return st
}

// Update applies fn to the snapshot and rewrites it. Mutation and write are
// serialised under one lock; a write failure leaves the in-memory state
// changed and is surfaced to the caller, the next successful write reconciles
// the file.
func (s *ClientFileStore) Update(fn func(*domain.ClientState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	if err := writeJSON(s.path, s.state, 0o600); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrStorage, s.path, err)
	}
	return nil
}

// Compile-time assertion that ClientFileStore implements domain.ClientStore.
var _ domain.ClientStore = (*ClientFileStore)(nil)
