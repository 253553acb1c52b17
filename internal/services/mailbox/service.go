package mailbox

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"sealbox/internal/crypto"
	"sealbox/internal/domain"
	"sealbox/internal/store"
)

// TextLimit is the maximum accepted message length in bytes.
const TextLimit = 200

// Directory is the lookup the mailbox needs from the user registry.
type Directory interface {
	Lookup(username string) (domain.Identity, error)
}

// Service owns the pending-message set. The dedup index keys entries by
// (from, to, serverTime) so a retried request cannot double-enqueue.
type Service struct {
	store *store.ServerFileStore
	dir   Directory
	now   func() time.Time

	mu      sync.Mutex
	pending []domain.PendingMessage
	keys    map[string]struct{}
}

// New builds the mailbox from the persisted snapshot. The clock is injectable
// for deterministic tests.
func New(s *store.ServerFileStore, dir Directory, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	_, pending := s.Load()
	svc := &Service{
		store:   s,
		dir:     dir,
		now:     now,
		pending: pending,
		keys:    make(map[string]struct{}, len(pending)),
	}
	for _, m := range pending {
		svc.keys[dedupKey(m.FromUsername, m.ToUsername, m.ServerTime)] = struct{}{}
	}
	return svc
}

// Enqueue validates text and clientTime, encrypts the text under the
// recipient's public key, stamps serverTime and appends the pending entry in
// one persisted mutation.
func (s *Service) Enqueue(fromUsername, toUsername, text, clientTime string) error {
	if n := len(text); n < 1 || n > TextLimit {
		return fmt.Errorf("%w: text must be 1-%d bytes", domain.ErrValidation, TextLimit)
	}
	if _, err := time.Parse(time.RFC3339, clientTime); err != nil {
		return fmt.Errorf("%w: clientTime is not a valid timestamp", domain.ErrValidation)
	}
	recipient, err := s.dir.Lookup(toUsername)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	serverTime := s.now().UTC().Format(time.RFC3339Nano)
	key := dedupKey(fromUsername, toUsername, serverTime)
	if _, dup := s.keys[key]; dup {
		return fmt.Errorf("%w: duplicate message", domain.ErrConflict)
	}
	encrypted, err := crypto.Encrypt(recipient.PublicKey, []byte(text))
	if err != nil {
		return err
	}
	s.pending = append(s.pending, domain.PendingMessage{
		FromUsername: fromUsername,
		ToUsername:   toUsername,
		Encrypted:    encrypted,
		ClientTime:   clientTime,
		ServerTime:   serverTime,
	})
	s.keys[key] = struct{}{}
	return s.store.SavePending(s.pending)
}

// DrainFor removes every entry addressed to username and persists the
// shrunken set in the same write. Entries come back ascending by clientTime,
// ties in insertion order. No pending mail is an empty result, not an error.
func (s *Service) DrainFor(username string) ([]domain.PendingMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var drained []domain.PendingMessage
	kept := s.pending[:0:0]
	for _, m := range s.pending {
		if m.ToUsername == username {
			drained = append(drained, m)
			continue
		}
		kept = append(kept, m)
	}
	if len(drained) == 0 {
		return nil, nil
	}

	s.pending = kept
	for _, m := range drained {
		delete(s.keys, dedupKey(m.FromUsername, m.ToUsername, m.ServerTime))
	}
	sort.SliceStable(drained, func(i, j int) bool {
		ti, _ := time.Parse(time.RFC3339, drained[i].ClientTime)
		tj, _ := time.Parse(time.RFC3339, drained[j].ClientTime)
		return ti.Before(tj)
	})
	if err := s.store.SavePending(s.pending); err != nil {
		return nil, err
	}
	return drained, nil
}

func dedupKey(from, to, serverTime string) string {
	return from + "\x00" + to + "\x00" + serverTime
}
