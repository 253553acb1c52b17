package message

import (
	"context"
	"time"

	"sealbox/internal/crypto"
	"sealbox/internal/domain"
	"sealbox/internal/services/account"
)

// Service is the client half of the delivery protocol.
type Service struct {
	store    domain.ClientStore
	relay    domain.RelayClient
	accounts *account.Service
	now      func() time.Time
}

// New constructs a message service over the shared store, relay and account
// driver.
func New(store domain.ClientStore, relay domain.RelayClient, accounts *account.Service) *Service {
	return &Service{store: store, relay: relay, accounts: accounts, now: time.Now}
}

// Send posts text to toUsername and echoes the entry into local history.
func (s *Service) Send(ctx context.Context, passphrase, toUsername, text string) error {
	clientTime := s.now().UTC().Format(time.RFC3339)
	err := s.accounts.WithSession(ctx, passphrase, func(secret string) error {
		return s.relay.Send(ctx, secret, domain.SendRequest{
			ToUsername: toUsername,
			Text:       text,
			ClientTime: clientTime,
		})
	})
	if err != nil {
		return err
	}
	return s.store.Update(func(st *domain.ClientState) {
		st.MessageList = append(st.MessageList, domain.MailEntry{
			FromUsername: st.Username,
			ToUsername:   toUsername,
			Text:         text,
			ClientTime:   clientTime,
			ServerTime:   clientTime,
		})
	})
}

// Pull drains pending mail, decrypts it and appends it to local history.
// The history write happens before the entries are reported to the caller.
func (s *Service) Pull(ctx context.Context, passphrase string) ([]domain.MailEntry, error) {
	privateKey, err := s.accounts.PrivateKey(passphrase)
	if err != nil {
		return nil, err
	}
	var pending []domain.PendingMessage
	err = s.accounts.WithSession(ctx, passphrase, func(secret string) error {
		var perr error
		pending, perr = s.relay.Pull(ctx, secret)
		return perr
	})
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, nil
	}

	entries := make([]domain.MailEntry, 0, len(pending))
	for _, m := range pending {
		text, err := crypto.Decrypt(privateKey, m.Encrypted)
		if err != nil {
			return nil, err
		}
		entries = append(entries, domain.MailEntry{
			FromUsername: m.FromUsername,
			ToUsername:   m.ToUsername,
			Text:         string(text),
			ClientTime:   m.ClientTime,
			ServerTime:   m.ServerTime,
		})
	}
	if err := s.store.Update(func(st *domain.ClientState) {
		st.MessageList = append(st.MessageList, entries...)
	}); err != nil {
		return nil, err
	}
	return entries, nil
}

// History returns the stored local history.
func (s *Service) History() []domain.MailEntry {
	return s.store.State().MessageList
}
