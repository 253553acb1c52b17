package domain

import "context"

// RelayClient is how the client talks to the relay server, all with context.
type RelayClient interface {
	Signup(ctx context.Context, username, publicKey string) error
	Prelogin(ctx context.Context, username string) (encrypted string, err error)
	Login(ctx context.Context, username, decrypted string) (secret string, err error)
	Send(ctx context.Context, secret string, req SendRequest) error
	Pull(ctx context.Context, secret string) ([]PendingMessage, error)
}

// ClientStore persists the client's whole snapshot. Update serialises
// mutate-then-write so concurrent writers cannot lose updates.
type ClientStore interface {
	State() ClientState
	Update(fn func(*ClientState)) error
}
