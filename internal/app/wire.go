package app

import (
	"net/http"

	"sealbox/internal/relay"
	"sealbox/internal/services/account"
	"sealbox/internal/services/message"
	"sealbox/internal/store"
)

// Wire bundles the store, relay client and services for the CLI.
type Wire struct {
	Store    *store.ClientFileStore
	Relay    *relay.Client
	Accounts *account.Service
	Messages *message.Service
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	st, err := store.OpenClient(cfg.Home)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	rc := relay.NewClient(cfg.ServerURL, httpClient)

	accounts := account.New(st, rc)
	messages := message.New(st, rc, accounts)

	return &Wire{
		Store:    st,
		Relay:    rc,
		Accounts: accounts,
		Messages: messages,
	}, nil
}
