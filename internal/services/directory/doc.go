// Package directory is the relay's registry of usernames to public keys.
//
// It validates and registers identities, answers lookups for login and send,
// and writes every mutation through to the durable snapshot.
package directory
