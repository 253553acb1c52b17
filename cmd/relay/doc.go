// Package main runs the sealbox relay: the store-and-forward server that
// registers identities, issues challenge logins and queues encrypted mail.
//
// HTTP API
//
//	POST /signup     Register a username with its public key.
//	POST /prelogin   Get a login challenge encrypted under your public key.
//	POST /login      Trade the decrypted challenge for a session secret.
//	POST /send       Queue an encrypted message for a recipient (authenticated).
//	POST /pull       Drain your queued messages (authenticated).
//
// Behaviour
//
//   - The user directory and pending mailbox persist as one JSON snapshot in
//     the data directory, rewritten atomically on every mutation.
//   - Sessions live in memory only; a restart forces clients to log in again.
//   - The relay never sees plaintext: messages arrive in the clear over the
//     transport's TLS but are stored encrypted under the recipient's key.
//   - Configuration: --addr / PORT, --data / DATA_DIR.
package main
