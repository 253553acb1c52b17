// Package account is the client's session driver.
//
// It owns the locally stored identity and the cached session secret: signup
// generates and seals the key pair, login runs the challenge handshake, and
// WithSession retries an authenticated call exactly once after a transparent
// re-login when the relay answers 401.
package account
