// Package session holds the relay's in-memory login state: one live
// challenge per username and the bearer secrets issued after a verified
// handshake.
//
// Nothing here is persisted. A relay restart invalidates every session and
// forces clients back through the challenge, which is intentional.
package session
