// Package mailbox is the relay's holding area for messages not yet delivered
// to their recipient.
//
// Enqueue validates, encrypts under the recipient's public key and persists;
// DrainFor removes and returns everything addressed to a user in one
// persisted mutation. Plaintext never reaches the snapshot.
package mailbox
