// Package message sends and receives mail through the relay.
//
// High-level flow:
//   - Send: stamp clientTime, post through the authenticated session, then
//     echo the plaintext into local history.
//   - Pull: drain the server-side mailbox, decrypt each entry with the local
//     private key and persist the history before reporting delivery. Once the
//     relay has drained an entry it is gone server-side, so a crash between
//     drain and local persistence loses it; that window is part of the
//     protocol contract.
//
// Poller runs Pull on a fixed interval until its context is cancelled.
package message
