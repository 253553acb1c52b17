// Package store provides file-based persistence for sealbox's durable state.
//
// Both sides persist a whole-structure JSON snapshot rewritten atomically on
// every mutation (temp file then rename). All methods are concurrency-safe
// via internal locking, which also guarantees at most one in-flight write per
// snapshot.
//
// The package contains:
//   - ServerFileStore: the relay snapshot {userList, pendingMessageList}
//   - ClientFileStore: the client snapshot (identity, session, history)
package store
