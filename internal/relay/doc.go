// Package relay carries the JSON-over-HTTP surface between client and server.
//
// Server.Register mounts the five operations on an echo instance:
//
//	POST /signup    {username, publicKey}            -> {status}
//	POST /prelogin  {username}                       -> {status, encrypted}
//	POST /login     {username, decrypted}            -> {status, secret}
//	POST /send      {toUsername, text, clientTime}   -> {status}
//	POST /pull      (empty body)                     -> {status, pending: [...]}
//
// Send and pull authenticate via the x-session-secret header. Every response
// is an envelope {status, ...payload}, or {status, message} on failure, with
// the HTTP status mirroring the envelope status. 401 specifically signals
// "re-authenticate".
//
// Client is the matching HTTP client. It translates failure envelopes back
// into the typed errors of internal/domain.
package relay
