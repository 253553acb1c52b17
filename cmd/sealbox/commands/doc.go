// Package commands defines the sealbox CLI and wires dependencies for subcommands.
//
// Commands
//
//	signup     Create a key pair and register a username with the relay
//	login      Prove key possession and cache a session secret
//	send       Send an encrypted message to a peer
//	pull       Drain and decrypt your queued messages
//	history    Print the local message history
//	chat       Interactive loop with a background poller
//
// # Implementation
//
// The root command builds the dependency graph (store, relay client,
// services) before any subcommand runs, so handlers share one app context.
// The private key lives sealed under the passphrase given with -p.
package commands
