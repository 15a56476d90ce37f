// Package cli provides the interactive PrayLink command-line client.
//
// It wires configuration, the offline feed cache, the gRPC client and a
// session into a REPL. Typical flow: sign in or register, read the feed,
// post, pray, tithe and talk to the spiritual guide. A background watcher
// tracks server reachability and the prompt shows the current mode.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
