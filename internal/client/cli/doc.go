// Package cli provides the interactive hoverboard command-line client.
//
// It wires configuration, the local session database and the gRPC client,
// then runs a REPL. A session saved by an earlier run is restored and
// checked against the server at startup; a background watcher pings the
// server and switches between online and offline mode.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
