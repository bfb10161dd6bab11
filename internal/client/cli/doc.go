// Package cli provides the interactive sessionkeeper command-line client.
//
// NewApp wires configuration, the local token store, the authenticated
// transport, the session controller and the user service. App.Run starts
// the database watcher and a REPL that blocks until the user exits.
//
// Commands that need a signed-in user wait while a stored session is being
// restored ("Restoring session...") and then refuse to run without one.
// When the server rejects the token mid-session the REPL prints the
// controller's expiry message on its own.
package cli
