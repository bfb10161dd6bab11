// Package client contains the network side of the sessionkeeper client.
//
// # Overview
//
// The package provides:
//  1. AuthTransport, the http.RoundTripper through which every request to
//     the remote service passes. It injects "Authorization: Bearer <token>"
//     from the credential store and turns a 401 answer into a cleared store
//     plus one bus.Unauthenticated event, whatever call triggered it.
//  2. HTTPClient, the typed JSON client of the remote contract (see Client):
//     Login, Signup, Me and the user-management calls.
//  3. Local database bootstrap (InitDatabase, RunMigrations) wiring SQLite
//     and the embedded goose migrations.
//
// # Error Handling
//
// Failures are reported with sentinel errors matched via errors.Is:
// ErrUnavailable (connection failures), ErrUnauthorized (401, through
// *APIError) and ErrMalformedResponse (undecodable 2xx bodies). Any other
// non-2xx answer is an *APIError; ServerMessage pulls the server-supplied
// message out of an arbitrary error.
package client
