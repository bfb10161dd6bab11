// Package credstore persists the single bearer token of the client.
//
// It is the only place the token lives: the transport reads it on every
// request, the session controller writes it on login and clears it on
// logout. Storage failures never reach callers; they are logged and the
// store behaves as if no token were stored.
package credstore

import "context"

const (
	// TokenKey is the metadata key holding the bearer token.
	TokenKey = "auth_token"
	// SavedAtKey records when the token was written (RFC3339).
	SavedAtKey = "auth_token_saved_at"
)

type Store interface {
	// Get returns the stored token, or ok=false when there is none.
	Get(ctx context.Context) (token string, ok bool)
	// Set replaces the stored token. An empty token clears it.
	Set(ctx context.Context, token string)
	Clear(ctx context.Context)
	// ClearIf removes the stored token only if it still equals token and
	// reports whether it did. The comparison and the removal are atomic.
	ClearIf(ctx context.Context, token string) bool
}
