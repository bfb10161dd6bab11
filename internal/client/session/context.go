package session

import "context"

// View is what consumers of the session may do: read it, watch it, and
// drive it through Login, Logout and ClearError.
type View interface {
	Snapshot() State
	Subscribe(fn func(State)) (unsubscribe func())
	Ready() <-chan struct{}
	Login(ctx context.Context, username, password string) Result
	Logout(ctx context.Context)
	ClearError()
}

type ctxKey struct{}

func WithSession(ctx context.Context, v View) context.Context {
	return context.WithValue(ctx, ctxKey{}, v)
}

func FromContext(ctx context.Context) (View, bool) {
	v, ok := ctx.Value(ctxKey{}).(View)
	return v, ok && v != nil
}

// MustFromContext panics when ctx carries no session; it is a wiring bug.
func MustFromContext(ctx context.Context) View {
	v, ok := FromContext(ctx)
	if !ok {
		panic("session: no session in context")
	}
	return v
}
