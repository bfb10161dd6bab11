package client

import (
	"net/http"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/bus"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/credstore"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
	"github.com/google/uuid"
)

// AuthTransport is the http.RoundTripper every call to the remote service
// goes through. It attaches the stored bearer token and, when the server
// answers 401 to a request that carried the token still stored, clears the
// token and raises Unauthenticated before handing the response back. A 401
// for a superseded token, or for an anonymous request, passes through
// without side effects.
type AuthTransport struct {
	base   http.RoundTripper
	store  credstore.Store
	events *bus.Bus[bus.Unauthenticated]
	logger logging.Logger
}

// NewAuthTransport wraps base; nil means http.DefaultTransport.
func NewAuthTransport(base http.RoundTripper, store credstore.Store, events *bus.Bus[bus.Unauthenticated], logger logging.Logger) *AuthTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &AuthTransport{base: base, store: store, events: events, logger: logger.With("component", "transport")}
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	r := req.Clone(ctx)
	token, ok := t.store.Get(ctx)
	if ok {
		r.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	} else {
		r.Header.Del(common.AuthorizationHeaderName)
	}
	if r.Header.Get(common.RequestIDHeaderName) == "" {
		r.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}

	resp, err := t.base.RoundTrip(r)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && ok {
		reqID := r.Header.Get(common.RequestIDHeaderName)
		if !t.store.ClearIf(ctx, token) {
			t.logger.Debug(ctx, "stale credential rejected, ignored", "path", r.URL.Path, "request_id", reqID)
			return resp, nil
		}
		t.logger.Info(ctx, "credential rejected", "path", r.URL.Path, "request_id", reqID)
		t.events.Publish(ctx, bus.Unauthenticated{Path: r.URL.Path, Status: resp.StatusCode, Source: "transport"})
	}

	return resp, nil
}
