package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/bus"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/client"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/credstore"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
)

// API is the part of the remote service the controller calls.
type API interface {
	Login(ctx context.Context, username, password string) (*models.AuthResponse, error)
	Me(ctx context.Context) (*models.MeResponse, error)
}

type Controller struct {
	api    API
	store  credstore.Store
	logger logging.Logger

	mu         sync.Mutex
	state      State
	generation uint64

	ready       chan struct{}
	changes     *bus.Bus[State]
	unsubscribe func()
}

var _ View = (*Controller)(nil)

// New builds a controller, subscribes it to Unauthenticated events and
// starts the one-off session restore in the background. Ready is closed once
// the restore has resolved and its state change has been delivered.
func New(ctx context.Context, api API, store credstore.Store, events *bus.Bus[bus.Unauthenticated], logger logging.Logger) *Controller {
	c := &Controller{
		api:     api,
		store:   store,
		logger:  logger.With("component", "session"),
		state:   State{IsBootstrapping: true},
		ready:   make(chan struct{}),
		changes: bus.New[State](),
	}
	c.unsubscribe = events.Subscribe(c.handleUnauthenticated)

	go c.restore(ctx)

	return c
}

func (c *Controller) restore(ctx context.Context) {
	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	if _, ok := c.store.Get(ctx); !ok {
		c.logger.Debug(ctx, "no stored token, starting signed out")
		c.finishRestore(ctx, gen, nil, nil, false)
		return
	}

	resp, err := c.api.Me(ctx)
	var user *models.AuthenticatedUser
	if err == nil && resp != nil && resp.Success {
		user = resp.User
	}
	c.finishRestore(ctx, gen, user, err, true)
}

func (c *Controller) finishRestore(ctx context.Context, gen uint64, user *models.AuthenticatedUser, err error, attempted bool) {
	c.mu.Lock()
	switch {
	case gen != c.generation:
		c.logger.Debug(ctx, "restore superseded")
	case !attempted:
	case user != nil:
		c.state.User = user
		c.logger.Info(ctx, "session restored", "username", user.Username)
	default:
		c.store.Clear(ctx)
		c.state.User = nil
		c.state.Error = MsgSessionExpired
		c.logger.Info(ctx, "stored session rejected", "error", err)
	}
	c.state.IsBootstrapping = false
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.changes.Publish(ctx, snapshot)
	close(c.ready)
}

// Login authenticates against the remote service. A second call while one
// is in flight fails immediately without touching the state.
func (c *Controller) Login(ctx context.Context, username, password string) Result {
	c.mu.Lock()
	if c.state.IsLoading {
		c.mu.Unlock()
		return Result{Message: MsgLoginInProgress}
	}
	c.generation++
	gen := c.generation
	c.state.IsLoading = true
	c.state.Error = ""
	snapshot := c.state.clone()
	c.mu.Unlock()
	c.changes.Publish(ctx, snapshot)

	resp, err := c.api.Login(ctx, username, password)

	c.mu.Lock()
	c.state.IsLoading = false
	var result Result
	switch {
	case gen != c.generation:
		c.logger.Info(ctx, "login resolved after logout, discarded", "username", username)
		result = Result{Message: MsgLoginSuperseded}
	case err != nil:
		c.state.Error = client.MessageOr(err, MsgLoginFailed)
		c.logger.Warn(ctx, "login request failed", "username", username, "error", err)
		result = Result{Message: c.state.Error}
	case !resp.Complete():
		c.store.Clear(ctx)
		c.state.Error = MsgLoginRejected
		if resp != nil && resp.Message != "" {
			c.state.Error = resp.Message
		}
		c.logger.Info(ctx, "login rejected", "username", username)
		result = Result{Message: c.state.Error}
	default:
		c.store.Set(ctx, resp.Token)
		c.state.User = resp.User
		c.logger.Info(ctx, "logged in", "username", resp.User.Username)
		result = Result{Success: true}
	}
	snapshot = c.state.clone()
	c.mu.Unlock()
	c.changes.Publish(ctx, snapshot)

	return result
}

// Logout forgets the credential and the user. Calling it while signed out
// does nothing.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	c.store.Clear(ctx)
	changed := c.state.User != nil
	c.state.User = nil
	snapshot := c.state.clone()
	c.mu.Unlock()

	if changed {
		c.logger.Info(ctx, "logged out")
		c.changes.Publish(ctx, snapshot)
	}
}

func (c *Controller) ClearError() {
	c.mu.Lock()
	if c.state.Error == "" {
		c.mu.Unlock()
		return
	}
	c.state.Error = ""
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.changes.Publish(context.Background(), snapshot)
}

func (c *Controller) handleUnauthenticated(ctx context.Context, ev bus.Unauthenticated) {
	c.mu.Lock()
	if c.state.User == nil {
		c.mu.Unlock()
		return
	}
	c.state.User = nil
	c.state.Error = MsgSessionExpired
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.logger.Info(ctx, "session invalidated", "path", ev.Path, "source", ev.Source)
	c.changes.Publish(ctx, snapshot)
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Subscribe calls fn with a fresh snapshot after every state change until
// the returned function is called.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	return c.changes.Subscribe(func(_ context.Context, s State) { fn(s) })
}

// Ready is closed when bootstrapping has finished.
func (c *Controller) Ready() <-chan struct{} {
	return c.ready
}

// WaitReady blocks until bootstrapping has finished or ctx is done.
func (c *Controller) WaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close detaches the controller from the Unauthenticated bus.
func (c *Controller) Close() {
	c.unsubscribe()
}
