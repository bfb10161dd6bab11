package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/bus"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/client"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/config"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/credstore"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/services"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/session"
	"github.com/dmitrijs2005/sessionkeeper/internal/filex"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	session session.View
	users   services.UserService
	reader  *bufio.Reader
	out     io.Writer

	db      *sql.DB
	watcher *credstore.Watcher
	close   func()
}

// NewApp wires the local store, the authenticated transport, the API client
// and the session controller. When the local database cannot be opened the
// token is kept in memory for this run only.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	events := bus.New[bus.Unauthenticated]()

	a := &App{config: c, logger: logger, reader: bufio.NewReader(os.Stdin), out: os.Stdout}

	var store credstore.Store
	path, err := a.openDatabase(ctx)
	if err != nil {
		logger.Warn(ctx, "local database unavailable, session will not survive restart", "path", c.DBPath, "error", err)
		store = credstore.NewMemoryStore()
	} else {
		store = credstore.NewSQLiteStore(a.db, logger)
		w, err := credstore.NewWatcher(path, store, events, logger)
		if err != nil {
			logger.Warn(ctx, "cannot watch local database", "path", path, "error", err)
		} else {
			a.watcher = w
		}
	}

	transport := client.NewAuthTransport(nil, store, events, logger)
	api := client.NewHTTPClient(c.APIBaseURL, transport, c.RequestTimeout, logger)

	ctrl := session.New(ctx, api, store, events, logger)
	a.session = ctrl
	a.users = services.NewUserService(api)
	a.close = ctrl.Close

	return a, nil
}

func (a *App) openDatabase(ctx context.Context) (string, error) {
	path, err := filex.EnsureParentDir(a.config.DBPath)
	if err != nil {
		return "", err
	}
	db, err := client.InitDatabase(ctx, path)
	if err != nil {
		return "", err
	}
	a.db = db
	return path, nil
}

// Run starts the background watchers and blocks in the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.shutdown()

	if a.watcher != nil {
		go func() {
			if err := a.watcher.Run(ctx); err != nil {
				a.logger.Warn(ctx, "database watcher stopped", "error", err)
			}
		}()
	}

	stop := a.watchSession()
	defer stop()

	printlnFn("sessionkeeper CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) shutdown() {
	if a.close != nil {
		a.close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Authenticated()
}

// status is shown in the prompt.
func (a *App) status() string {
	s := a.session.Snapshot()
	switch {
	case s.IsBootstrapping:
		return "(restoring)"
	case s.User != nil:
		return "(" + s.User.Username + ")"
	default:
		return "(signed out)"
	}
}

// watchSession prints the expiry notice whenever the controller drops the
// session on its own: a rejected stored token, or a 401 from the server.
func (a *App) watchSession() (stop func()) {
	var (
		mu      sync.Mutex
		lastErr string
	)
	note := func(s session.State, prefix string) {
		if s.Error == session.MsgSessionExpired && lastErr != s.Error {
			printlnFn(prefix + s.Error)
		}
		lastErr = s.Error
	}

	// Subscribe before reading the snapshot so a change in between is not
	// lost; mu keeps the handler from running until the snapshot is noted.
	mu.Lock()
	defer mu.Unlock()
	stop = a.session.Subscribe(func(s session.State) {
		mu.Lock()
		defer mu.Unlock()
		note(s, "\n")
	})
	note(a.session.Snapshot(), "")
	return stop
}
