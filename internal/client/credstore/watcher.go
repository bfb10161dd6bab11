package credstore

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/bus"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher notices another process removing the token from the shared
// database file and raises Unauthenticated on the local bus. It is best
// effort: missed or coalesced file events only delay the signal until the
// next request is rejected by the server.
type Watcher struct {
	path     string
	store    Store
	events   *bus.Bus[bus.Unauthenticated]
	logger   logging.Logger
	debounce time.Duration
	fsw      *fsnotify.Watcher
	// had is whether a token was stored at the last check.
	had bool
}

// NewWatcher watches the directory holding dbPath. Writes to dbPath and its
// -wal / -journal siblings trigger a re-read of the store. The token state
// at construction is the baseline Run compares against.
func NewWatcher(dbPath string, store Store, events *bus.Bus[bus.Unauthenticated], logger logging.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dbPath, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	_, had := store.Get(context.Background())

	return &Watcher{
		had:      had,
		path:     abs,
		store:    store,
		events:   events,
		logger:   logger.With("component", "credstore-watcher"),
		debounce: defaultDebounce,
		fsw:      fsw,
	}, nil
}

// Run blocks until ctx is cancelled or the underlying watcher fails. It
// closes the fsnotify watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn(ctx, "file watch error", "error", err)

		case <-fire:
			fire = nil
			_, has := w.store.Get(ctx)
			if w.had && !has {
				w.logger.Info(ctx, "token removed by another process")
				w.events.Publish(ctx, bus.Unauthenticated{Source: "credstore"})
			}
			w.had = has
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return strings.HasPrefix(name, w.path)
}
