package credstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/sessionkeeper/internal/dbx"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
)

// SQLiteStore keeps the token in the metadata table of the client database,
// so it survives restarts of the CLI.
type SQLiteStore struct {
	db     *sql.DB
	logger logging.Logger
	now    func() time.Time
}

// NewSQLiteStore returns a store over db. A nil db yields a store that never
// holds a token.
func NewSQLiteStore(db *sql.DB, logger logging.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, logger: logger.With("component", "credstore"), now: time.Now}
}

func (s *SQLiteStore) Get(ctx context.Context) (string, bool) {
	if s.db == nil {
		return "", false
	}

	value, found, err := metadata.NewSQLiteRepository(s.db).Get(ctx, TokenKey)
	if err != nil {
		s.logger.Warn(ctx, "token read failed, treating as absent", "error", err)
		return "", false
	}
	if !found || len(value) == 0 {
		return "", false
	}
	return string(value), true
}

func (s *SQLiteStore) Set(ctx context.Context, token string) {
	if token == "" {
		s.Clear(ctx)
		return
	}
	if s.db == nil {
		s.logger.Warn(ctx, "no persistent storage, token not saved")
		return
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, TokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, SavedAtKey, []byte(s.now().UTC().Format(time.RFC3339)))
	})
	if err != nil {
		s.logger.Warn(ctx, "token write failed", "error", err)
	}
}

func (s *SQLiteStore) Clear(ctx context.Context) {
	if s.db == nil {
		return
	}
	if err := metadata.NewSQLiteRepository(s.db).Delete(ctx, TokenKey, SavedAtKey); err != nil {
		s.logger.Warn(ctx, "token clear failed", "error", err)
	}
}

func (s *SQLiteStore) ClearIf(ctx context.Context, token string) bool {
	if s.db == nil || token == "" {
		return false
	}

	var cleared bool
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		value, found, err := repo.Get(ctx, TokenKey)
		if err != nil || !found || string(value) != token {
			return err
		}
		if err := repo.Delete(ctx, TokenKey, SavedAtKey); err != nil {
			return err
		}
		cleared = true
		return nil
	})
	if err != nil {
		s.logger.Warn(ctx, "token clear failed", "error", err)
		return false
	}
	return cleared
}

// SavedAt reports when the current token was stored.
func (s *SQLiteStore) SavedAt(ctx context.Context) (time.Time, bool) {
	if s.db == nil {
		return time.Time{}, false
	}
	value, found, err := metadata.NewSQLiteRepository(s.db).Get(ctx, SavedAtKey)
	if err != nil || !found {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, string(value))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
