package store

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/badele/textanalyzer/internal/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS texts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	content TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tokens (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	text_id INTEGER NOT NULL,
	token TEXT NOT NULL,
	position INTEGER,
	FOREIGN KEY(text_id) REFERENCES texts(id)
);

CREATE TABLE IF NOT EXISTS stats (
	text_id INTEGER PRIMARY KEY,
	token_count INTEGER,
	avg_len INTEGER,
	max_len INTEGER,
	min_len INTEGER,
	FOREIGN KEY(text_id) REFERENCES texts(id)
);
`

// SQLiteStore implements Store on an embedded SQLite file.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and its tables.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, storageErr(StoreTypeSQLite, "open", ErrInvalidConfig)
	}

	dsn, err := sqliteDSN(path)
	if err != nil {
		return nil, storageErr(StoreTypeSQLite, "open", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, storageErr(StoreTypeSQLite, "open", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, storageErr(StoreTypeSQLite, "open", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, storageErr(StoreTypeSQLite, "schema", err)
	}

	return &SQLiteStore{db: db}, nil
}

// sqliteDSN builds a file: URI for path. The path is escaped so that '?',
// '#' or '%' in a file name stay part of the name.
func sqliteDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(abs),
		RawQuery: "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
	}
	return u.String(), nil
}

func (s *SQLiteStore) insert(ctx context.Context, op, query string, args ...any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return 0, storageErr(StoreTypeSQLite, op, ErrClosed)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, storageErr(StoreTypeSQLite, op, classify(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr(StoreTypeSQLite, op, err)
	}

	return id, nil
}

// InsertText implements Store.
func (s *SQLiteStore) InsertText(ctx context.Context, content string) (int64, error) {
	return s.insert(ctx, "insert_text", "INSERT INTO texts (content) VALUES (?)", content)
}

// InsertToken implements Store.
func (s *SQLiteStore) InsertToken(ctx context.Context, textID int64, value string, position int) (int64, error) {
	return s.insert(ctx, "insert_token",
		"INSERT INTO tokens (text_id, token, position) VALUES (?, ?, ?)",
		textID, value, position)
}

// InsertStats implements Store.
func (s *SQLiteStore) InsertStats(ctx context.Context, textID int64, stats types.Stats) error {
	_, err := s.insert(ctx, "insert_stats",
		"INSERT INTO stats (text_id, token_count, avg_len, max_len, min_len) VALUES (?, ?, ?, ?, ?)",
		textID, stats.TokenCount, stats.AvgLen, stats.MaxLen, stats.MinLen)
	return err
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil
	if err != nil {
		return storageErr(StoreTypeSQLite, "close", err)
	}
	return nil
}

// classify maps constraint violations onto the package sentinels while
// keeping the driver error in the chain.
func classify(err error) error {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return err
	}

	code := serr.Code()
	msg := serr.Error()
	switch {
	case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return errors.Join(ErrTextNotFound, err)
	case code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, code == sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return errors.Join(ErrDuplicateStats, err)
	// primary result code only
	case code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(msg, "FOREIGN KEY"):
		return errors.Join(ErrTextNotFound, err)
	case code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(msg, "UNIQUE"):
		return errors.Join(ErrDuplicateStats, err)
	}
	return err
}

var _ Store = (*SQLiteStore)(nil)
