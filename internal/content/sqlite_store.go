package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewSQLiteStore(dsn string, log zerolog.Logger) (*SQLiteStore, error) {
	// 确保数据库文件所在的目录存在
	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA foreign_keys=ON;",
		// 设置繁忙超时，防止 locked 错误
		"PRAGMA busy_timeout=5000;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	s := &SQLiteStore{
		db:  db,
		log: log.With().Str("component", "sqlite-store").Logger(),
	}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	s.log.Debug().Str("dsn", dsn).Msg("sqlite store opened")
	return s, nil
}

func (s *SQLiteStore) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY
	);
	CREATE TABLE IF NOT EXISTS entries (
		collection TEXT NOT NULL REFERENCES collections(name) ON DELETE CASCADE,
		id TEXT NOT NULL,
		post_date INTEGER NOT NULL,
		data TEXT NOT NULL,
		body TEXT,
		PRIMARY KEY (collection, id)
	);
	CREATE INDEX IF NOT EXISTS idx_entries_post_date ON entries(collection, post_date DESC);
	`
	_, err := s.db.Exec(query)
	return err
}

// LoadCollection returns entries in insertion order.
func (s *SQLiteStore) LoadCollection(ctx context.Context, name string) ([]Entry, error) {
	if err := validateCollection(name); err != nil {
		return nil, err
	}

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM collections WHERE name = ?", name).Scan(&n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT id, data, body FROM entries WHERE collection = ? ORDER BY rowid", name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e       Entry
			dataRaw string
			body    sql.NullString
		)
		if err := rows.Scan(&e.ID, &dataRaw, &body); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(dataRaw), &e.Data); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedEntry, e.ID, err)
		}
		e.Collection = name
		e.Body = body.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateCollection registers an empty collection. It is a no-op when the
// collection already exists.
func (s *SQLiteStore) CreateCollection(ctx context.Context, name string) error {
	if err := validateCollection(name); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, "INSERT OR IGNORE INTO collections (name) VALUES (?)", name)
	return err
}

func (s *SQLiteStore) Put(ctx context.Context, entry Entry) error {
	if err := validateCollection(entry.Collection); err != nil {
		return err
	}
	if err := entry.validate(); err != nil {
		return err
	}

	dataJSON, err := json.Marshal(entry.Data)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO collections (name) VALUES (?)", entry.Collection); err != nil {
		return err
	}

	query := `
	INSERT INTO entries (collection, id, post_date, data, body)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(collection, id) DO UPDATE SET
		post_date = excluded.post_date,
		data = excluded.data,
		body = excluded.body
	`
	if _, err := tx.ExecContext(ctx, query, entry.Collection, entry.ID, entry.Data.PostDate.UnixNano(), string(dataJSON), entry.Body); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	if id == "" {
		return ErrInvalidID
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE collection = ? AND id = ?", collection, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
