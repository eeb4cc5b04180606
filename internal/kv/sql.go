package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/safar/solestride/internal/database"
)

// Dialect captures what differs between the SQL backends.
type Dialect struct {
	Name      string
	Isolation sql.IsolationLevel
	// Positional rewrites "?" placeholders into the backend's syntax.
	Positional bool
}

var (
	Postgres = Dialect{Name: "postgres", Isolation: sql.LevelSerializable, Positional: true}
	SQLite   = Dialect{Name: "sqlite", Isolation: sql.LevelDefault}
)

const (
	getQuery    = `SELECT value FROM kv_blobs WHERE key = ?`
	deleteQuery = `DELETE FROM kv_blobs WHERE key = ?`
	upsertQuery = `
		INSERT INTO kv_blobs (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value,
		    updated_at = CURRENT_TIMESTAMP`
)

// SQLStore keeps blobs in the kv_blobs table created by the embedded
// migrations. Batch writes run in one transaction with retry on
// serialization, deadlock and busy errors.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	txOpts  database.TxOptions

	get    string
	delete string
	upsert string
}

func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	opts := database.DefaultTxOptions()
	opts.IsolationLevel = dialect.Isolation

	return &SQLStore{
		db:      db,
		dialect: dialect,
		txOpts:  opts,
		get:     dialect.rebind(getQuery),
		delete:  dialect.rebind(deleteQuery),
		upsert:  dialect.rebind(upsertQuery),
	}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.get, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	return s.SetMany(ctx, []Entry{{Key: key, Value: value}})
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.delete, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) SetMany(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	return database.WithRetry(ctx, s.db, s.txOpts, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, s.upsert)
		if err != nil {
			return fmt.Errorf("prepare upsert: %w", err)
		}
		defer stmt.Close()

		for _, e := range entries {
			if _, err := stmt.ExecContext(ctx, e.Key, string(e.Value)); err != nil {
				return fmt.Errorf("set %s: %w", e.Key, err)
			}
		}
		return nil
	})
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (d Dialect) rebind(query string) string {
	if !d.Positional {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
