package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteBackend keeps entries in the kv_entries table created by the
// migrations.
type SQLiteBackend struct {
	db *sql.DB
}

func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

func (b *SQLiteBackend) Namespace(owner string) Store {
	return &sqliteStore{db: b.db, namespace: owner}
}

func (b *SQLiteBackend) Dump(ctx context.Context) (Entries, error) {
	rows, err := b.db.QueryContext(
		ctx,
		`SELECT namespace, key, value FROM kv_entries ORDER BY namespace, key`,
	)
	if err != nil {
		return nil, fmt.Errorf("dump entries: %w", err)
	}
	defer rows.Close()

	entries := make(Entries)
	for rows.Next() {
		var namespace, key, value string
		if err := rows.Scan(&namespace, &key, &value); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if entries[namespace] == nil {
			entries[namespace] = make(map[string]string)
		}
		entries[namespace][key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

func (b *SQLiteBackend) Restore(ctx context.Context, entries Entries) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin restore tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for namespace, keys := range entries {
		for key, value := range keys {
			if err := upsert(ctx, tx, namespace, key, value, now); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit restore: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func upsert(ctx context.Context, db execer, namespace, key, value, now string) error {
	_, err := db.ExecContext(
		ctx,
		`INSERT INTO kv_entries (namespace, key, value, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(namespace, key) DO UPDATE
		 SET value = excluded.value,
		     updated_at = excluded.updated_at`,
		namespace,
		key,
		value,
		now,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

type sqliteStore struct {
	db        *sql.DB
	namespace string
}

func (s *sqliteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT value FROM kv_entries WHERE namespace = ? AND key = ?`,
		s.namespace,
		key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *sqliteStore) Set(ctx context.Context, key, value string) error {
	return upsert(ctx, s.db, s.namespace, key, value, time.Now().UTC().Format(time.RFC3339Nano))
}

func (s *sqliteStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(
		ctx,
		`DELETE FROM kv_entries WHERE namespace = ? AND key = ?`,
		s.namespace,
		key,
	)
	if err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
