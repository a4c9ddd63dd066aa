/*
Package sqlite provides a SQLite-backed implementation of generic.Store.

PURPOSE:
  Durable alternative to the in-memory store. Selected with
  store.driver=sqlite; the API behaves the same with either backend.

LAYOUT:
  One table holds every resource. Each row is one record serialized as
  JSON, keyed by (resource, id). position keeps store order: creates take
  max(position)+1, updates rewrite the body in place, deletes leave a gap
  that ordering ignores.

KEY TABLES:
  records: resource, id, position, body

CONCURRENCY:
  A DB owns one sync.RWMutex shared by every Store opened on it, and the
  pool is capped at one connection so ":memory:" databases stay a single
  database. Writes run in a transaction while holding the write lock.

WAL MODE:
  File databases are opened with WAL so readers do not block the writer.

USAGE:
  db, err := sqlite.Open("./data/insurance.db")
  if err != nil {
      return err
  }
  defer db.Close()

  policies := sqlite.NewStore[insurance.Policy](db, "policies")

MIGRATION:
  Schema is auto-migrated on Open(). A single JSON table needs no
  versioned migrations.

SEE ALSO:
  - generic/store.go: Interface definition
  - generic/store/memory.go: In-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/insurance-admin/generic"
)

// DB is an open SQLite database shared by the per-resource stores.
type DB struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (or creates) the database at dbPath and migrates it.
// Use ":memory:" for an in-memory database.
func Open(dbPath string) (*DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks the connection; used by the health endpoint.
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		resource TEXT NOT NULL,
		id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		body TEXT NOT NULL,
		PRIMARY KEY (resource, id)
	);

	CREATE INDEX IF NOT EXISTS idx_records_resource_position
		ON records(resource, position);
	`
	_, err := d.db.Exec(schema)
	return err
}

// =============================================================================
// RECORD STORE (generic.Store interface)
// =============================================================================

// Store persists the records of one resource as JSON rows.
type Store[T generic.Record] struct {
	d        *DB
	resource string
}

// NewStore returns the store for resource on d.
func NewStore[T generic.Record](d *DB, resource string) *Store[T] {
	return &Store[T]{d: d, resource: resource}
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()

	return s.load(ctx, s.d.db)
}

func (s *Store[T]) Find(ctx context.Context, pred func(T) bool) (T, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()

	var zero T
	recs, err := s.load(ctx, s.d.db)
	if err != nil {
		return zero, err
	}
	for _, r := range recs {
		if pred(r) {
			return r, nil
		}
	}
	return zero, generic.ErrNotFound
}

func (s *Store[T]) Create(ctx context.Context, build func(id int) (T, error)) (T, error) {
	var created T
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var nextID, nextPos int
		row := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(id), 0) + 1, COALESCE(MAX(position), 0) + 1 FROM records WHERE resource = ?`,
			s.resource)
		if err := row.Scan(&nextID, &nextPos); err != nil {
			return fmt.Errorf("failed to allocate id: %w", err)
		}

		rec, err := build(nextID)
		if err != nil {
			return err
		}
		if err := s.insert(ctx, tx, rec, nextPos); err != nil {
			return err
		}
		created = rec
		return nil
	})
	return created, err
}

func (s *Store[T]) Update(ctx context.Context, pred func(T) bool, apply func(T) (T, error)) (T, error) {
	var updated T
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		recs, err := s.load(ctx, tx)
		if err != nil {
			return err
		}
		for _, r := range recs {
			if !pred(r) {
				continue
			}
			next, err := apply(r)
			if err != nil {
				return err
			}
			body, err := json.Marshal(next)
			if err != nil {
				return fmt.Errorf("failed to encode %s record: %w", s.resource, err)
			}
			if _, err := tx.ExecContext(ctx,
				`UPDATE records SET id = ?, body = ? WHERE resource = ? AND id = ?`,
				next.RecordID(), string(body), s.resource, r.RecordID()); err != nil {
				return fmt.Errorf("failed to update %s record: %w", s.resource, err)
			}
			updated = next
			return nil
		}
		return generic.ErrNotFound
	})
	return updated, err
}

func (s *Store[T]) Delete(ctx context.Context, pred func(T) bool) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		recs, err := s.load(ctx, tx)
		if err != nil {
			return err
		}
		for _, r := range recs {
			if pred(r) {
				_, err := tx.ExecContext(ctx,
					`DELETE FROM records WHERE resource = ? AND id = ?`, s.resource, r.RecordID())
				if err != nil {
					return fmt.Errorf("failed to delete %s record: %w", s.resource, err)
				}
				return nil
			}
		}
		return generic.ErrNotFound
	})
}

// Reset replaces every row of this resource with recs, in order.
func (s *Store[T]) Reset(ctx context.Context, recs []T) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE resource = ?`, s.resource); err != nil {
			return fmt.Errorf("failed to clear %s: %w", s.resource, err)
		}
		for i, r := range recs {
			if err := s.insert(ctx, tx, r, i+1); err != nil {
				return err
			}
		}
		return nil
	})
}

// Count returns the number of stored rows; startup uses it to decide
// whether to seed.
func (s *Store[T]) Count(ctx context.Context) (int, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()

	var n int
	err := s.d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE resource = ?`, s.resource).Scan(&n)
	return n, err
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Store[T]) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	tx, err := s.d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store[T]) insert(ctx context.Context, q queryer, rec T, position int) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode %s record: %w", s.resource, err)
	}
	_, err = q.ExecContext(ctx,
		`INSERT INTO records (resource, id, position, body) VALUES (?, ?, ?, ?)`,
		s.resource, rec.RecordID(), position, string(body))
	if err != nil {
		return fmt.Errorf("failed to insert %s record: %w", s.resource, err)
	}
	return nil
}

func (s *Store[T]) load(ctx context.Context, q queryer) ([]T, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT body FROM records WHERE resource = ? ORDER BY position`, s.resource)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", s.resource, err)
	}
	defer rows.Close()

	recs := []T{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var rec T
		if err := json.Unmarshal([]byte(body), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode %s record: %w", s.resource, err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
