// Package sqlite provides a SQLite implementation of the DocumentStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/yasar2385/family-address-book/internal/domain/entities"
	"github.com/yasar2385/family-address-book/internal/domain/ports"
	"github.com/yasar2385/family-address-book/internal/infrastructure/config"
	"github.com/yasar2385/family-address-book/internal/infrastructure/docstore"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Store implements ports.DocumentStore and ports.Replacer using SQLite.
// Every collection lives in one documents table; insertion order is kept by seq.
type Store struct {
	db   *sql.DB
	path string
	log  *slog.Logger
}

// NewStore opens (creating if needed) the SQLite database at cfg.Path.
func NewStore(cfg config.SQLiteConfig, log *slog.Logger) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}
	if log == nil {
		log = slog.Default()
	}

	if cfg.Path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Each connection to :memory: is a separate database.
	if cfg.Path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	log.Debug("sqlite store opened", slog.String("path", cfg.Path))

	return &Store{
		db:   db,
		path: cfg.Path,
		log:  log,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		data TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE(collection, id)
	);
	CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection, seq);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// ListAll returns every record of a collection in insertion order.
func (s *Store) ListAll(ctx context.Context, collection string) ([]entities.Record, error) {
	query := `SELECT id, data FROM documents WHERE collection = ? ORDER BY seq`
	return s.queryDocuments(ctx, s.db, query, collection)
}

// Get returns a single record.
func (s *Store) Get(ctx context.Context, collection, id string) (entities.Record, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return docstore.Decode(id, []byte(data))
}

// Create stores a new record under a generated id.
func (s *Store) Create(ctx context.Context, collection string, data entities.Record) (string, error) {
	id := uuid.New().String()
	if err := s.insert(ctx, s.db, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

// Put stores a record under the given id. An existing record keeps its position.
func (s *Store) Put(ctx context.Context, collection, id string, data entities.Record) error {
	raw, err := docstore.Encode(data)
	if err != nil {
		return err
	}

	now := timeNow().UTC()
	query := `
		INSERT INTO documents (collection, id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, collection, id, string(raw), now, now); err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Update merges partial into an existing record.
func (s *Store) Update(ctx context.Context, collection, id string, partial entities.Record) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var data string
		err := tx.QueryRowContext(ctx,
			`SELECT data FROM documents WHERE collection = ? AND id = ?`,
			collection, id,
		).Scan(&data)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s/%s: %w", collection, id, ports.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("loading document: %w", err)
		}

		merged, err := docstore.Merge([]byte(data), partial)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE documents SET data = ?, updated_at = ? WHERE collection = ? AND id = ?`,
			string(merged), timeNow().UTC(), collection, id,
		)
		if err != nil {
			return fmt.Errorf("updating document: %w", err)
		}
		return nil
	})
}

// Delete removes a record.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ports.ErrNotFound)
	}
	return nil
}

// QueryWhere returns records whose top-level field equals value.
func (s *Store) QueryWhere(ctx context.Context, collection, field, value string) ([]entities.Record, error) {
	if err := docstore.CheckField(field); err != nil {
		return nil, err
	}
	query := `
		SELECT id, data FROM documents
		WHERE collection = ? AND json_extract(data, ?) = ?
		ORDER BY seq
	`
	return s.queryDocuments(ctx, s.db, query, collection, "$."+field, value)
}

// ReplaceWhere deletes the records matching every field of match and inserts
// data as a new record in one transaction.
func (s *Store) ReplaceWhere(ctx context.Context, collection string, match map[string]string, data entities.Record) (string, error) {
	keys, err := docstore.SortedKeys(match)
	if err != nil {
		return "", err
	}

	conds := make([]string, 0, len(keys)+1)
	args := make([]any, 0, 2*len(keys)+1)
	conds = append(conds, "collection = ?")
	args = append(args, collection)
	for _, k := range keys {
		conds = append(conds, "json_extract(data, ?) = ?")
		args = append(args, "$."+k, match[k])
	}

	id := uuid.New().String()
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE `+strings.Join(conds, " AND "), args...)
		if err != nil {
			return fmt.Errorf("deleting matching documents: %w", err)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			s.log.Debug("replaced documents",
				slog.String("collection", collection),
				slog.Int64("count", n),
			)
		}
		return s.insert(ctx, tx, collection, id, data)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) insert(ctx context.Context, db execer, collection, id string, data entities.Record) error {
	raw, err := docstore.Encode(data)
	if err != nil {
		return err
	}

	now := timeNow().UTC()
	_, err = db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		collection, id, string(raw), now, now,
	)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *Store) queryDocuments(ctx context.Context, db execer, query string, args ...any) ([]entities.Record, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	records := make([]entities.Record, 0, 16)
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		rec, err := docstore.Decode(id, []byte(data))
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
