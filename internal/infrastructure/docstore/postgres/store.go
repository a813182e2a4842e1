// Package postgres provides a PostgreSQL implementation of the DocumentStore
// interface, keeping each record as a jsonb document.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
	"github.com/yasar2385/family-address-book/internal/domain/ports"
	"github.com/yasar2385/family-address-book/internal/infrastructure/config"
	"github.com/yasar2385/family-address-book/internal/infrastructure/docstore"
)

// DefaultTable is used when the config names no table.
const DefaultTable = "documents"

// Store implements ports.DocumentStore and ports.Replacer using PostgreSQL.
type Store struct {
	db    *sql.DB
	table string // quoted identifier
	name  string
	log   *slog.Logger
}

// NewStore connects to the database described by cfg.DSN.
func NewStore(ctx context.Context, cfg config.PostgresConfig, log *slog.Logger) (*Store, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres dsn is required")
	}
	if log == nil {
		log = slog.Default()
	}
	name := cfg.Table
	if name == "" {
		name = DefaultTable
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening postgres database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	log.Debug("postgres store opened", slog.String("table", name))

	return &Store{
		db:    db,
		table: pq.QuoteIdentifier(name),
		name:  name,
		log:   log,
	}, nil
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the documents table if it doesn't exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %[1]s (
		seq BIGSERIAL PRIMARY KEY,
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		data JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (collection, id)
	);
	CREATE INDEX IF NOT EXISTS %[2]s ON %[1]s (collection, seq);
	`, s.table, pq.QuoteIdentifier(s.name+"_collection_seq_idx"))

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// ListAll returns every record of a collection in insertion order.
func (s *Store) ListAll(ctx context.Context, collection string) ([]entities.Record, error) {
	query := `SELECT id, data FROM ` + s.table + ` WHERE collection = $1 ORDER BY seq`
	return s.queryDocuments(ctx, query, collection)
}

// Get returns a single record.
func (s *Store) Get(ctx context.Context, collection, id string) (entities.Record, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM `+s.table+` WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return docstore.Decode(id, data)
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
	query := `
		INSERT INTO ` + s.table + ` (collection, id, data)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = now()
	`
	if _, err := s.db.ExecContext(ctx, query, collection, id, string(raw)); err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Update merges the top-level keys of partial into an existing record.
func (s *Store) Update(ctx context.Context, collection, id string, partial entities.Record) error {
	raw, err := docstore.Encode(partial)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE `+s.table+` SET data = data || $3::jsonb, updated_at = now() WHERE collection = $1 AND id = $2`,
		collection, id, string(raw),
	)
	if err != nil {
		return fmt.Errorf("updating document: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ports.ErrNotFound)
	}
	return nil
}

// Delete removes a record.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM `+s.table+` WHERE collection = $1 AND id = $2`,
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
		SELECT id, data FROM ` + s.table + `
		WHERE collection = $1 AND data->>$2 = $3
		ORDER BY seq
	`
	return s.queryDocuments(ctx, query, collection, field, value)
}

// ReplaceWhere deletes the records containing every field of match and
// inserts data as a new record in one transaction.
func (s *Store) ReplaceWhere(ctx context.Context, collection string, match map[string]string, data entities.Record) (string, error) {
	if _, err := docstore.SortedKeys(match); err != nil {
		return "", err
	}
	filter, err := json.Marshal(match)
	if err != nil {
		return "", fmt.Errorf("encoding match: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM `+s.table+` WHERE collection = $1 AND data @> $2::jsonb`,
		collection, string(filter),
	)
	if err != nil {
		return "", fmt.Errorf("deleting matching documents: %w", err)
	}
	if n, _ := result.RowsAffected(); n > 0 {
		s.log.Debug("replaced documents",
			slog.String("collection", collection),
			slog.Int64("count", n),
		)
	}

	id := uuid.New().String()
	if err := s.insert(ctx, tx, collection, id, data); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing transaction: %w", err)
	}
	return id, nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) insert(ctx context.Context, db execer, collection, id string, data entities.Record) error {
	raw, err := docstore.Encode(data)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO `+s.table+` (collection, id, data) VALUES ($1, $2, $3::jsonb)`,
		collection, id, string(raw),
	)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

func (s *Store) queryDocuments(ctx context.Context, query string, args ...any) ([]entities.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	records := make([]entities.Record, 0, 16)
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		rec, err := docstore.Decode(id, data)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
