// Package ports defines interfaces for external service communication.
package ports

import (
	"context"
	"errors"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
)

// ErrNotFound is returned when a record id does not exist in a collection.
var ErrNotFound = errors.New("record not found")

// DocumentStore is the persistence collaborator: named collections of
// JSON-compatible records keyed by a store-assigned id.
type DocumentStore interface {
	// ListAll returns every record of a collection in insertion order.
	ListAll(ctx context.Context, collection string) ([]entities.Record, error)

	// Get returns a single record, or ErrNotFound.
	Get(ctx context.Context, collection, id string) (entities.Record, error)

	// Create stores a new record and returns its generated id.
	// Any "id" key in data is ignored.
	Create(ctx context.Context, collection string, data entities.Record) (string, error)

	// Put stores a record under a caller-chosen id, replacing any existing one.
	Put(ctx context.Context, collection, id string, data entities.Record) error

	// Update merges the top-level keys of partial into an existing record.
	Update(ctx context.Context, collection, id string, partial entities.Record) error

	// Delete removes a record, or returns ErrNotFound.
	Delete(ctx context.Context, collection, id string) error

	// QueryWhere returns the records whose string field equals value.
	QueryWhere(ctx context.Context, collection, field, value string) ([]entities.Record, error)

	// Close releases the underlying connection.
	Close() error
}

// Replacer is implemented by stores that can replace records atomically.
// Callers fall back to a best-effort delete-then-create when a store lacks it.
type Replacer interface {
	// ReplaceWhere deletes every record whose fields equal all of match and
	// inserts data as a new record, in one transaction. It returns the new id.
	ReplaceWhere(ctx context.Context, collection string, match map[string]string, data entities.Record) (string, error)
}
