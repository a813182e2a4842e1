// Package mocks provides in-memory implementations of the domain ports.
package mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
	"github.com/yasar2385/family-address-book/internal/domain/ports"
)

// DocumentStore is an in-memory implementation of ports.DocumentStore and
// ports.Replacer. Records are round-tripped through JSON so callers see the
// same value shapes a persistent store would return.
type DocumentStore struct {
	mu          sync.Mutex
	collections map[string]*collection

	// Err, when set, is returned by every operation.
	Err error
	// Per-operation failures, checked after Err.
	CreateErr error
	UpdateErr error
	DeleteErr error
	QueryErr  error
	ListErr   error
}

type collection struct {
	order   []string
	records map[string][]byte
}

// NewDocumentStore creates an empty in-memory store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{collections: make(map[string]*collection)}
}

func (m *DocumentStore) coll(name string) *collection {
	c, ok := m.collections[name]
	if !ok {
		c = &collection{records: make(map[string][]byte)}
		m.collections[name] = c
	}
	return c
}

func (m *DocumentStore) fail(opErr error) error {
	if m.Err != nil {
		return m.Err
	}
	return opErr
}

// ListAll returns every record of a collection in insertion order.
func (m *DocumentStore) ListAll(_ context.Context, name string) ([]entities.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(m.ListErr); err != nil {
		return nil, err
	}
	c := m.coll(name)
	out := make([]entities.Record, 0, len(c.order))
	for _, id := range c.order {
		rec, err := decode(id, c.records[id])
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Get returns a single record.
func (m *DocumentStore) Get(_ context.Context, name, id string) (entities.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(nil); err != nil {
		return nil, err
	}
	data, ok := m.coll(name).records[id]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", name, id, ports.ErrNotFound)
	}
	return decode(id, data)
}

// Create stores a new record under a generated id.
func (m *DocumentStore) Create(_ context.Context, name string, data entities.Record) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(m.CreateErr); err != nil {
		return "", err
	}
	id := uuid.New().String()
	if err := m.insert(m.coll(name), id, data); err != nil {
		return "", err
	}
	return id, nil
}

// Put stores a record under the given id, replacing any existing one.
func (m *DocumentStore) Put(_ context.Context, name, id string, data entities.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(m.CreateErr); err != nil {
		return err
	}
	return m.insert(m.coll(name), id, data)
}

// Update merges partial into an existing record.
func (m *DocumentStore) Update(_ context.Context, name, id string, partial entities.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(m.UpdateErr); err != nil {
		return err
	}
	c := m.coll(name)
	data, ok := c.records[id]
	if !ok {
		return fmt.Errorf("%s/%s: %w", name, id, ports.ErrNotFound)
	}
	rec, err := decode(id, data)
	if err != nil {
		return err
	}
	for k, v := range partial {
		rec[k] = v
	}
	return m.insert(c, id, rec)
}

// Delete removes a record.
func (m *DocumentStore) Delete(_ context.Context, name, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(m.DeleteErr); err != nil {
		return err
	}
	c := m.coll(name)
	if _, ok := c.records[id]; !ok {
		return fmt.Errorf("%s/%s: %w", name, id, ports.ErrNotFound)
	}
	c.remove(id)
	return nil
}

// QueryWhere returns records whose string field equals value.
func (m *DocumentStore) QueryWhere(_ context.Context, name, field, value string) ([]entities.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(m.QueryErr); err != nil {
		return nil, err
	}
	c := m.coll(name)
	var out []entities.Record
	for _, id := range c.order {
		rec, err := decode(id, c.records[id])
		if err != nil {
			return nil, err
		}
		if s, ok := rec[field].(string); ok && s == value {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ReplaceWhere deletes matching records and inserts data under one lock.
func (m *DocumentStore) ReplaceWhere(_ context.Context, name string, match map[string]string, data entities.Record) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(m.CreateErr); err != nil {
		return "", err
	}
	c := m.coll(name)
	for _, id := range append([]string(nil), c.order...) {
		rec, err := decode(id, c.records[id])
		if err != nil {
			return "", err
		}
		if matches(rec, match) {
			c.remove(id)
		}
	}
	id := uuid.New().String()
	if err := m.insert(c, id, data); err != nil {
		return "", err
	}
	return id, nil
}

// Count returns the number of records in a collection.
func (m *DocumentStore) Count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.coll(name).order)
}

// Close is a no-op.
func (m *DocumentStore) Close() error {
	return nil
}

func (m *DocumentStore) insert(c *collection, id string, data entities.Record) error {
	clean := make(entities.Record, len(data))
	for k, v := range data {
		if k != "id" {
			clean[k] = v
		}
	}
	raw, err := json.Marshal(clean)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if _, exists := c.records[id]; !exists {
		c.order = append(c.order, id)
	}
	c.records[id] = raw
	return nil
}

func (c *collection) remove(id string) {
	delete(c.records, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func decode(id string, raw []byte) (entities.Record, error) {
	rec := entities.Record{}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decoding record %s: %w", id, err)
	}
	rec["id"] = id
	return rec, nil
}

func matches(rec entities.Record, match map[string]string) bool {
	for field, want := range match {
		if s, ok := rec[field].(string); !ok || s != want {
			return false
		}
	}
	return true
}
