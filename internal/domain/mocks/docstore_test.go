package mocks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
	"github.com/yasar2385/family-address-book/internal/domain/ports"
	"github.com/yasar2385/family-address-book/internal/domain/ports/porttest"
)

func TestDocumentStore_Contract(t *testing.T) {
	porttest.TestDocumentStore(t, func(_ *testing.T) ports.DocumentStore {
		return NewDocumentStore()
	})
}

func TestDocumentStore_InjectedErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	store := NewDocumentStore()
	store.ListErr = boom
	_, err := store.ListAll(ctx, entities.CollectionMembers)
	assert.ErrorIs(t, err, boom)

	store = NewDocumentStore()
	store.Err = boom
	_, err = store.Get(ctx, entities.CollectionMembers, "x")
	assert.ErrorIs(t, err, boom)
	_, err = store.Create(ctx, entities.CollectionMembers, entities.Record{})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, store.Count(entities.CollectionMembers))
}
