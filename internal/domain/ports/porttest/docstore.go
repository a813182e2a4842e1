// Package porttest provides conformance tests for ports implementations.
package porttest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
	"github.com/yasar2385/family-address-book/internal/domain/ports"
)

// TestDocumentStore runs the DocumentStore contract against stores returned by
// newStore. Each subtest gets a fresh, empty store. When the store implements
// ports.Replacer, that contract is checked too.
func TestDocumentStore(t *testing.T, newStore func(t *testing.T) ports.DocumentStore) {
	t.Helper()

	t.Run("create and list in insertion order", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		var ids []string
		for _, name := range []string{"Ravi", "Anu", "Kavin"} {
			id, err := store.Create(ctx, entities.CollectionMembers, entities.Record{"id": "ignored", "name": name})
			require.NoError(t, err)
			require.NotEmpty(t, id)
			assert.NotEqual(t, "ignored", id)
			ids = append(ids, id)
		}

		records, err := store.ListAll(ctx, entities.CollectionMembers)
		require.NoError(t, err)
		require.Len(t, records, 3)
		for i, rec := range records {
			assert.Equal(t, ids[i], rec.RecordID())
		}
		assert.Equal(t, "Anu", records[1]["name"])

		others, err := store.ListAll(ctx, entities.CollectionRelations)
		require.NoError(t, err)
		assert.Empty(t, others)
	})

	t.Run("get round trips values", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		id, err := store.Create(ctx, entities.CollectionMembers, entities.Record{
			"name":     "Ravi",
			"isAlive":  false,
			"children": []string{"a", "b"},
		})
		require.NoError(t, err)

		rec, err := store.Get(ctx, entities.CollectionMembers, id)
		require.NoError(t, err)
		m := entities.MemberFromRecord(rec)
		assert.Equal(t, id, m.ID)
		assert.Equal(t, "Ravi", m.Name)
		assert.False(t, m.IsAlive)
		assert.Equal(t, []string{"a", "b"}, m.Children)

		_, err = store.Get(ctx, entities.CollectionMembers, "missing")
		assert.ErrorIs(t, err, ports.ErrNotFound)
		_, err = store.Get(ctx, entities.CollectionRelations, id)
		assert.ErrorIs(t, err, ports.ErrNotFound)
	})

	t.Run("put inserts and replaces in place", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.Put(ctx, entities.CollectionMembers, "m1", entities.Record{"name": "First", "city": "Chennai"}))
		_, err := store.Create(ctx, entities.CollectionMembers, entities.Record{"name": "Second"})
		require.NoError(t, err)
		require.NoError(t, store.Put(ctx, entities.CollectionMembers, "m1", entities.Record{"name": "Renamed"}))

		records, err := store.ListAll(ctx, entities.CollectionMembers)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "m1", records[0].RecordID())
		assert.Equal(t, "Renamed", records[0]["name"])
		assert.NotContains(t, records[0], "city")
	})

	t.Run("update merges top-level keys", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		id, err := store.Create(ctx, entities.CollectionMembers, entities.Record{"name": "Ravi", "city": "Chennai"})
		require.NoError(t, err)

		require.NoError(t, store.Update(ctx, entities.CollectionMembers, id, entities.Record{
			"city":     "Madurai",
			"children": []string{"k"},
		}))

		rec, err := store.Get(ctx, entities.CollectionMembers, id)
		require.NoError(t, err)
		assert.Equal(t, "Ravi", rec["name"])
		assert.Equal(t, "Madurai", rec["city"])
		assert.Equal(t, []any{"k"}, rec["children"])

		err = store.Update(ctx, entities.CollectionMembers, "missing", entities.Record{"name": "x"})
		assert.ErrorIs(t, err, ports.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		id, err := store.Create(ctx, entities.CollectionMembers, entities.Record{"name": "Ravi"})
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, entities.CollectionMembers, id))
		assert.ErrorIs(t, store.Delete(ctx, entities.CollectionMembers, id), ports.ErrNotFound)

		records, err := store.ListAll(ctx, entities.CollectionMembers)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("query where matches string fields", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		edges := []entities.Relation{
			{Member1ID: "a", Member2ID: "b", RelationType: entities.RelationFather},
			{Member1ID: "a", Member2ID: "c", RelationType: entities.RelationFather},
			{Member1ID: "b", Member2ID: "a", RelationType: entities.RelationSon},
		}
		for i := range edges {
			_, err := store.Create(ctx, entities.CollectionRelations, edges[i].ToRecord())
			require.NoError(t, err)
		}

		found, err := store.QueryWhere(ctx, entities.CollectionRelations, "member1Id", "a")
		require.NoError(t, err)
		rels := entities.RelationsFromRecords(found)
		require.Len(t, rels, 2)
		assert.Equal(t, "b", rels[0].Member2ID)
		assert.Equal(t, "c", rels[1].Member2ID)

		none, err := store.QueryWhere(ctx, entities.CollectionRelations, "member1Id", "z")
		require.NoError(t, err)
		assert.Empty(t, none)

		wrongCollection, err := store.QueryWhere(ctx, entities.CollectionMembers, "member1Id", "a")
		require.NoError(t, err)
		assert.Empty(t, wrongCollection)
	})

	t.Run("replace where keeps one record per match", func(t *testing.T) {
		store := newStore(t)
		r, ok := store.(ports.Replacer)
		if !ok {
			t.Skip("store does not implement ports.Replacer")
		}
		ctx := context.Background()

		_, err := store.Create(ctx, entities.CollectionRelations, entities.Record{"member1Id": "a", "member2Id": "b", "relationType": "Brother"})
		require.NoError(t, err)
		keep, err := store.Create(ctx, entities.CollectionRelations, entities.Record{"member1Id": "b", "member2Id": "a", "relationType": "Sister"})
		require.NoError(t, err)

		match := map[string]string{"member1Id": "a", "member2Id": "b"}
		id, err := r.ReplaceWhere(ctx, entities.CollectionRelations, match, entities.Record{"member1Id": "a", "member2Id": "b", "relationType": "Uncle"})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		records, err := store.ListAll(ctx, entities.CollectionRelations)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, keep, records[0].RecordID())
		assert.Equal(t, id, records[1].RecordID())
		assert.Equal(t, "Uncle", records[1]["relationType"])

		// Without an existing match it behaves like Create.
		id2, err := r.ReplaceWhere(ctx, entities.CollectionRelations, map[string]string{"member1Id": "x", "member2Id": "y"}, entities.Record{"member1Id": "x", "member2Id": "y"})
		require.NoError(t, err)
		assert.NotEqual(t, id, id2)

		records, err = store.ListAll(ctx, entities.CollectionRelations)
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})
}
