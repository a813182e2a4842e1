package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
	"github.com/yasar2385/family-address-book/internal/domain/mocks"
	"github.com/yasar2385/family-address-book/internal/domain/ports"
)

func setupMemberTest(t *testing.T) (*MemberService, *mocks.DocumentStore) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { timeNow = orig })

	store := mocks.NewDocumentStore()
	return NewMemberService(store, ""), store
}

func TestMemberService_Create(t *testing.T) {
	t.Run("normalizes and stores", func(t *testing.T) {
		svc, store := setupMemberTest(t)
		ctx := context.Background()

		m, err := svc.Create(ctx, entities.Member{
			Name:        "  Ravi  ",
			Latitude:    "13.08",
			Longitude:   "80.27",
			IsAlive:     true,
			DateOfDeath: "2020-01-01",
			Children:    []string{"k1", "", "k1"},
		})
		require.NoError(t, err)

		assert.NotEmpty(t, m.ID)
		assert.Equal(t, "Ravi", m.Name)
		assert.Equal(t, "https://www.google.com/maps/dir/?api=1&destination=13.08,80.27", m.GoogleMapURL)
		assert.Empty(t, m.DateOfDeath)
		assert.Equal(t, []string{"k1"}, m.Children)
		assert.Equal(t, "2024-05-01T10:00:00Z", m.CreatedAt)
		assert.Equal(t, 1, store.Count(entities.CollectionMembers))

		stored, err := svc.Get(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, *m, *stored)
	})

	t.Run("map url without coordinates is dropped", func(t *testing.T) {
		svc, _ := setupMemberTest(t)

		m, err := svc.Create(context.Background(), entities.Member{
			Name:         "Anu",
			GoogleMapURL: "https://maps.app.goo.gl/abc",
			IsAlive:      true,
		})
		require.NoError(t, err)
		assert.Empty(t, m.GoogleMapURL)
	})

	t.Run("keeps death date when not alive", func(t *testing.T) {
		svc, _ := setupMemberTest(t)

		m, err := svc.Create(context.Background(), entities.Member{Name: "Elder", DateOfDeath: "2001-02-03"})
		require.NoError(t, err)
		assert.Equal(t, "2001-02-03", m.DateOfDeath)
	})

	t.Run("validation errors", func(t *testing.T) {
		tests := []struct {
			name   string
			member entities.Member
			field  string
		}{
			{"missing name", entities.Member{Name: "   "}, "name"},
			{"bad birth date", entities.Member{Name: "A", DateOfBirth: "01/02/1990"}, "dateOfBirth"},
			{"bad marriage date", entities.Member{Name: "A", DateOfMarriage: "1990-13-01"}, "dateOfMarriage"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, store := setupMemberTest(t)

				_, err := svc.Create(context.Background(), tt.member)
				require.ErrorIs(t, err, ErrValidation)
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.field, ve.Field)
				assert.Zero(t, store.Count(entities.CollectionMembers))
			})
		}
	})

	t.Run("store error", func(t *testing.T) {
		svc, store := setupMemberTest(t)
		store.CreateErr = errors.New("disk full")

		_, err := svc.Create(context.Background(), entities.Member{Name: "A"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "creating member")
	})
}

func TestMemberService_Update(t *testing.T) {
	svc, _ := setupMemberTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, entities.Member{Name: "Ravi", City: "Chennai", IsAlive: true})
	require.NoError(t, err)

	edit := *created
	edit.City = "Madurai"
	edit.Latitude = "9.92"
	edit.Longitude = "78.12"
	edit.IsAlive = false
	edit.DateOfDeath = "2023-07-08"

	updated, err := svc.Update(ctx, edit)
	require.NoError(t, err)
	assert.Equal(t, "Madurai", updated.City)
	assert.Equal(t, "https://www.google.com/maps/dir/?api=1&destination=9.92,78.12", updated.GoogleMapURL)
	assert.False(t, updated.IsAlive)
	assert.Equal(t, "2023-07-08", updated.DateOfDeath)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	t.Run("missing id", func(t *testing.T) {
		_, err := svc.Update(ctx, entities.Member{Name: "X"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown member", func(t *testing.T) {
		_, err := svc.Update(ctx, entities.Member{ID: "nope", Name: "X"})
		assert.ErrorIs(t, err, ports.ErrNotFound)
	})
}

func TestMemberService_EditLocation(t *testing.T) {
	svc, _ := setupMemberTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, entities.Member{Name: "Ravi", IsAlive: true})
	require.NoError(t, err)

	url := "https://www.google.com/maps/place/Home/@13.0827,80.2707,17z"
	m, err := svc.EditLocation(ctx, created.ID, entities.LocationEdit{GoogleMapURL: &url})
	require.NoError(t, err)
	assert.Equal(t, "13.0827", m.Latitude)
	assert.Equal(t, "80.2707", m.Longitude)
	assert.Equal(t, url, m.GoogleMapURL)

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Location(), stored.Location())
	assert.Equal(t, "Ravi", stored.Name)

	lat := "12.5"
	m, err = svc.EditLocation(ctx, created.ID, entities.LocationEdit{Latitude: &lat})
	require.NoError(t, err)
	assert.Equal(t, "https://www.google.com/maps/dir/?api=1&destination=12.5,80.2707", m.GoogleMapURL)

	_, err = svc.EditLocation(ctx, "missing", entities.LocationEdit{Latitude: &lat})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestMemberService_Delete(t *testing.T) {
	svc, store := setupMemberTest(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, entities.Member{Name: "A"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, entities.Member{Name: "B"})
	require.NoError(t, err)
	c, err := svc.Create(ctx, entities.Member{Name: "C"})
	require.NoError(t, err)

	rels := NewRelationService(store, nil)
	_, err = rels.Link(ctx, a.ID, b.ID, entities.RelationFather)
	require.NoError(t, err)
	_, err = rels.Link(ctx, c.ID, a.ID, entities.RelationBrother)
	require.NoError(t, err)
	_, err = rels.Link(ctx, b.ID, c.ID, entities.RelationUncle)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))

	remaining, err := rels.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, b.ID, remaining[0].Member1ID)
	assert.Equal(t, 2, store.Count(entities.CollectionMembers))

	assert.ErrorIs(t, svc.Delete(ctx, a.ID), ports.ErrNotFound)
}

func TestMemberService_Delete_QueryError(t *testing.T) {
	svc, store := setupMemberTest(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, entities.Member{Name: "A"})
	require.NoError(t, err)
	store.QueryErr = errors.New("connection reset")

	err = svc.Delete(ctx, m.ID)
	require.Error(t, err)
	assert.Equal(t, 1, store.Count(entities.CollectionMembers))
}

func TestMemberService_SeedDefault(t *testing.T) {
	svc, store := setupMemberTest(t)
	ctx := context.Background()

	added, err := svc.SeedDefault(ctx)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.SeedDefault(ctx)
	require.NoError(t, err)
	assert.False(t, added)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Default Member", list[0].Name)
	assert.True(t, list[0].IsAlive)
	assert.Equal(t, 1, store.Count(entities.CollectionMembers))
}
