package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
	"github.com/yasar2385/family-address-book/internal/domain/mocks"
	"github.com/yasar2385/family-address-book/internal/domain/services"
	"github.com/yasar2385/family-address-book/internal/infrastructure/logging"
)

type fixture struct {
	store     *mocks.DocumentStore
	members   *services.MemberService
	relations *services.RelationService
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	store := mocks.NewDocumentStore()
	return &fixture{
		store:     store,
		members:   services.NewMemberService(store, ""),
		relations: services.NewRelationService(store, logging.Discard()),
	}
}

func (f *fixture) addMember(t *testing.T, m entities.Member) string {
	t.Helper()
	m.IsAlive = true
	created, err := f.members.Create(t.Context(), m)
	require.NoError(t, err)
	return created.ID
}
