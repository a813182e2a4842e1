package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
	"github.com/yasar2385/family-address-book/internal/domain/ports"
)

// RelationService manages relation edges between members.
type RelationService struct {
	store ports.DocumentStore
	log   *slog.Logger
}

// NewRelationService creates a new RelationService.
func NewRelationService(store ports.DocumentStore, log *slog.Logger) *RelationService {
	if log == nil {
		log = slog.Default()
	}
	return &RelationService{
		store: store,
		log:   log,
	}
}

// Link creates the edge member1 -[relType]-> member2, replacing any edge
// already stored for the same ordered pair.
//
// Parental types also add member2 to member1's embedded children list when it
// is missing. Unlinking never removes it again.
func (s *RelationService) Link(ctx context.Context, member1ID, member2ID string, relType entities.RelationType) (*entities.Relation, error) {
	if member1ID == "" || member2ID == "" {
		return nil, invalid("member", "", "both members are required")
	}
	if member1ID == member2ID {
		return nil, invalid("member2Id", member2ID, "cannot link a member to itself")
	}
	if !relType.IsValid() {
		return nil, invalid("relationType", string(relType), "invalid relation type %q", relType)
	}

	rel := &entities.Relation{
		Member1ID:    member1ID,
		Member2ID:    member2ID,
		RelationType: relType,
	}

	id, err := s.replaceEdge(ctx, rel)
	if err != nil {
		return nil, err
	}
	rel.ID = id

	if relType.IsParental() {
		if err := s.appendChild(ctx, member1ID, member2ID); err != nil {
			return nil, err
		}
	}
	return rel, nil
}

// replaceEdge stores rel as the only edge for its ordered pair.
func (s *RelationService) replaceEdge(ctx context.Context, rel *entities.Relation) (string, error) {
	if r, ok := s.store.(ports.Replacer); ok {
		match := map[string]string{
			"member1Id": rel.Member1ID,
			"member2Id": rel.Member2ID,
		}
		id, err := r.ReplaceWhere(ctx, entities.CollectionRelations, match, rel.ToRecord())
		if err != nil {
			return "", fmt.Errorf("replacing relation: %w", err)
		}
		return id, nil
	}

	// Not atomic: a failure after the deletes leaves the pair unlinked until retried.
	existing, err := s.edgesBetween(ctx, rel.Member1ID, rel.Member2ID)
	if err != nil {
		return "", err
	}
	for i := range existing {
		err := s.store.Delete(ctx, entities.CollectionRelations, existing[i].ID)
		if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return "", fmt.Errorf("unlinking existing relation: %w", err)
		}
		s.log.Debug("unlinked existing relation", slog.String("relation_id", existing[i].ID))
	}

	id, err := s.store.Create(ctx, entities.CollectionRelations, rel.ToRecord())
	if err != nil {
		return "", fmt.Errorf("creating relation: %w", err)
	}
	return id, nil
}

// appendChild adds childID to the parent's children list. A missing parent
// record is tolerated.
func (s *RelationService) appendChild(ctx context.Context, parentID, childID string) error {
	rec, err := s.store.Get(ctx, entities.CollectionMembers, parentID)
	if errors.Is(err, ports.ErrNotFound) {
		s.log.Warn("linked member not found, children list not updated", slog.String("member_id", parentID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading parent member: %w", err)
	}

	parent := entities.MemberFromRecord(rec)
	if slices.Contains(parent.Children, childID) {
		return nil
	}
	children := append(parent.Children, childID)
	if err := s.store.Update(ctx, entities.CollectionMembers, parentID, entities.Record{"children": children}); err != nil {
		return fmt.Errorf("updating children of %s: %w", parentID, err)
	}
	return nil
}

// Unlink removes a relation edge by id.
func (s *RelationService) Unlink(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, entities.CollectionRelations, id); err != nil {
		return fmt.Errorf("deleting relation: %w", err)
	}
	return nil
}

// List returns all relation edges in store order.
func (s *RelationService) List(ctx context.Context) ([]entities.Relation, error) {
	records, err := s.store.ListAll(ctx, entities.CollectionRelations)
	if err != nil {
		return nil, fmt.Errorf("listing relations: %w", err)
	}
	return entities.RelationsFromRecords(records), nil
}

// Between finds the edge stored for the ordered pair (member1, member2).
// Returns nil if the pair is not linked.
func (s *RelationService) Between(ctx context.Context, member1ID, member2ID string) (*entities.Relation, error) {
	edges, err := s.edgesBetween(ctx, member1ID, member2ID)
	if err != nil {
		return nil, err
	}
	if len(edges) == 0 {
		return nil, nil
	}
	return &edges[0], nil
}

func (s *RelationService) edgesBetween(ctx context.Context, member1ID, member2ID string) ([]entities.Relation, error) {
	records, err := s.store.QueryWhere(ctx, entities.CollectionRelations, "member1Id", member1ID)
	if err != nil {
		return nil, fmt.Errorf("checking existing relation: %w", err)
	}
	var edges []entities.Relation
	for _, rel := range entities.RelationsFromRecords(records) {
		if rel.Member2ID == member2ID {
			edges = append(edges, rel)
		}
	}
	return edges, nil
}
