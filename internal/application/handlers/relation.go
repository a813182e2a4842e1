package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
	"github.com/yasar2385/family-address-book/internal/domain/services"
)

// RelationInfo is a relation edge with the names of both members.
type RelationInfo struct {
	entities.Relation
	Label       string `json:"label"`
	Member1Name string `json:"member1Name"`
	Member2Name string `json:"member2Name"`
}

// RelationHandler handles relation commands.
type RelationHandler struct {
	members   *services.MemberService
	relations *services.RelationService
}

// NewRelationHandler creates a new RelationHandler.
func NewRelationHandler(members *services.MemberService, relations *services.RelationService) *RelationHandler {
	return &RelationHandler{
		members:   members,
		relations: relations,
	}
}

// HandleLink records that member1 is relType of member2.
// The relation type is matched case-insensitively.
func (h *RelationHandler) HandleLink(ctx context.Context, member1ID, relType, member2ID string) (*entities.Relation, error) {
	t, err := ParseRelationType(relType)
	if err != nil {
		return nil, err
	}
	return h.relations.Link(ctx, member1ID, member2ID, t)
}

// HandleUnlink removes a relation edge.
func (h *RelationHandler) HandleUnlink(ctx context.Context, id string) error {
	return h.relations.Unlink(ctx, id)
}

// HandleList returns relation edges with member names. A non-empty memberID
// keeps only the edges touching that member.
func (h *RelationHandler) HandleList(ctx context.Context, memberID string) ([]RelationInfo, error) {
	relations, err := h.relations.List(ctx)
	if err != nil {
		return nil, err
	}
	members, err := h.members.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}

	infos := make([]RelationInfo, 0, len(relations))
	for _, r := range relations {
		if memberID != "" && r.Member1ID != memberID && r.Member2ID != memberID {
			continue
		}
		infos = append(infos, RelationInfo{
			Relation:    r,
			Label:       r.RelationType.Label(),
			Member1Name: names[r.Member1ID],
			Member2Name: names[r.Member2ID],
		})
	}
	return infos, nil
}

// HandleBetween returns the edge from member1 to member2, or nil.
func (h *RelationHandler) HandleBetween(ctx context.Context, member1ID, member2ID string) (*entities.Relation, error) {
	return h.relations.Between(ctx, member1ID, member2ID)
}

// ParseRelationType resolves a relation type name, ignoring case.
func ParseRelationType(s string) (entities.RelationType, error) {
	for _, t := range entities.RelationTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}

	valid := make([]string, len(entities.RelationTypes))
	for i, t := range entities.RelationTypes {
		valid[i] = string(t)
	}
	return "", fmt.Errorf("%w: unknown relation type %q (valid: %s)",
		services.ErrValidation, s, strings.Join(valid, ", "))
}
