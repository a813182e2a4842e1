package handlers

import (
	"context"
	"fmt"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
	"github.com/yasar2385/family-address-book/internal/domain/services"
)

// DirectoryHandler builds the derived views of the directory. Every call
// loads fresh data from the store; nothing derived is kept between calls.
type DirectoryHandler struct {
	members     *services.MemberService
	relations   *services.RelationService
	mapsBaseURL string
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(members *services.MemberService, relations *services.RelationService, mapsBaseURL string) *DirectoryHandler {
	return &DirectoryHandler{
		members:     members,
		relations:   relations,
		mapsBaseURL: mapsBaseURL,
	}
}

// TreeResult is the relation-edge family tree.
type TreeResult struct {
	Nodes map[string]*entities.TreeNode `json:"nodes"`
	Roots []string                      `json:"roots"`
}

// FilterResult contains the filtered members and the picker options.
type FilterResult struct {
	Members []entities.Member `json:"members"`
	Total   int               `json:"total"`
	Options services.Options  `json:"options"`
}

// ForestResult is the hierarchy view of the filtered members.
type ForestResult struct {
	Roots []NodeView `json:"roots"`
}

// HandleTree builds the relation-edge tree of all members.
func (h *DirectoryHandler) HandleTree(ctx context.Context) (*TreeResult, error) {
	members, err := h.members.List(ctx)
	if err != nil {
		return nil, err
	}
	relations, err := h.relations.List(ctx)
	if err != nil {
		return nil, err
	}

	nodes := services.BuildFamilyTree(members, relations)
	return &TreeResult{
		Nodes: nodes,
		Roots: services.TreeRoots(members, nodes),
	}, nil
}

// HandleFilter applies the criteria. Options are computed over all members.
func (h *DirectoryHandler) HandleFilter(ctx context.Context, c services.Criteria) (*FilterResult, error) {
	members, err := h.members.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := services.ApplyFilters(members, c)
	return &FilterResult{
		Members: filtered,
		Total:   len(members),
		Options: services.FilterOptions(members),
	}, nil
}

// HandleForest groups the filtered members into one embedded-children forest.
func (h *DirectoryHandler) HandleForest(ctx context.Context, c services.Criteria, expanded *ExpandedSet) (*ForestResult, error) {
	filtered, err := h.filtered(ctx, c)
	if err != nil {
		return nil, err
	}

	forest := services.BuildForest(filtered)
	return &ForestResult{Roots: BuildForestView(forest, expanded)}, nil
}

// HandleAreas groups the filtered members by area, one forest per area.
func (h *DirectoryHandler) HandleAreas(ctx context.Context, c services.Criteria, expanded *ExpandedSet) ([]AreaView, error) {
	filtered, err := h.filtered(ctx, c)
	if err != nil {
		return nil, err
	}

	areas := services.GroupByArea(filtered)
	views := make([]AreaView, 0, len(areas))
	for _, a := range areas {
		views = append(views, AreaView{
			Area:  a.Area,
			Roots: BuildForestView(a.Forest, expanded),
		})
	}
	return views, nil
}

// HandleMap returns map markers for the filtered members.
func (h *DirectoryHandler) HandleMap(ctx context.Context, c services.Criteria) ([]entities.Marker, error) {
	filtered, err := h.filtered(ctx, c)
	if err != nil {
		return nil, err
	}
	return services.MapMarkers(h.mapsBaseURL, filtered), nil
}

// HandleCoordinates extracts coordinates from a map URL. Returns nil if it has none.
func (h *DirectoryHandler) HandleCoordinates(url string) *entities.Coordinates {
	return services.ExtractCoordinates(url)
}

func (h *DirectoryHandler) filtered(ctx context.Context, c services.Criteria) ([]entities.Member, error) {
	members, err := h.members.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading members: %w", err)
	}
	return services.ApplyFilters(members, c), nil
}
