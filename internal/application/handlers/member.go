package handlers

import (
	"context"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
	"github.com/yasar2385/family-address-book/internal/domain/services"
)

// MemberPatch lists the member fields changed by an edit. Nil means unchanged.
type MemberPatch struct {
	Name           *string   `json:"name,omitempty"`
	SpouseName     *string   `json:"spouseName,omitempty"`
	ContactNumber  *string   `json:"contactNumber,omitempty"`
	State          *string   `json:"state,omitempty"`
	District       *string   `json:"district,omitempty"`
	City           *string   `json:"city,omitempty"`
	Latitude       *string   `json:"latitude,omitempty"`
	Longitude      *string   `json:"longitude,omitempty"`
	GoogleMapURL   *string   `json:"googleMapUrl,omitempty"`
	DateOfBirth    *string   `json:"dateOfBirth,omitempty"`
	DateOfMarriage *string   `json:"dateOfMarriage,omitempty"`
	IsAlive        *bool     `json:"isAlive,omitempty"`
	DateOfDeath    *string   `json:"dateOfDeath,omitempty"`
	Children       *[]string `json:"children,omitempty"`
}

// MemberHandler handles member commands.
type MemberHandler struct {
	members     *services.MemberService
	mapsBaseURL string
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(members *services.MemberService, mapsBaseURL string) *MemberHandler {
	return &MemberHandler{
		members:     members,
		mapsBaseURL: mapsBaseURL,
	}
}

// HandleList returns all members.
func (h *MemberHandler) HandleList(ctx context.Context) ([]entities.Member, error) {
	return h.members.List(ctx)
}

// HandleGet returns one member.
func (h *MemberHandler) HandleGet(ctx context.Context, id string) (*entities.Member, error) {
	return h.members.Get(ctx, id)
}

// HandleCreate adds a member. Coordinates are filled from the map URL
// when the member has a URL but no coordinates.
func (h *MemberHandler) HandleCreate(ctx context.Context, m entities.Member) (*entities.Member, error) {
	if m.Latitude == "" && m.Longitude == "" && m.GoogleMapURL != "" {
		url := m.GoogleMapURL
		m.SetLocation(services.ApplyLocationEdit(h.mapsBaseURL, m.Location(), entities.LocationEdit{GoogleMapURL: &url}))
	}
	return h.members.Create(ctx, m)
}

// HandleUpdate applies a patch to a stored member and saves it.
func (h *MemberHandler) HandleUpdate(ctx context.Context, id string, patch MemberPatch) (*entities.Member, error) {
	m, err := h.members.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	setString(&m.Name, patch.Name)
	setString(&m.SpouseName, patch.SpouseName)
	setString(&m.ContactNumber, patch.ContactNumber)
	setString(&m.State, patch.State)
	setString(&m.District, patch.District)
	setString(&m.City, patch.City)
	setString(&m.DateOfBirth, patch.DateOfBirth)
	setString(&m.DateOfMarriage, patch.DateOfMarriage)
	setString(&m.DateOfDeath, patch.DateOfDeath)
	if patch.IsAlive != nil {
		m.IsAlive = *patch.IsAlive
	}
	if patch.Children != nil {
		m.Children = *patch.Children
	}

	edit := entities.LocationEdit{
		Latitude:     patch.Latitude,
		Longitude:    patch.Longitude,
		GoogleMapURL: patch.GoogleMapURL,
	}
	m.SetLocation(services.ApplyLocationEdit(h.mapsBaseURL, m.Location(), edit))

	return h.members.Update(ctx, *m)
}

// HandleEditLocation changes only the location fields of a member.
func (h *MemberHandler) HandleEditLocation(ctx context.Context, id string, edit entities.LocationEdit) (*entities.Member, error) {
	return h.members.EditLocation(ctx, id, edit)
}

// HandleDelete removes a member and its relation edges.
func (h *MemberHandler) HandleDelete(ctx context.Context, id string) error {
	return h.members.Delete(ctx, id)
}

// HandleSeed adds the default member to an empty directory.
func (h *MemberHandler) HandleSeed(ctx context.Context) (bool, error) {
	return h.members.SeedDefault(ctx)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
