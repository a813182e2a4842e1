package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
	"github.com/yasar2385/family-address-book/internal/domain/ports"
)

// DateLayout is the ISO date format used for birth, marriage and death dates.
const DateLayout = "2006-01-02"

// timeNow returns the current time (can be replaced in tests).
var timeNow = time.Now

// MemberService manages member records.
type MemberService struct {
	store       ports.DocumentStore
	mapsBaseURL string
}

// NewMemberService creates a new MemberService.
func NewMemberService(store ports.DocumentStore, mapsBaseURL string) *MemberService {
	return &MemberService{
		store:       store,
		mapsBaseURL: mapsBaseURL,
	}
}

// List returns all members in store order.
func (s *MemberService) List(ctx context.Context) ([]entities.Member, error) {
	records, err := s.store.ListAll(ctx, entities.CollectionMembers)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return entities.MembersFromRecords(records), nil
}

// Get returns one member.
func (s *MemberService) Get(ctx context.Context, id string) (*entities.Member, error) {
	rec, err := s.store.Get(ctx, entities.CollectionMembers, id)
	if err != nil {
		return nil, fmt.Errorf("getting member: %w", err)
	}
	m := entities.MemberFromRecord(rec)
	return &m, nil
}

// Create validates and stores a new member.
func (s *MemberService) Create(ctx context.Context, m entities.Member) (*entities.Member, error) {
	if err := NormalizeMember(&m, s.mapsBaseURL); err != nil {
		return nil, err
	}
	m.CreatedAt = timeNow().UTC().Format(time.RFC3339)

	id, err := s.store.Create(ctx, entities.CollectionMembers, m.ToRecord())
	if err != nil {
		return nil, fmt.Errorf("creating member: %w", err)
	}
	m.ID = id
	return &m, nil
}

// Update validates and saves every field of an existing member.
// The map URL is regenerated from the coordinates on save.
func (s *MemberService) Update(ctx context.Context, m entities.Member) (*entities.Member, error) {
	if m.ID == "" {
		return nil, invalid("id", "", "member id is required")
	}
	if err := NormalizeMember(&m, s.mapsBaseURL); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, entities.CollectionMembers, m.ID, m.ToRecord()); err != nil {
		return nil, fmt.Errorf("updating member: %w", err)
	}
	return s.Get(ctx, m.ID)
}

// EditLocation applies a location edit to a stored member and saves the
// reconciled latitude, longitude and map URL.
func (s *MemberService) EditLocation(ctx context.Context, id string, edit entities.LocationEdit) (*entities.Member, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	loc := ApplyLocationEdit(s.mapsBaseURL, m.Location(), edit)
	partial := entities.Record{
		"latitude":     loc.Latitude,
		"longitude":    loc.Longitude,
		"googleMapUrl": loc.GoogleMapURL,
	}
	if err := s.store.Update(ctx, entities.CollectionMembers, id, partial); err != nil {
		return nil, fmt.Errorf("updating location: %w", err)
	}
	m.SetLocation(loc)
	return m, nil
}

// Delete removes a member and every relation edge touching it.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	for _, field := range []string{"member1Id", "member2Id"} {
		records, err := s.store.QueryWhere(ctx, entities.CollectionRelations, field, id)
		if err != nil {
			return fmt.Errorf("finding member relations: %w", err)
		}
		for _, rec := range records {
			err := s.store.Delete(ctx, entities.CollectionRelations, rec.RecordID())
			if err != nil && !errors.Is(err, ports.ErrNotFound) {
				return fmt.Errorf("deleting member relation: %w", err)
			}
		}
	}

	if err := s.store.Delete(ctx, entities.CollectionMembers, id); err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	return nil
}

// DefaultMember is added by SeedDefault to an empty directory.
var DefaultMember = entities.Member{
	Name:          "Default Member",
	SpouseName:    "Default Spouse",
	ContactNumber: "000-000-0000",
	State:         "Default State",
	District:      "Default District",
	City:          "Default City",
	IsAlive:       true,
}

// SeedDefault adds DefaultMember when the directory is empty.
// It reports whether a member was added.
func (s *MemberService) SeedDefault(ctx context.Context) (bool, error) {
	members, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	if len(members) > 0 {
		return false, nil
	}
	if _, err := s.Create(ctx, DefaultMember); err != nil {
		return false, fmt.Errorf("seeding default member: %w", err)
	}
	return true, nil
}

// NormalizeMember validates a member and applies the save-time defaults:
// trimmed name (required), valid ISO dates, a map URL derived from the
// coordinates, no death date while alive, and a clean children list.
func NormalizeMember(m *entities.Member, mapsBaseURL string) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return invalid("name", m.Name, "name is required")
	}

	dates := []struct{ field, value string }{
		{"dateOfBirth", m.DateOfBirth},
		{"dateOfMarriage", m.DateOfMarriage},
		{"dateOfDeath", m.DateOfDeath},
	}
	for _, d := range dates {
		if d.value == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, d.value); err != nil {
			return invalid(d.field, d.value, "%s %q is not a date (want YYYY-MM-DD)", d.field, d.value)
		}
	}

	m.Latitude = strings.TrimSpace(m.Latitude)
	m.Longitude = strings.TrimSpace(m.Longitude)
	if m.Latitude != "" && m.Longitude != "" {
		m.GoogleMapURL = DirectionsURL(mapsBaseURL, m.Latitude, m.Longitude)
	} else {
		m.GoogleMapURL = ""
	}

	if m.IsAlive {
		m.DateOfDeath = ""
	}

	children := make([]string, 0, len(m.Children))
	seen := make(map[string]bool, len(m.Children))
	for _, id := range m.Children {
		id = strings.TrimSpace(id)
		if id == "" || id == m.ID || seen[id] {
			continue
		}
		seen[id] = true
		children = append(children, id)
	}
	m.Children = children
	return nil
}
