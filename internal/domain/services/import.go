package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
	"github.com/yasar2385/family-address-book/internal/domain/ports"
	"github.com/yasar2385/family-address-book/internal/infrastructure/parsers"
)

// ConflictStrategy defines how to handle existing members during import.
type ConflictStrategy string

const (
	// ConflictSkip skips members whose id already exists.
	ConflictSkip ConflictStrategy = "skip"
	// ConflictOverwrite overwrites existing members with new data.
	ConflictOverwrite ConflictStrategy = "overwrite"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun     bool             // Validate without saving
	OnConflict ConflictStrategy // How to handle existing members
}

// ImportError represents an error for a specific member during import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []ImportError
}

// ImportService handles importing members from external sources.
type ImportService struct {
	store       ports.DocumentStore
	mapsBaseURL string
}

// NewImportService creates a new import service.
func NewImportService(store ports.DocumentStore, mapsBaseURL string) *ImportService {
	return &ImportService{
		store:       store,
		mapsBaseURL: mapsBaseURL,
	}
}

// Import validates and stores raw members. Invalid rows are reported in the
// result and do not stop the rest of the import.
func (s *ImportService) Import(ctx context.Context, raw []parsers.RawMember, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	members, importErrors := s.convert(raw)
	result.Errors = importErrors

	if len(members) == 0 {
		return result, nil
	}

	if opts.DryRun {
		result.Imported = len(members)
		return result, nil
	}

	imported, skipped, err := s.save(ctx, members, opts.OnConflict)
	if err != nil {
		return nil, fmt.Errorf("saving members: %w", err)
	}

	result.Imported = imported
	result.Skipped = skipped

	return result, nil
}

// convert validates raw members and returns normalized ones with any errors.
func (s *ImportService) convert(raw []parsers.RawMember) ([]entities.Member, []ImportError) {
	members := make([]entities.Member, 0, len(raw))
	var importErrors []ImportError

	for i := range raw {
		r := &raw[i]
		lineNum := r.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}

		m := memberFromRaw(r)
		if err := NormalizeMember(&m, s.mapsBaseURL); err != nil {
			importErr := ImportError{Line: lineNum, Message: err.Error()}
			var ve *ValidationError
			if errors.As(err, &ve) {
				importErr.Field = ve.Field
				importErr.Value = ve.Value
				importErr.Message = ve.Reason
			}
			importErrors = append(importErrors, importErr)
			continue
		}
		members = append(members, m)
	}

	return members, importErrors
}

// memberFromRaw maps a parsed row onto a member. Coordinates missing from the
// row are taken from its map URL when the URL carries them.
func memberFromRaw(r *parsers.RawMember) entities.Member {
	alive := true
	if r.IsAlive != nil {
		alive = *r.IsAlive
	}
	m := entities.Member{
		ID:             r.ID,
		Name:           r.Name,
		SpouseName:     r.SpouseName,
		ContactNumber:  r.ContactNumber,
		State:          r.State,
		District:       r.District,
		City:           r.City,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		GoogleMapURL:   r.GoogleMapURL,
		DateOfBirth:    r.DateOfBirth,
		DateOfMarriage: r.DateOfMarriage,
		IsAlive:        alive,
		DateOfDeath:    r.DateOfDeath,
		Children:       r.Children,
	}
	if m.Latitude == "" && m.Longitude == "" {
		if coords := ExtractCoordinates(m.GoogleMapURL); coords != nil {
			m.Latitude = coords.Lat
			m.Longitude = coords.Lng
		}
	}
	return m
}

// save stores members. Members without an id get a generated one; members
// with an id are checked for an existing record first.
func (s *ImportService) save(ctx context.Context, members []entities.Member, onConflict ConflictStrategy) (imported, skipped int, err error) {
	now := timeNow().UTC().Format(time.RFC3339)

	for i := range members {
		m := &members[i]
		m.CreatedAt = now

		if m.ID == "" {
			if _, err := s.store.Create(ctx, entities.CollectionMembers, m.ToRecord()); err != nil {
				return 0, 0, err
			}
			imported++
			continue
		}

		existing, err := s.store.Get(ctx, entities.CollectionMembers, m.ID)
		switch {
		case errors.Is(err, ports.ErrNotFound):
		case err != nil:
			return 0, 0, fmt.Errorf("looking up member %s: %w", m.ID, err)
		case onConflict == ConflictSkip:
			skipped++
			continue
		default:
			// Overwrite keeps the original creation time.
			if createdAt := entities.MemberFromRecord(existing).CreatedAt; createdAt != "" {
				m.CreatedAt = createdAt
			}
		}

		if err := s.store.Put(ctx, entities.CollectionMembers, m.ID, m.ToRecord()); err != nil {
			return 0, 0, err
		}
		imported++
	}

	return imported, skipped, nil
}
