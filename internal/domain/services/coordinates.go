package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yasar2385/family-address-book/internal/domain/entities"
)

// DefaultMapsBaseURL is the map service used for canonical direction links.
const DefaultMapsBaseURL = "https://www.google.com/maps"

// Patterns are tried in order; the first match wins.
var coordinatePatterns = []struct {
	re       *regexp.Regexp
	lat, lng int
}{
	// @<lat>,<lng> as in a place URL.
	{regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`), 1, 2},
	// !3d<lat>!4d<lng> embedded-map pin encoding.
	{regexp.MustCompile(`!3d(-?\d+\.\d+)!4d(-?\d+\.\d+)`), 1, 2},
	// q, query, destination or daddr query parameter.
	{regexp.MustCompile(`[?&](q|query|destination|daddr)=(-?\d+\.\d+),(-?\d+\.\d+)`), 2, 3},
}

// ExtractCoordinates parses a map-service URL into latitude and longitude.
// It returns nil when s is empty or holds no coordinate-shaped substring.
func ExtractCoordinates(s string) *entities.Coordinates {
	if s == "" {
		return nil
	}
	for _, p := range coordinatePatterns {
		if m := p.re.FindStringSubmatch(s); m != nil {
			return &entities.Coordinates{Lat: m[p.lat], Lng: m[p.lng]}
		}
	}
	return nil
}

// DirectionsURL builds the canonical direction link for a coordinate pair.
func DirectionsURL(baseURL, lat, lng string) string {
	if baseURL == "" {
		baseURL = DefaultMapsBaseURL
	}
	return strings.TrimRight(baseURL, "/") + "/dir/?api=1&destination=" + lat + "," + lng
}

// ApplyLocationEdit applies one update to the (lat, lng, url) trio and keeps
// the three fields consistent. A URL edit takes priority over lat/lng edits in
// the same update; lat/lng edits regenerate the URL once both are known.
func ApplyLocationEdit(baseURL string, current entities.Location, edit entities.LocationEdit) entities.Location {
	next := current

	if edit.GoogleMapURL != nil {
		next.GoogleMapURL = *edit.GoogleMapURL
		if coords := ExtractCoordinates(*edit.GoogleMapURL); coords != nil {
			next.Latitude = coords.Lat
			next.Longitude = coords.Lng
		}
		return next
	}

	if edit.Latitude == nil && edit.Longitude == nil {
		return next
	}
	if edit.Latitude != nil {
		next.Latitude = *edit.Latitude
	}
	if edit.Longitude != nil {
		next.Longitude = *edit.Longitude
	}
	if next.Latitude != "" && next.Longitude != "" {
		next.GoogleMapURL = DirectionsURL(baseURL, next.Latitude, next.Longitude)
	}
	return next
}

// MapMarkers returns a marker for every member with usable coordinates,
// in input order. Members with missing or out-of-range values are skipped.
func MapMarkers(baseURL string, members []entities.Member) []entities.Marker {
	markers := make([]entities.Marker, 0, len(members))
	for i := range members {
		m := &members[i]
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(m.Latitude), 64)
		lng, errLng := strconv.ParseFloat(strings.TrimSpace(m.Longitude), 64)
		if errLat != nil || errLng != nil {
			continue
		}
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			continue
		}
		markers = append(markers, entities.Marker{
			MemberID:      m.ID,
			Name:          m.Name,
			Lat:           lat,
			Lng:           lng,
			DirectionsURL: DirectionsURL(baseURL, strings.TrimSpace(m.Latitude), strings.TrimSpace(m.Longitude)),
		})
	}
	return markers
}
