package entities

// Coordinates are decimal-degree values as they appear in the source text.
type Coordinates struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// Location is the trio of fields kept consistent on member edits.
type Location struct {
	Latitude     string `json:"latitude"`
	Longitude    string `json:"longitude"`
	GoogleMapURL string `json:"googleMapUrl"`
}

// LocationEdit carries the fields changed in one update. Nil means unchanged.
type LocationEdit struct {
	Latitude     *string `json:"latitude,omitempty"`
	Longitude    *string `json:"longitude,omitempty"`
	GoogleMapURL *string `json:"googleMapUrl,omitempty"`
}

// Marker is a member plotted on the map view.
type Marker struct {
	MemberID      string  `json:"memberId"`
	Name          string  `json:"name"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	DirectionsURL string  `json:"directionsUrl"`
}

// Location returns the member's location fields.
func (m *Member) Location() Location {
	return Location{
		Latitude:     m.Latitude,
		Longitude:    m.Longitude,
		GoogleMapURL: m.GoogleMapURL,
	}
}

// SetLocation overwrites the member's location fields.
func (m *Member) SetLocation(loc Location) {
	m.Latitude = loc.Latitude
	m.Longitude = loc.Longitude
	m.GoogleMapURL = loc.GoogleMapURL
}
