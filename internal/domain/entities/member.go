package entities

// Member is a person record in the directory.
// Optional location and date fields default to "". Dates are ISO dates (2006-01-02).
type Member struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	SpouseName     string   `json:"spouseName"`
	ContactNumber  string   `json:"contactNumber"`
	State          string   `json:"state"`
	District       string   `json:"district"`
	City           string   `json:"city"`
	Latitude       string   `json:"latitude"`
	Longitude      string   `json:"longitude"`
	GoogleMapURL   string   `json:"googleMapUrl"`
	DateOfBirth    string   `json:"dateOfBirth"`
	DateOfMarriage string   `json:"dateOfMarriage"`
	IsAlive        bool     `json:"isAlive"`
	DateOfDeath    string   `json:"dateOfDeath"`
	Children       []string `json:"children"`
	CreatedAt      string   `json:"createdAt,omitempty"`
}

// HasChildren reports whether the embedded children list is non-empty.
func (m *Member) HasChildren() bool {
	return len(m.Children) > 0
}

// MemberFromRecord decodes a store record. Missing isAlive defaults to true,
// missing strings to "" and a missing children list to an empty one.
func MemberFromRecord(r Record) Member {
	alive := true
	if v, ok := r["isAlive"].(bool); ok {
		alive = v
	}
	return Member{
		ID:             r.RecordID(),
		Name:           stringField(r, "name"),
		SpouseName:     stringField(r, "spouseName"),
		ContactNumber:  stringField(r, "contactNumber"),
		State:          stringField(r, "state"),
		District:       stringField(r, "district"),
		City:           stringField(r, "city"),
		Latitude:       stringField(r, "latitude"),
		Longitude:      stringField(r, "longitude"),
		GoogleMapURL:   stringField(r, "googleMapUrl"),
		DateOfBirth:    stringField(r, "dateOfBirth"),
		DateOfMarriage: stringField(r, "dateOfMarriage"),
		IsAlive:        alive,
		DateOfDeath:    stringField(r, "dateOfDeath"),
		Children:       stringsField(r, "children"),
		CreatedAt:      stringField(r, "createdAt"),
	}
}

// MembersFromRecords decodes a record list, preserving order.
func MembersFromRecords(records []Record) []Member {
	members := make([]Member, 0, len(records))
	for _, r := range records {
		members = append(members, MemberFromRecord(r))
	}
	return members
}

// ToRecord encodes the member for storage. The id is not included.
func (m *Member) ToRecord() Record {
	children := m.Children
	if children == nil {
		children = []string{}
	}
	r := Record{
		"name":           m.Name,
		"spouseName":     m.SpouseName,
		"contactNumber":  m.ContactNumber,
		"state":          m.State,
		"district":       m.District,
		"city":           m.City,
		"latitude":       m.Latitude,
		"longitude":      m.Longitude,
		"googleMapUrl":   m.GoogleMapURL,
		"dateOfBirth":    m.DateOfBirth,
		"dateOfMarriage": m.DateOfMarriage,
		"isAlive":        m.IsAlive,
		"dateOfDeath":    m.DateOfDeath,
		"children":       children,
	}
	if m.CreatedAt != "" {
		r["createdAt"] = m.CreatedAt
	}
	return r
}
