package entities

// Collection names used by the document store.
const (
	CollectionMembers   = "members"
	CollectionRelations = "relations"
)

// RelationType defines the kind of link between two members.
type RelationType string

const (
	RelationFather   RelationType = "Father"
	RelationMother   RelationType = "Mother"
	RelationSon      RelationType = "Son"
	RelationDaughter RelationType = "Daughter"
	RelationBrother  RelationType = "Brother"
	RelationSister   RelationType = "Sister"
	RelationUncle    RelationType = "Uncle"
	RelationGrandma  RelationType = "Grandma"
	RelationGrandpa  RelationType = "Grandpa"
)

// RelationTypes lists the known relation types in picker order.
var RelationTypes = []RelationType{
	RelationFather,
	RelationMother,
	RelationSon,
	RelationDaughter,
	RelationBrother,
	RelationSister,
	RelationUncle,
	RelationGrandma,
	RelationGrandpa,
}

var relationLabels = map[RelationType]string{
	RelationFather:   "👨 Father",
	RelationMother:   "👩 Mother",
	RelationSon:      "👦 Son",
	RelationDaughter: "👧 Daughter",
	RelationBrother:  "👬 Brother",
	RelationSister:   "👭 Sister",
	RelationUncle:    "🧔 Uncle",
	RelationGrandma:  "👵 Grandma",
	RelationGrandpa:  "👴 Grandpa",
}

// IsValid reports whether t is one of the known relation types.
func (t RelationType) IsValid() bool {
	_, ok := relationLabels[t]
	return ok
}

// IsParental reports whether t establishes a parent to child edge
// from member1 to member2.
func (t RelationType) IsParental() bool {
	switch t {
	case RelationFather, RelationMother, RelationSon, RelationDaughter:
		return true
	}
	return false
}

// IsSibling reports whether t establishes a sibling link.
func (t RelationType) IsSibling() bool {
	return t == RelationBrother || t == RelationSister
}

// Label returns the display label, or the raw value for unknown types.
func (t RelationType) Label() string {
	if label, ok := relationLabels[t]; ok {
		return label
	}
	return string(t)
}

// Relation is a directed, typed link between two members.
type Relation struct {
	ID           string       `json:"id"`
	Member1ID    string       `json:"member1Id"`
	Member2ID    string       `json:"member2Id"`
	RelationType RelationType `json:"relationType"`
}

// RelationFromRecord decodes a store record. Unknown relation types are kept as-is.
func RelationFromRecord(r Record) Relation {
	return Relation{
		ID:           r.RecordID(),
		Member1ID:    stringField(r, "member1Id"),
		Member2ID:    stringField(r, "member2Id"),
		RelationType: RelationType(stringField(r, "relationType")),
	}
}

// RelationsFromRecords decodes a record list, preserving order.
func RelationsFromRecords(records []Record) []Relation {
	relations := make([]Relation, 0, len(records))
	for _, r := range records {
		relations = append(relations, RelationFromRecord(r))
	}
	return relations
}

// ToRecord encodes the relation for storage. The id is not included.
func (r *Relation) ToRecord() Record {
	return Record{
		"member1Id":    r.Member1ID,
		"member2Id":    r.Member2ID,
		"relationType": string(r.RelationType),
	}
}
