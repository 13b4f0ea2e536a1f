package datastore

import "time"

// ResourceType is the closed enumeration of pipeline stages a resource can
// originate from.
type ResourceType string

const (
	RawData        ResourceType = "raw_data"
	FieldAnalysis  ResourceType = "field_analysis"
	MembershipCalc ResourceType = "membership_calc"
	MultiCriteria  ResourceType = "multi_criteria"
	BinarySemantic ResourceType = "binary_semantic"
	Other          ResourceType = "other"
)

var typePrefixes = map[ResourceType]string{
	RawData:        "raw",
	FieldAnalysis:  "fa",
	MembershipCalc: "mc",
	MultiCriteria:  "mcr",
	BinarySemantic: "bs",
	Other:          "other",
}

var prefixTypes = func() map[string]ResourceType {
	out := make(map[string]ResourceType, len(typePrefixes))
	for typ, prefix := range typePrefixes {
		out[prefix] = typ
	}
	return out
}()

func (t ResourceType) Valid() bool {
	_, ok := typePrefixes[t]
	return ok
}

func (t ResourceType) Prefix() string {
	return typePrefixes[t]
}

func TypeForPrefix(prefix string) (ResourceType, bool) {
	typ, ok := prefixTypes[prefix]
	return typ, ok
}

// Metadata records when and by which operation a resource was produced,
// plus free-form stage-specific annotations.
type Metadata struct {
	CreatedAt   time.Time         `json:"created_at"`
	Operation   string            `json:"operation,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

// Resource is the unit of storage and lineage.  Resources are immutable
// values: a stage never edits an existing resource, it always creates a new
// one with ParentID pointing back at its input.  ParentID is a weak
// back-reference only; deleting a parent leaves children in place with a
// now-unreachable lineage.
type Resource struct {
	ID       string       `json:"id"`
	Type     ResourceType `json:"type"`
	Payload  any          `json:"payload"`
	Metadata Metadata     `json:"metadata"`
	ParentID string       `json:"parent_id,omitempty"`
	Step     int          `json:"step"`
}

// URI returns the data:// form of the resource id.
func (r *Resource) URI() string {
	return URI(r.ID)
}
