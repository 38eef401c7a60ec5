package graph

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/c360studio/ucograph/vocabulary/uco"
)

// Kind identifies the node variant. The set is closed; every node entering
// a graph carries exactly one Kind.
type Kind string

// Node kinds emitted by the converter.
const (
	KindFile             Kind = "File"
	KindFileFacet        Kind = "FileFacet"
	KindContentDataFacet Kind = "ContentDataFacet"
	KindHash             Kind = "Hash"
	KindOrganization     Kind = "Organization"
	KindTool             Kind = "Tool"
	KindSource           Kind = "Source"
	KindEnvironment      Kind = "Environment"
	KindRelationship     Kind = "Relationship"
	KindBundle           Kind = "Bundle"
)

// Ref is a lightweight node reference serialized as {"@id": "..."}.
type Ref struct {
	ID string `json:"@id"`
}

// TypedValue is a JSON-LD typed literal.
type TypedValue struct {
	Type  string `json:"@type"`
	Value string `json:"@value"`
}

// XSDDateTime formats t as an xsd:dateTime typed literal in the
// UCO-compliant millisecond UTC form.
func XSDDateTime(t time.Time) TypedValue {
	return TypedValue{
		Type:  uco.TypeXSDDateTime,
		Value: t.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}

// Node is one typed, identified entry in the output graph. Props holds the
// kind-specific attribute struct; it is populated once by the builders and
// never mutated after the node is emitted, except for the facet back-fill
// on File and the member list back-fill on Bundle, both set before emission.
type Node struct {
	ID    string
	Kind  Kind
	Types []string
	Props any
}

// MarshalJSON flattens the node into its JSON-LD object form: the @id and
// @type keys merged with the kind-specific properties.
func (n *Node) MarshalJSON() ([]byte, error) {
	body := make(map[string]json.RawMessage)
	if n.Props != nil {
		raw, err := json.Marshal(n.Props)
		if err != nil {
			return nil, fmt.Errorf("marshal %s props: %w", n.Kind, err)
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("flatten %s props: %w", n.Kind, err)
		}
	}

	id, err := json.Marshal(n.ID)
	if err != nil {
		return nil, err
	}
	body["@id"] = id

	// Facets carry a single @type string; addressable objects carry the
	// class plus the UcoObject supertype as an array.
	var typ any = n.Types
	if len(n.Types) == 1 {
		typ = n.Types[0]
	}
	typRaw, err := json.Marshal(typ)
	if err != nil {
		return nil, err
	}
	body["@type"] = typRaw

	return json.Marshal(body)
}

// Ref returns the node's lightweight reference.
func (n *Node) Ref() Ref { return Ref{ID: n.ID} }

// FileProps are the attributes of a File node.
type FileProps struct {
	CreatedTime TypedValue `json:"uco-core:objectCreatedTime"`
	HasFacet    []Ref      `json:"uco-core:hasFacet,omitempty"`
}

// FileFacetProps are the attributes of a FileFacet node. Optional fields
// use omitempty pointers so an absent input fact stays absent in the
// output instead of being asserted as zero.
type FileFacetProps struct {
	FileName    string `json:"uco-observable:fileName"`
	FilePath    string `json:"uco-observable:filePath,omitempty"`
	Extension   string `json:"uco-observable:extension,omitempty"`
	IsDirectory bool   `json:"uco-observable:isDirectory"`
	Hashes      []Ref  `json:"uco-observable:hash,omitempty"`
	SizeInBytes *int64 `json:"uco-observable:sizeInBytes,omitempty"`
}

// ContentDataFacetProps are the attributes of a ContentDataFacet node.
type ContentDataFacetProps struct {
	ByteOrder   TypedValue `json:"uco-observable:byteOrder"`
	MimeType    string     `json:"uco-observable:mimeType,omitempty"`
	Hashes      []Ref      `json:"uco-observable:hash,omitempty"`
	SizeInBytes *int64     `json:"uco-observable:sizeInBytes,omitempty"`
}

// HashProps are the attributes of a Hash node.
type HashProps struct {
	CreatedTime TypedValue `json:"uco-core:objectCreatedTime"`
	Description string     `json:"uco-core:description,omitempty"`
	Method      TypedValue `json:"uco-types:hashMethod"`
	Value       TypedValue `json:"uco-types:hashValue"`
}

// OrganizationProps are the attributes of an Organization node.
type OrganizationProps struct {
	Name        string     `json:"uco-core:name"`
	Description string     `json:"uco-core:description,omitempty"`
	CreatedTime TypedValue `json:"uco-core:objectCreatedTime"`
}

// ToolProps are the attributes of a Tool node.
type ToolProps struct {
	Name        string     `json:"uco-core:name"`
	Description string     `json:"uco-core:description,omitempty"`
	Version     string     `json:"uco-core:specVersion,omitempty"`
	CreatedTime TypedValue `json:"uco-core:objectCreatedTime"`
}

// SourceProps are the attributes of a Source (URL) node.
type SourceProps struct {
	Name        string     `json:"uco-core:name,omitempty"`
	Description string     `json:"uco-core:description,omitempty"`
	CreatedTime TypedValue `json:"uco-core:objectCreatedTime"`
	Value       string     `json:"uco-observable:value"`
}

// EnvironmentProps are the attributes of the runtime environment node.
type EnvironmentProps struct {
	Name        string     `json:"uco-core:name"`
	Description string     `json:"uco-core:description,omitempty"`
	CreatedTime TypedValue `json:"uco-core:objectCreatedTime"`
}

// RelationshipProps are the attributes of a Relationship edge.
type RelationshipProps struct {
	Source        Ref        `json:"uco-core:source"`
	Target        Ref        `json:"uco-core:target"`
	Kind          string     `json:"uco-core:kindOfRelationship"`
	IsDirectional bool       `json:"uco-core:isDirectional"`
	CreatedTime   TypedValue `json:"uco-core:objectCreatedTime"`
	SpecVersion   string     `json:"uco-core:specVersion,omitempty"`
}

// BundleProps are the attributes of the Bundle container node.
type BundleProps struct {
	Description string     `json:"uco-core:description,omitempty"`
	CreatedTime TypedValue `json:"uco-core:objectCreatedTime"`
	Objects     []Ref      `json:"uco-core:object"`
}
