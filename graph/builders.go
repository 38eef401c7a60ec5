package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/c360studio/ucograph/vocabulary/uco"
)

// Builder errors. Callers skip the node rather than failing the record.
var (
	ErrEmptyHashValue = errors.New("empty hash value")
	ErrEmptyFileName  = errors.New("empty file name")
)

// addressableTypes returns the @type array asserted on top-level objects:
// the class term plus the UcoObject supertype.
func addressableTypes(class string) []string {
	return []string{class, uco.ClassUcoObject}
}

// NewFileNode builds a File node for one logical media item. Facet
// references are attached later via AttachFacets, once per facet, before
// the node is emitted.
func NewFileNode(id string, now TypedValue) *Node {
	return &Node{
		ID:    id,
		Kind:  KindFile,
		Types: addressableTypes(uco.ClassFile),
		Props: &FileProps{CreatedTime: now},
	}
}

// AttachFacets back-fills facet references onto a File node.
func AttachFacets(file *Node, refs ...Ref) {
	props, ok := file.Props.(*FileProps)
	if !ok {
		return
	}
	props.HasFacet = append(props.HasFacet, refs...)
}

// NewFileFacet builds the identity facet for one physical file entry.
// The file name is required; path and size are omitted when absent.
func NewFileFacet(id, fileName, filePath string, size *int64, hashes []Ref) (*Node, error) {
	if fileName == "" {
		return nil, ErrEmptyFileName
	}
	return &Node{
		ID:    id,
		Kind:  KindFileFacet,
		Types: []string{uco.ClassFileFacet},
		Props: &FileFacetProps{
			FileName:    fileName,
			FilePath:    filePath,
			Extension:   extensionOf(fileName),
			IsDirectory: false,
			Hashes:      hashes,
			SizeInBytes: size,
		},
	}, nil
}

// NewContentDataFacet builds the content facet for one physical file entry.
// The MIME type is derived from the file name's extension; unknown
// extensions omit the attribute.
func NewContentDataFacet(id, fileName string, size *int64, hashes []Ref) (*Node, error) {
	if fileName == "" {
		return nil, ErrEmptyFileName
	}
	props := &ContentDataFacetProps{
		ByteOrder: TypedValue{
			Type:  uco.TypeEndiannessType,
			Value: "Big-endian",
		},
		Hashes:      hashes,
		SizeInBytes: size,
	}
	if mt, ok := mimeTypeFor(fileName); ok {
		props.MimeType = mt
	}
	return &Node{
		ID:    id,
		Kind:  KindContentDataFacet,
		Types: []string{uco.ClassContentDataFacet},
		Props: props,
	}, nil
}

// NewHashNode builds a Hash node. The hash value is normalized to uppercase
// hex. An empty value is rejected so callers skip the reference instead of
// emitting a vacuous node. Unrecognized method names pass through verbatim.
func NewHashNode(id string, method uco.HashMethod, value string, now TypedValue) (*Node, error) {
	if value == "" {
		return nil, ErrEmptyHashValue
	}
	return &Node{
		ID:    id,
		Kind:  KindHash,
		Types: addressableTypes(uco.ClassHash),
		Props: &HashProps{
			CreatedTime: now,
			Description: fmt.Sprintf("%s hash value for file", method),
			Method: TypedValue{
				Type:  uco.TypeHashNameVocab,
				Value: string(method),
			},
			Value: TypedValue{
				Type:  uco.TypeXSDHexBinary,
				Value: strings.ToUpper(value),
			},
		},
	}, nil
}

// NewOrganization builds the data steward Organization node.
func NewOrganization(id, name, description string, now TypedValue) *Node {
	return &Node{
		ID:    id,
		Kind:  KindOrganization,
		Types: addressableTypes(uco.ClassOrganization),
		Props: &OrganizationProps{
			Name:        name,
			Description: description,
			CreatedTime: now,
		},
	}
}

// NewTool builds the converter Tool node.
func NewTool(id, name, description, version string, now TypedValue) *Node {
	return &Node{
		ID:    id,
		Kind:  KindTool,
		Types: addressableTypes(uco.ClassTool),
		Props: &ToolProps{
			Name:        name,
			Description: description,
			Version:     version,
			CreatedTime: now,
		},
	}
}

// NewSource builds the upstream dataset Source node.
func NewSource(id, name, description, url string, now TypedValue) *Node {
	return &Node{
		ID:    id,
		Kind:  KindSource,
		Types: addressableTypes(uco.ClassURL),
		Props: &SourceProps{
			Name:        name,
			Description: description,
			CreatedTime: now,
			Value:       url,
		},
	}
}

// NewEnvironment builds the runtime environment node.
func NewEnvironment(id, name, description string, now TypedValue) *Node {
	return &Node{
		ID:    id,
		Kind:  KindEnvironment,
		Types: addressableTypes(uco.ClassObservableObject),
		Props: &EnvironmentProps{
			Name:        name,
			Description: description,
			CreatedTime: now,
		},
	}
}

// NewRelationship builds a directed edge between two existing nodes.
// Both endpoints must already have registered identifiers; the builder
// never creates them.
func NewRelationship(id string, source, target Ref, kind uco.RelationshipKind, now TypedValue) (*Node, error) {
	if source.ID == "" || target.ID == "" {
		return nil, errors.New("relationship endpoints must have identifiers")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown relationship kind %q", kind)
	}
	return &Node{
		ID:    id,
		Kind:  KindRelationship,
		Types: addressableTypes(uco.ClassRelationship),
		Props: &RelationshipProps{
			Source:        source,
			Target:        target,
			Kind:          string(kind),
			IsDirectional: true,
			CreatedTime:   now,
			SpecVersion:   uco.SpecVersion,
		},
	}, nil
}

// NewBundle builds the Bundle container node. Its member reference list is
// back-filled by the assembler once all nodes are known.
func NewBundle(id, description string, now TypedValue) *Node {
	return &Node{
		ID:    id,
		Kind:  KindBundle,
		Types: addressableTypes(uco.ClassBundle),
		Props: &BundleProps{
			Description: description,
			CreatedTime: now,
		},
	}
}
