package uco

// SpecVersion is the UCO ontology version the converter targets.
const SpecVersion = "1.3.0"

// Namespace IRIs for the UCO ontology families referenced by output documents.
const (
	CoreNamespace       = "https://ontology.unifiedcyberontology.org/uco/core/"
	ObservableNamespace = "https://ontology.unifiedcyberontology.org/uco/observable/"
	TypesNamespace      = "https://ontology.unifiedcyberontology.org/uco/types/"
	ToolNamespace       = "https://ontology.unifiedcyberontology.org/uco/tool/"
	IdentityNamespace   = "https://ontology.unifiedcyberontology.org/uco/identity/"
	VocabularyNamespace = "https://ontology.unifiedcyberontology.org/uco/vocabulary/"
	ActionNamespace     = "https://ontology.unifiedcyberontology.org/uco/action/"
	XSDNamespace        = "http://www.w3.org/2001/XMLSchema#"
	KBNamespace         = "http://example.org/kb/"
)

// Class terms define the node types emitted into the output graph.
const (
	// ClassUcoObject is the shared supertype asserted alongside every
	// addressable object.
	ClassUcoObject = "uco-core:UcoObject"

	// ClassBundle is the top-level container for one conversion run.
	ClassBundle = "uco-core:Bundle"

	// ClassFile represents one logical media item.
	ClassFile = "uco-observable:File"

	// ClassFileFacet holds identity facts (name, path, extension) for a File.
	ClassFileFacet = "uco-observable:FileFacet"

	// ClassContentDataFacet holds content facts (MIME type, size) for a File.
	ClassContentDataFacet = "uco-observable:ContentDataFacet"

	// ClassHash represents a content hash value.
	ClassHash = "uco-types:Hash"

	// ClassOrganization represents the data steward organization.
	ClassOrganization = "uco-identity:Organization"

	// ClassTool represents the converter itself.
	ClassTool = "uco-tool:ConfiguredTool"

	// ClassURL represents the upstream dataset source.
	ClassURL = "uco-observable:URL"

	// ClassObservableObject represents the runtime environment node.
	ClassObservableObject = "uco-observable:ObservableObject"

	// ClassRelationship represents a directed edge between two nodes.
	ClassRelationship = "uco-observable:ObservableRelationship"
)

// Property terms shared across node kinds.
const (
	PropName               = "uco-core:name"
	PropDescription        = "uco-core:description"
	PropObjectCreatedTime  = "uco-core:objectCreatedTime"
	PropSpecVersion        = "uco-core:specVersion"
	PropHasFacet           = "uco-core:hasFacet"
	PropObject             = "uco-core:object"
	PropSource             = "uco-core:source"
	PropTarget             = "uco-core:target"
	PropKindOfRelationship = "uco-core:kindOfRelationship"
	PropIsDirectional      = "uco-core:isDirectional"

	PropFileName    = "uco-observable:fileName"
	PropFilePath    = "uco-observable:filePath"
	PropExtension   = "uco-observable:extension"
	PropIsDirectory = "uco-observable:isDirectory"
	PropHash        = "uco-observable:hash"
	PropSizeInBytes = "uco-observable:sizeInBytes"
	PropMimeType    = "uco-observable:mimeType"
	PropByteOrder   = "uco-observable:byteOrder"
	PropValue       = "uco-observable:value"

	PropHashMethod = "uco-types:hashMethod"
	PropHashValue  = "uco-types:hashValue"
)

// Datatype terms used for typed literal values.
const (
	TypeXSDDateTime    = "xsd:dateTime"
	TypeXSDHexBinary   = "xsd:hexBinary"
	TypeHashNameVocab  = "uco-vocabulary:HashNameVocab"
	TypeEndiannessType = "uco-vocabulary:EndiannessTypeVocab"
)

// Context returns the JSON-LD @context prefix map emitted with every
// output document. The returned map is a fresh copy on each call.
func Context() map[string]string {
	return map[string]string{
		"uco-core":       CoreNamespace,
		"uco-observable": ObservableNamespace,
		"uco-types":      TypesNamespace,
		"uco-tool":       ToolNamespace,
		"uco-identity":   IdentityNamespace,
		"uco-vocabulary": VocabularyNamespace,
		"uco-action":     ActionNamespace,
		"xsd":            XSDNamespace,
		"kb":             KBNamespace,
	}
}
