package uco

// RelationshipKind is the controlled vocabulary for
// uco-core:kindOfRelationship values.
type RelationshipKind string

// Relationship kinds emitted by the converter.
const (
	RelCreatedBy    RelationshipKind = "createdBy"
	RelManagedBy    RelationshipKind = "managedBy"
	RelDerivedFrom  RelationshipKind = "derivedFrom"
	RelMaintainedBy RelationshipKind = "maintainedBy"
	RelInputSource  RelationshipKind = "inputSource"
	RelOutputFile   RelationshipKind = "outputFile"
)

// IsValid reports whether the kind belongs to the controlled vocabulary.
func (k RelationshipKind) IsValid() bool {
	switch k {
	case RelCreatedBy, RelManagedBy, RelDerivedFrom, RelMaintainedBy,
		RelInputSource, RelOutputFile:
		return true
	}
	return false
}

// HashMethod names a hash algorithm as it appears in uco-types:hashMethod.
type HashMethod string

// Hash methods recognized in NSRL CAID input. Unrecognized method names
// are still passed through verbatim for forward compatibility.
const (
	HashMD5    HashMethod = "MD5"
	HashSHA1   HashMethod = "SHA1"
	HashSHA256 HashMethod = "SHA256"
)

// IsRecognized reports whether the method is one the converter knows about.
// Callers must not reject unrecognized methods; this exists for logging only.
func (m HashMethod) IsRecognized() bool {
	switch m {
	case HashMD5, HashSHA1, HashSHA256:
		return true
	}
	return false
}
