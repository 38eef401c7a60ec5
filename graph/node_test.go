package graph

import (
	"encoding/json"
	"testing"

	"github.com/c360studio/ucograph/vocabulary/uco"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalBody(t *testing.T, n *Node) map[string]json.RawMessage {
	t.Helper()
	data, err := json.Marshal(n)
	require.NoError(t, err)
	body := make(map[string]json.RawMessage)
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}

// The props structs spell their JSON keys in struct tags, which cannot
// reference constants; this pins them to the vocabulary terms instead.
func TestMarshaledKeysMatchVocabulary(t *testing.T) {
	size := int64(1)

	ff, err := NewFileFacet("kb:facet-1", "a.txt", "/a.txt", &size, []Ref{{ID: "kb:hash-1"}})
	require.NoError(t, err)
	body := marshalBody(t, ff)
	for _, key := range []string{
		uco.PropFileName, uco.PropFilePath, uco.PropExtension,
		uco.PropIsDirectory, uco.PropHash, uco.PropSizeInBytes,
	} {
		assert.Contains(t, body, key)
	}

	cdf, err := NewContentDataFacet("kb:cdf-1", "a.json", &size, []Ref{{ID: "kb:hash-1"}})
	require.NoError(t, err)
	body = marshalBody(t, cdf)
	for _, key := range []string{
		uco.PropByteOrder, uco.PropMimeType, uco.PropHash, uco.PropSizeInBytes,
	} {
		assert.Contains(t, body, key)
	}

	hash, err := NewHashNode("kb:hash-1", uco.HashMD5, "ab", testNow)
	require.NoError(t, err)
	body = marshalBody(t, hash)
	for _, key := range []string{
		uco.PropHashMethod, uco.PropHashValue,
		uco.PropObjectCreatedTime, uco.PropDescription,
	} {
		assert.Contains(t, body, key)
	}

	rel, err := NewRelationship("kb:rel-1",
		Ref{ID: "kb:a"}, Ref{ID: "kb:b"}, uco.RelCreatedBy, testNow)
	require.NoError(t, err)
	body = marshalBody(t, rel)
	for _, key := range []string{
		uco.PropSource, uco.PropTarget, uco.PropKindOfRelationship,
		uco.PropIsDirectional, uco.PropSpecVersion,
	} {
		assert.Contains(t, body, key)
	}

	file := NewFileNode("kb:file-1", testNow)
	AttachFacets(file, ff.Ref())
	body = marshalBody(t, file)
	assert.Contains(t, body, uco.PropHasFacet)

	bundle := NewBundle("kb:bundle-1", "members", testNow)
	bundle.Props.(*BundleProps).Objects = []Ref{file.Ref()}
	body = marshalBody(t, bundle)
	assert.Contains(t, body, uco.PropObject)

	src := NewSource("kb:source-1", "src", "upstream", "https://example.org/x.zip", testNow)
	body = marshalBody(t, src)
	for _, key := range []string{uco.PropName, uco.PropValue} {
		assert.Contains(t, body, key)
	}
}
