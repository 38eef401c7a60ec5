package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ResolveDeterministic(t *testing.T) {
	reg := NewRegistry()

	first := reg.Resolve("hash", "d41d8cd98f00b204e9800998ecf8427e")
	second := reg.Resolve("hash", "d41d8cd98f00b204e9800998ecf8427e")
	assert.Equal(t, first, second, "same pair must resolve to same id")

	other := reg.Resolve("hash", "900150983cd24fb0d6963f7d28e17f72")
	assert.NotEqual(t, first, other, "distinct keys must resolve to distinct ids")
}

func TestRegistry_KindSeparatesKeys(t *testing.T) {
	reg := NewRegistry()

	fileID := reg.Resolve("file", "12345")
	hashID := reg.Resolve("hash", "12345")
	assert.NotEqual(t, fileID, hashID)
	assert.True(t, strings.HasPrefix(fileID, "kb:file-12345-"))
	assert.True(t, strings.HasPrefix(hashID, "kb:hash-12345-"))
}

func TestRegistry_EmptyKeyPlaceholder(t *testing.T) {
	reg := NewRegistry()

	first := reg.Resolve("file", "")
	second := reg.Resolve("file", "")
	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "kb:file-unknown-"))
}

func TestRegistry_UnsafeKeysSanitized(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"spaces", "some key with spaces"},
		{"path separators", `C:\Windows\System32`},
		{"unicode", "名前"},
		{"symbols", "a&b|c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			id := reg.Resolve("facet", tt.key)
			again := reg.Resolve("facet", tt.key)
			assert.Equal(t, id, again)

			// Everything after the kb: prefix must be identifier-safe.
			body := strings.TrimPrefix(id, "kb:")
			for _, c := range body {
				assert.True(t, isIdentChar(c), "unsafe rune %q in id %s", c, id)
			}
		})
	}
}

func TestRegistry_SanitizedKeysRemainDistinct(t *testing.T) {
	reg := NewRegistry()
	a := reg.Resolve("facet", "a b")
	b := reg.Resolve("facet", "a  b")
	require.NotEqual(t, a, b, "distinct unsafe keys must not collide")
}

func TestRegistry_Len(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, 0, reg.Len())
	reg.Resolve("file", "1")
	reg.Resolve("file", "1")
	reg.Resolve("file", "2")
	assert.Equal(t, 2, reg.Len())
}
