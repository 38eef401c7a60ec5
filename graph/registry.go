// Package graph implements the UCO graph-assembly engine: stable identifier
// issuance, typed node construction, per-unit assembly with id-based
// deduplication, and graph combination.
package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// unknownKey is substituted when a logical key is absent, so that
// identifier resolution never fails.
const unknownKey = "unknown"

// Registry issues stable opaque identifiers for logical entities.
// Within one Registry lifetime the same (kind, logicalKey) pair always
// resolves to the same identifier, which is what lets a hash value or
// media record referenced from several places collapse onto one node.
//
// A Registry is scoped to one conversion run and is not safe for
// concurrent use; the converter is single-threaded by design.
type Registry struct {
	ids map[string]string
}

// NewRegistry creates an empty identifier registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]string)}
}

// Resolve returns the identifier for the given kind and logical key,
// generating and caching one on first use. The identifier embeds the kind,
// a sanitized slug of the key, and a random unique suffix:
//
//	kb:hash-d41d8cd98f00b204e9800998ecf8427e-<uuid>
//
// Resolve never fails: an empty key resolves to the literal "unknown" slug.
func (r *Registry) Resolve(kind, logicalKey string) string {
	key := kind + ":" + logicalKey
	if id, ok := r.ids[key]; ok {
		return id
	}
	id := fmt.Sprintf("kb:%s-%s-%s", kind, slugify(logicalKey), uuid.New().String())
	r.ids[key] = id
	return id
}

// Len returns the number of distinct logical entities resolved so far.
func (r *Registry) Len() int { return len(r.ids) }

// slugify produces the human-readable component of an identifier.
// Keys made entirely of identifier-safe characters are lowercased and
// embedded as-is; keys containing anything else are replaced by a short
// deterministic digest so the identifier stays IRI-safe.
func slugify(key string) string {
	if key == "" {
		return unknownKey
	}
	safe := true
	for _, c := range key {
		if !isIdentChar(c) {
			safe = false
			break
		}
	}
	if safe {
		return strings.ToLower(key)
	}
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:6])
}

func isIdentChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_':
		return true
	}
	return false
}
