package nsrl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrMissingValue indicates an input document without the required
// top-level "value" array. The unit is unprocessable.
var ErrMissingValue = errors.New("missing required 'value' array")

// Decode reads one CAID document from r and validates its shape.
func Decode(r io.Reader) (*Document, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse CAID JSON: %w", err)
	}

	valueRaw, ok := raw["value"]
	if !ok {
		return nil, ErrMissingValue
	}

	doc := &Document{}
	if meta, ok := raw["odata.metadata"]; ok {
		// Best effort; a malformed metadata string is not fatal.
		_ = json.Unmarshal(meta, &doc.Metadata)
	}
	if err := json.Unmarshal(valueRaw, &doc.Value); err != nil {
		return nil, fmt.Errorf("parse 'value' array: %w", err)
	}
	return doc, nil
}

// DecodeFile reads and decodes one CAID document from disk.
func DecodeFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}
