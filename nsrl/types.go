// Package nsrl models NSRL CAID input documents and locates them on disk.
package nsrl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Document is one NSRL CAID JSON input unit. The ODATA export wraps the
// media records in a top-level "value" array.
type Document struct {
	Metadata string  `json:"odata.metadata,omitempty"`
	Value    []Media `json:"value"`
}

// Media is one logical media item. Multiple MediaFiles entries represent
// distinct physical copies (paths) of the same item.
type Media struct {
	MediaID    FlexString  `json:"MediaID"`
	Category   string      `json:"Category,omitempty"`
	SHA1       string      `json:"SHA1,omitempty"`
	MediaSize  FlexString  `json:"MediaSize,omitempty"`
	MediaFiles []MediaFile `json:"MediaFiles"`
}

// MediaFile is one physical file observation within a media item.
type MediaFile struct {
	FileName string `json:"FileName"`
	FilePath string `json:"FilePath"`
	MD5      string `json:"MD5,omitempty"`
	SHA1     string `json:"SHA1,omitempty"`
}

// FlexString decodes either a JSON string or a JSON number into a string.
// CAID exports are inconsistent about whether MediaID and MediaSize are
// quoted, so both forms must be accepted.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("value is neither string nor number: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the raw string form.
func (f FlexString) String() string { return string(f) }

// Int64 parses the value as a base-10 integer.
func (f FlexString) Int64() (int64, error) {
	return strconv.ParseInt(string(f), 10, 64)
}
