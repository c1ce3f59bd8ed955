package models

import (
	"encoding/json"
)

// marshalMetadata encodes a metadata map as JSON for a text column.
// An empty map stores as the empty string.
func marshalMetadata(metadata map[string]string) string {
	if len(metadata) == 0 {
		return ""
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(data)
}

// unmarshalMetadata decodes a metadata column. Unreadable values come
// back as nil rather than failing the whole row.
func unmarshalMetadata(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	var metadata map[string]string
	if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
		return nil
	}
	return metadata
}
