package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a snapshot encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for snapshot files with an unsupported extension
var ErrUnknownFormat = errors.New("unknown snapshot format")

// FormatFromPath picks the snapshot format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Marshal encodes the report as an indented JSON snapshot.
// Every field maps to one key and lists become lists of objects.
func Marshal(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("failed to encode report snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a JSON snapshot. Keys missing from the snapshot keep
// the values New would give them.
func Unmarshal(data []byte) (*Report, error) {
	return Decode(data, FormatJSON)
}

// Decode decodes a snapshot in the given format
func Decode(data []byte, format Format) (*Report, error) {
	r := New()
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, r); err != nil {
			return nil, fmt.Errorf("failed to decode JSON snapshot: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, r); err != nil {
			return nil, fmt.Errorf("failed to decode YAML snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return r, nil
}
