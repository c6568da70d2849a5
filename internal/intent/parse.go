package intent

import (
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format identifies the wire format of a raw intent document
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat normalizes a format tag
func ParseFormat(s string) (Format, error) {
	switch s {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported document format: %s", s)
	}
}

// Parse turns raw document text into a plain nested object suitable for
// schema validation. No structural checks happen here; malformed syntax
// is the only failure mode.
func Parse(text []byte, format Format) (map[string]any, error) {
	var obj map[string]any

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(text, &obj); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(text, &obj); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported document format: %s", format)
	}

	if obj == nil {
		obj = map[string]any{}
	}
	return obj, nil
}

// Decode converts a validated plain object into a typed Document.
// It round-trips through JSON so that YAML- and JSON-sourced objects
// decode identically.
func Decode(obj map[string]any) (*Document, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}
