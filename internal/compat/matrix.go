package compat

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// TemplateVersion is one versioned template pack inside a matrix entry
type TemplateVersion struct {
	TemplateVersion string            `json:"template_version"`
	PackName        string            `json:"pack_name"`
	Compat          map[string]string `json:"compat"`
	BreakingChanges []string          `json:"breaking_changes,omitempty"`
}

// Entry groups the template versions available for one framework/category
type Entry struct {
	Framework string            `json:"framework"`
	Category  string            `json:"category"`
	Versions  []TemplateVersion `json:"versions"`
}

// Matrix is the loaded compatibility matrix. It is immutable after
// loading; reloading means building a new Matrix.
type Matrix struct {
	entries []Entry
}

// NewMatrix builds a matrix from already-decoded entries
func NewMatrix(entries []Entry) *Matrix {
	return &Matrix{entries: entries}
}

// LoadMatrix reads a compatibility matrix from a JSON file. It is meant
// to run once at startup; the result is shared read-only state.
func LoadMatrix(path string) (*Matrix, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read compatibility matrix: %w", err)
	}
	return ParseMatrix(raw)
}

// ParseMatrix decodes a compatibility matrix from JSON bytes
func ParseMatrix(raw []byte) (*Matrix, error) {
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse compatibility matrix: %w", err)
	}

	for i, e := range entries {
		if e.Framework == "" {
			return nil, fmt.Errorf("parse compatibility matrix: entry %d has no framework", i)
		}
	}
	return NewMatrix(entries), nil
}

// Frameworks returns every framework name in the matrix, deduplicated,
// in declaration order
func (m *Matrix) Frameworks() []string {
	seen := make(map[string]bool)
	var names []string
	for _, e := range m.entries {
		if !seen[e.Framework] {
			seen[e.Framework] = true
			names = append(names, e.Framework)
		}
	}
	return names
}

// Entries returns the matrix entries matching a framework and, when
// category is non-empty, that category. Declaration order is preserved.
func (m *Matrix) Entries(framework, category string) []Entry {
	var out []Entry
	for _, e := range m.entries {
		if e.Framework != framework {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Len returns the number of matrix entries
func (m *Matrix) Len() int { return len(m.entries) }
