package schema

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// SchemaFileName is the artifact every schema version directory must contain
const SchemaFileName = "schema.json"

// Source is one place the registry searches for schema definitions.
// Label is used in error messages; FS is the rooted filesystem to search.
type Source struct {
	Label string
	FS    fs.FS
}

// Location is a resolved schema artifact
type Location struct {
	Source  string // label of the source that matched
	Dir     string // directory of the schema version, relative to the source
	Path    string // path of the schema file, relative to the source
	Bytes   []byte // raw schema definition
	Name    string
	Version string
}

// NotFoundError reports that no source contains the requested schema.
// Every searched location is listed so a missing deployment is obvious.
type NotFoundError struct {
	Name     string
	Version  string
	Searched []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("schema %s@%s not found (searched: %s)",
		e.Name, e.Version, strings.Join(e.Searched, ", "))
}

// IncompleteError reports that a schema version directory exists but is
// missing required files.
type IncompleteError struct {
	Name    string
	Version string
	Dir     string
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("schema %s@%s at %s is incomplete (missing: %s)",
		e.Name, e.Version, e.Dir, strings.Join(e.Missing, ", "))
}

// Registry resolves (schema name, version) pairs against an ordered list
// of sources. Earlier sources win: workspace-local copies are expected to
// be registered before packaged ones.
type Registry struct {
	sources []Source
}

// NewRegistry creates a registry searching the given sources in order
func NewRegistry(sources ...Source) *Registry {
	return &Registry{sources: sources}
}

// Sources returns the labels of every configured source, in search order
func (r *Registry) Sources() []string {
	labels := make([]string, 0, len(r.sources))
	for _, s := range r.sources {
		labels = append(labels, s.Label)
	}
	return labels
}

// Resolve finds the first source containing the schema and returns its
// location with the definition bytes already read. Misses are not cached;
// every call re-searches.
func (r *Registry) Resolve(name, version string) (*Location, error) {
	dir := path.Join(name, version)
	searched := make([]string, 0, len(r.sources))

	for _, src := range r.sources {
		searched = append(searched, src.Label+"/"+dir)

		info, err := fs.Stat(src.FS, dir)
		if err != nil || !info.IsDir() {
			continue
		}

		// The version directory exists in this source; it must be complete.
		schemaPath := path.Join(dir, SchemaFileName)
		raw, err := fs.ReadFile(src.FS, schemaPath)
		if err != nil {
			return nil, &IncompleteError{
				Name:    name,
				Version: version,
				Dir:     src.Label + "/" + dir,
				Missing: []string{SchemaFileName},
			}
		}

		return &Location{
			Source:  src.Label,
			Dir:     dir,
			Path:    schemaPath,
			Bytes:   raw,
			Name:    name,
			Version: version,
		}, nil
	}

	return nil, &NotFoundError{Name: name, Version: version, Searched: searched}
}

// Versions lists the available versions of a schema across all sources,
// first source wins on duplicates.
func (r *Registry) Versions(name string) []string {
	seen := make(map[string]bool)
	var versions []string

	for _, src := range r.sources {
		entries, err := fs.ReadDir(src.FS, name)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() && !seen[e.Name()] {
				seen[e.Name()] = true
				versions = append(versions, e.Name())
			}
		}
	}
	return versions
}
