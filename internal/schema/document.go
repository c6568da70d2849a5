package schema

import "fmt"

// Result is the outcome of validating one document
type Result struct {
	Valid         bool
	SchemaName    string
	SchemaVersion string
	Errors        []string
	// DocumentID is a short content-derived identifier ("sha256:...")
	// set only on success. Callers use it to deduplicate downstream work.
	DocumentID string
}

// DocumentValidator validates parsed documents against versioned schemas.
// The same path serves every document family (oiml.intent, oiml.project,
// oiml.plan); only the schema name differs.
type DocumentValidator struct {
	registry *Registry
	cache    *ValidatorCache
}

// NewDocumentValidator creates a document validator backed by the given
// registry and validator cache
func NewDocumentValidator(registry *Registry, cache *ValidatorCache) *DocumentValidator {
	return &DocumentValidator{registry: registry, cache: cache}
}

// Validate checks a plain parsed object against the named schema at the
// version the document itself declares.
//
// User-input problems (missing version, schema violations) come back as an
// invalid Result. Infrastructure problems (schema not found, incomplete,
// or failing to compile) come back as an error: they mean the deployment
// is broken, not the document.
func (dv *DocumentValidator) Validate(schemaName string, obj map[string]any) (*Result, error) {
	version, ok := obj["version"].(string)
	if !ok || version == "" {
		return &Result{
			Valid:      false,
			SchemaName: schemaName,
			Errors:     []string{`version: missing required property "version"`},
		}, nil
	}

	loc, err := dv.registry.Resolve(schemaName, version)
	if err != nil {
		return nil, err
	}

	validator, err := dv.cache.Compile(loc.Bytes, schemaName, version)
	if err != nil {
		return nil, err
	}

	violations := validator.Validate(obj)
	if len(violations) > 0 {
		errs := make([]string, len(violations))
		for i, v := range violations {
			errs[i] = v.String()
		}
		return &Result{
			Valid:         false,
			SchemaName:    schemaName,
			SchemaVersion: version,
			Errors:        errs,
		}, nil
	}

	id, err := ContentID(obj)
	if err != nil {
		return nil, fmt.Errorf("derive document id: %w", err)
	}

	return &Result{
		Valid:         true,
		SchemaName:    schemaName,
		SchemaVersion: version,
		DocumentID:    id,
	}, nil
}
