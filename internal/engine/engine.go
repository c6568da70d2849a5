// Package engine wires the schema registry, validator cache, transformer,
// and compatibility resolver into one explicitly-constructed unit. There
// is no package-level state: callers build an Engine once at startup and
// share it; tests build isolated instances.
package engine

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/openintent/oiml-sub000/internal/compat"
	"github.com/openintent/oiml-sub000/internal/intent"
	"github.com/openintent/oiml-sub000/internal/ir"
	"github.com/openintent/oiml-sub000/internal/schema"
	"github.com/openintent/oiml-sub000/internal/transform"
	"github.com/openintent/oiml-sub000/schemas"
)

// Schema names of the three document families
const (
	SchemaIntent  = "oiml.intent"
	SchemaProject = "oiml.project"
	SchemaPlan    = "oiml.plan"
)

// Options configures an Engine
type Options struct {
	// SchemaPaths are extra directories searched for schema definitions,
	// in priority order, before the packaged copies. Workspace-local
	// paths belong first.
	SchemaPaths []string
	// Matrix is the loaded compatibility matrix; nil disables
	// compatibility queries
	Matrix *compat.Matrix
}

// Engine is the core OIML service: validate, transform, resolve
type Engine struct {
	registry  *schema.Registry
	cache     *schema.ValidatorCache
	documents *schema.DocumentValidator
	matrix    *compat.Matrix
	resolver  *compat.Resolver
}

// New builds an Engine. Registry sources are searched in the order given
// by opts.SchemaPaths, with the packaged schemas always last.
func New(opts Options) *Engine {
	sources := make([]schema.Source, 0, len(opts.SchemaPaths)+1)
	for _, p := range opts.SchemaPaths {
		sources = append(sources, schema.Source{Label: p, FS: os.DirFS(p)})
	}
	sources = append(sources, schema.Source{Label: "builtin", FS: schemas.FS})

	registry := schema.NewRegistry(sources...)
	cache := schema.NewValidatorCache()

	e := &Engine{
		registry:  registry,
		cache:     cache,
		documents: schema.NewDocumentValidator(registry, cache),
		matrix:    opts.Matrix,
	}
	if opts.Matrix != nil {
		e.resolver = compat.NewResolver(opts.Matrix)
	}
	return e
}

// Registry exposes the schema registry, mainly for introspection commands
func (e *Engine) Registry() *schema.Registry { return e.registry }

// Cache exposes the validator cache, mainly for stats
func (e *Engine) Cache() *schema.ValidatorCache { return e.cache }

// ValidationResponse is the wire-shaped result of validating a document
type ValidationResponse struct {
	Valid         bool              `json:"valid"`
	Message       string            `json:"message,omitempty"`
	SchemaVersion string            `json:"schemaVersion,omitempty"`
	Errors        []string          `json:"errors,omitempty"`
	IR            []json.RawMessage `json:"ir,omitempty"`
	IRAvailable   bool              `json:"irAvailable"`
	IntentID      string            `json:"intentId,omitempty"`
	Diagnostics   []string          `json:"diagnostics,omitempty"`
}

// ValidateIntent validates a parsed intent document and, when it is
// valid, lowers it to IR. User-input problems land in the response;
// broken schema infrastructure comes back as an error.
func (e *Engine) ValidateIntent(obj map[string]any, ctx transform.Context) (*ValidationResponse, error) {
	res, err := e.documents.Validate(SchemaIntent, obj)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		return invalidResponse(res), nil
	}

	doc, err := intent.Decode(obj)
	if err != nil {
		return nil, err
	}

	lowered := transform.Transform(doc, ctx)
	if !lowered.OK() {
		errs := make([]string, len(lowered.Errors))
		for i, se := range lowered.Errors {
			errs[i] = se.Error()
		}
		return &ValidationResponse{
			Valid:         false,
			SchemaVersion: res.SchemaVersion,
			Errors:        errs,
		}, nil
	}

	resp := &ValidationResponse{
		Valid:         true,
		Message:       "intent document is valid",
		SchemaVersion: res.SchemaVersion,
		IRAvailable:   lowered.Transformed(),
		IntentID:      res.DocumentID,
	}
	for _, d := range lowered.Diagnostics {
		resp.Diagnostics = append(resp.Diagnostics, d.Path+": "+d.Message)
	}
	for _, node := range lowered.Nodes {
		raw, err := ir.MarshalNode(node)
		if err != nil {
			return nil, fmt.Errorf("encode IR: %w", err)
		}
		resp.IR = append(resp.IR, raw)
	}
	return resp, nil
}

// ValidateProject validates a parsed project manifest
func (e *Engine) ValidateProject(obj map[string]any) (*ValidationResponse, error) {
	return e.validateDocument(SchemaProject, obj, "project manifest is valid")
}

// ValidatePlan validates a parsed change plan
func (e *Engine) ValidatePlan(obj map[string]any) (*ValidationResponse, error) {
	return e.validateDocument(SchemaPlan, obj, "plan is valid")
}

func (e *Engine) validateDocument(schemaName string, obj map[string]any, message string) (*ValidationResponse, error) {
	res, err := e.documents.Validate(schemaName, obj)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		return invalidResponse(res), nil
	}
	return &ValidationResponse{
		Valid:         true,
		Message:       message,
		SchemaVersion: res.SchemaVersion,
		IntentID:      res.DocumentID,
	}, nil
}

func invalidResponse(res *schema.Result) *ValidationResponse {
	return &ValidationResponse{
		Valid:         false,
		SchemaVersion: res.SchemaVersion,
		Errors:        res.Errors,
	}
}

// ResolveCompatibility answers a template-compatibility query. It fails
// only when no matrix is loaded or the matrix itself is malformed.
func (e *Engine) ResolveCompatibility(oimlVersion, framework, frameworkVersion, category string) (*compat.Resolution, error) {
	if e.resolver == nil {
		return nil, fmt.Errorf("no compatibility matrix loaded")
	}
	return e.resolver.Resolve(oimlVersion, framework, frameworkVersion, category)
}
