// Package intent defines the OIML intent document model and parsing.
// An intent document is a declarative description of desired project
// changes: new entities, fields, relations, endpoints, and capabilities.
package intent

// Document is a parsed OIML intent document
type Document struct {
	Version    string         `json:"version" yaml:"version"`
	Type       string         `json:"type,omitempty" yaml:"type,omitempty"`
	AIContext  map[string]any `json:"ai_context,omitempty" yaml:"ai_context,omitempty"`
	Provenance map[string]any `json:"provenance,omitempty" yaml:"provenance,omitempty"`
	Intents    []Intent       `json:"intents" yaml:"intents"`
}

// Intent is a single declarative instruction inside a document.
// Kind selects the variant; only the fields of that variant are set.
type Intent struct {
	Kind  string `json:"kind" yaml:"kind"`
	Scope string `json:"scope,omitempty" yaml:"scope,omitempty"`

	// add_entity, add_field
	Entity string      `json:"entity,omitempty" yaml:"entity,omitempty"`
	Fields []FieldSpec `json:"fields,omitempty" yaml:"fields,omitempty"`
	Field  *FieldSpec  `json:"field,omitempty" yaml:"field,omitempty"`

	// add_relation
	Relation *RelationIntent `json:"relation,omitempty" yaml:"relation,omitempty"`

	// add_endpoint
	Method      string `json:"method,omitempty" yaml:"method,omitempty"`
	Path        string `json:"path,omitempty" yaml:"path,omitempty"`
	Handler     string `json:"handler,omitempty" yaml:"handler,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// add_capability
	Capability string         `json:"capability,omitempty" yaml:"capability,omitempty"`
	Config     map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// FieldSpec describes a single field of an entity
type FieldSpec struct {
	Name       string         `json:"name" yaml:"name"`
	Type       string         `json:"type" yaml:"type"`
	Required   *bool          `json:"required,omitempty" yaml:"required,omitempty"`
	Unique     bool           `json:"unique,omitempty" yaml:"unique,omitempty"`
	PrimaryKey bool           `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	Default    any            `json:"default,omitempty" yaml:"default,omitempty"`
	MaxLength  *int           `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	ArrayType  string         `json:"array_type,omitempty" yaml:"array_type,omitempty"`
	EnumValues []string       `json:"enum_values,omitempty" yaml:"enum_values,omitempty"`
	Relation   *RelationSpec  `json:"relation,omitempty" yaml:"relation,omitempty"`
	Generated  *GeneratedSpec `json:"generated,omitempty" yaml:"generated,omitempty"`
	SchemaRef  string         `json:"schema_ref,omitempty" yaml:"schema_ref,omitempty"`
}

// RelationSpec describes the relation attached to a field
type RelationSpec struct {
	Kind        string       `json:"kind" yaml:"kind"`
	Target      string       `json:"target" yaml:"target"`
	TargetField string       `json:"target_field,omitempty" yaml:"target_field,omitempty"`
	ForeignKey  string       `json:"foreign_key,omitempty" yaml:"foreign_key,omitempty"`
	Name        string       `json:"name,omitempty" yaml:"name,omitempty"`
	OnDelete    string       `json:"on_delete,omitempty" yaml:"on_delete,omitempty"`
	Reverse     *ReverseSpec `json:"reverse,omitempty" yaml:"reverse,omitempty"`
}

// ReverseSpec describes the inverse side of a relation
type ReverseSpec struct {
	Kind string `json:"kind" yaml:"kind"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// RelationIntent is the payload of an add_relation intent. It is a
// standalone relation between two entities rather than one attached
// to a field declaration.
type RelationIntent struct {
	From        string       `json:"from" yaml:"from"`
	To          string       `json:"to" yaml:"to"`
	Kind        string       `json:"kind" yaml:"kind"`
	ForeignKey  string       `json:"foreign_key,omitempty" yaml:"foreign_key,omitempty"`
	Name        string       `json:"name,omitempty" yaml:"name,omitempty"`
	OnDelete    string       `json:"on_delete,omitempty" yaml:"on_delete,omitempty"`
	Reverse     *ReverseSpec `json:"reverse,omitempty" yaml:"reverse,omitempty"`
}

// GeneratedSpec declares an explicit value-generation strategy for a field
type GeneratedSpec struct {
	Strategy string `json:"strategy" yaml:"strategy"`
	Expr     string `json:"expr,omitempty" yaml:"expr,omitempty"`
}
