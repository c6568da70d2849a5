package ir

// NodeKind identifies an IR node variant
type NodeKind int

const (
	NodeEntity NodeKind = iota
	NodeFieldAddition
	NodeRelation
	NodeEndpoint
	NodeCapability
)

// String returns the string representation of the node kind
func (k NodeKind) String() string {
	switch k {
	case NodeEntity:
		return "entity"
	case NodeFieldAddition:
		return "field_addition"
	case NodeRelation:
		return "relation"
	case NodeEndpoint:
		return "endpoint"
	case NodeCapability:
		return "capability"
	default:
		return "unknown"
	}
}

// Node is a single lowered IR element
type Node interface {
	NodeKind() NodeKind
}

// Field is the fully resolved representation of one entity field
type Field struct {
	Name       string
	Type       FieldType
	Presence   Presence
	Default    DefaultValue // set iff Presence is OptionalWithDefault
	Generated  *Generated
	Unique     bool
	PrimaryKey bool
	MaxLength  *int
}

// Entity is a lowered add_entity intent
type Entity struct {
	Name   string
	Scope  string
	Fields []Field
}

func (Entity) NodeKind() NodeKind { return NodeEntity }

// FieldAddition is a lowered add_field intent: one new field on an
// already existing entity
type FieldAddition struct {
	Entity string
	Scope  string
	Field  Field
}

func (FieldAddition) NodeKind() NodeKind { return NodeFieldAddition }

// Relation is a lowered add_relation intent
type Relation struct {
	From        string
	To          string
	Scope       string
	Cardinality Cardinality
	Name        string
	ForeignKey  string
	OnDelete    *CascadeAction
	Reverse     *ReverseRef
}

func (Relation) NodeKind() NodeKind { return NodeRelation }

// Endpoint is a lowered add_endpoint intent
type Endpoint struct {
	Method      string
	Path        string
	Scope       string
	Handler     string
	Description string
}

func (Endpoint) NodeKind() NodeKind { return NodeEndpoint }

// Capability is a lowered add_capability intent
type Capability struct {
	Name   string
	Scope  string
	Config map[string]any
}

func (Capability) NodeKind() NodeKind { return NodeCapability }
