// Package ir defines the canonical intermediate representation produced by
// lowering intent documents. It is the resolved, generator-independent form:
// every field carries exactly one type variant, presence is explicit, and
// relation wiring (cardinality, foreign keys, inverses) is fully resolved.
package ir

import "fmt"

// ScalarType represents the built-in scalar field types
type ScalarType int

const (
	ScalarString ScalarType = iota
	ScalarText
	ScalarInt
	ScalarBigInt
	ScalarFloat
	ScalarDecimal
	ScalarBool
	ScalarTimestamp
	ScalarDate
	ScalarUUID
	ScalarEmail
	ScalarURL
)

// String returns the string representation of the scalar type
func (s ScalarType) String() string {
	switch s {
	case ScalarString:
		return "string"
	case ScalarText:
		return "text"
	case ScalarInt:
		return "int"
	case ScalarBigInt:
		return "bigint"
	case ScalarFloat:
		return "float"
	case ScalarDecimal:
		return "decimal"
	case ScalarBool:
		return "bool"
	case ScalarTimestamp:
		return "timestamp"
	case ScalarDate:
		return "date"
	case ScalarUUID:
		return "uuid"
	case ScalarEmail:
		return "email"
	case ScalarURL:
		return "url"
	default:
		return "unknown"
	}
}

// ParseScalarType converts a string to a ScalarType
func ParseScalarType(s string) (ScalarType, error) {
	switch s {
	case "string":
		return ScalarString, nil
	case "text":
		return ScalarText, nil
	case "int":
		return ScalarInt, nil
	case "bigint":
		return ScalarBigInt, nil
	case "float":
		return ScalarFloat, nil
	case "decimal":
		return ScalarDecimal, nil
	case "bool", "boolean":
		return ScalarBool, nil
	case "timestamp", "datetime":
		return ScalarTimestamp, nil
	case "date":
		return ScalarDate, nil
	case "uuid":
		return ScalarUUID, nil
	case "email":
		return ScalarEmail, nil
	case "url":
		return ScalarURL, nil
	default:
		return 0, fmt.Errorf("unknown scalar type: %s", s)
	}
}

// Cardinality represents the cardinality of a relation
type Cardinality int

const (
	OneToOne Cardinality = iota
	ManyToOne
	OneToMany
	ManyToMany
)

// String returns the string representation of the cardinality
func (c Cardinality) String() string {
	switch c {
	case OneToOne:
		return "one_to_one"
	case ManyToOne:
		return "many_to_one"
	case OneToMany:
		return "one_to_many"
	case ManyToMany:
		return "many_to_many"
	default:
		return "unknown"
	}
}

// ParseCardinality converts a string to a Cardinality
func ParseCardinality(s string) (Cardinality, error) {
	switch s {
	case "one_to_one":
		return OneToOne, nil
	case "many_to_one":
		return ManyToOne, nil
	case "one_to_many":
		return OneToMany, nil
	case "many_to_many":
		return ManyToMany, nil
	default:
		return 0, fmt.Errorf("unknown cardinality: %s", s)
	}
}

// Inverse returns the cardinality of the opposite side of a relation
func (c Cardinality) Inverse() Cardinality {
	switch c {
	case ManyToOne:
		return OneToMany
	case OneToMany:
		return ManyToOne
	default:
		// one_to_one and many_to_many are their own inverses
		return c
	}
}

// IsToOne reports whether the relation points at a single row and
// therefore requires a foreign key on the owning side
func (c Cardinality) IsToOne() bool {
	return c == OneToOne || c == ManyToOne
}

// CascadeAction represents the on-delete behavior of a reference
type CascadeAction int

const (
	CascadeRestrict CascadeAction = iota
	CascadeCascade
	CascadeSetNull
	CascadeNoAction
)

// String returns the string representation of the cascade action
func (a CascadeAction) String() string {
	switch a {
	case CascadeRestrict:
		return "restrict"
	case CascadeCascade:
		return "cascade"
	case CascadeSetNull:
		return "set_null"
	case CascadeNoAction:
		return "no_action"
	default:
		return "unknown"
	}
}

// ParseCascadeAction converts a string to a CascadeAction
func ParseCascadeAction(s string) (CascadeAction, error) {
	switch s {
	case "restrict":
		return CascadeRestrict, nil
	case "cascade":
		return CascadeCascade, nil
	case "set_null":
		return CascadeSetNull, nil
	case "no_action":
		return CascadeNoAction, nil
	default:
		return 0, fmt.Errorf("unknown cascade action: %s", s)
	}
}

// TypeKind identifies a FieldType variant
type TypeKind int

const (
	TypeScalar TypeKind = iota
	TypeEnum
	TypeReference
	TypeJSON
	TypeArray
)

// FieldType is the closed set of resolved field types. Exactly one
// variant applies per field.
type FieldType interface {
	Kind() TypeKind
	String() string
}

// Scalar is a plain scalar field type
type Scalar struct {
	Type ScalarType
}

func (s Scalar) Kind() TypeKind { return TypeScalar }
func (s Scalar) String() string { return s.Type.String() }

// Enum is a named enumeration type
type Enum struct {
	Name   string
	Values []string
	// Source records where the enum was declared, for generator diagnostics
	Source string
}

func (e Enum) Kind() TypeKind { return TypeEnum }
func (e Enum) String() string { return fmt.Sprintf("enum %s%v", e.Name, e.Values) }

// ReverseRef describes the inverse side of a reference
type ReverseRef struct {
	Cardinality Cardinality
	Name        string
}

// Reference is a resolved relation to another entity
type Reference struct {
	TargetEntity string
	TargetField  string // referenced field on the target; empty means its primary key
	Cardinality  Cardinality
	Nullable     bool
	RelationName string
	ForeignKey   string // set for to-one cardinalities
	OnDelete     *CascadeAction
	Reverse      *ReverseRef
}

func (r Reference) Kind() TypeKind { return TypeReference }
func (r Reference) String() string {
	return fmt.Sprintf("ref %s (%s)", r.TargetEntity, r.Cardinality)
}

// JSON is an opaque structured value, optionally constrained by a schema
type JSON struct {
	SchemaRef string
}

func (j JSON) Kind() TypeKind { return TypeJSON }
func (j JSON) String() string { return "json" }

// Array is an ordered collection of a single element type
type Array struct {
	Element FieldType
}

func (a Array) Kind() TypeKind { return TypeArray }
func (a Array) String() string { return "array<" + a.Element.String() + ">" }
