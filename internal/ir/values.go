package ir

import "fmt"

// DefaultKind identifies a DefaultValue variant
type DefaultKind int

const (
	DefaultLiteral DefaultKind = iota
	DefaultNow
	DefaultUUIDv4
	DefaultAutoIncrement
)

// DefaultValue is a value supplied when none is given. It is distinct from
// generation: a default fills a gap, a generated value is computed by a
// strategy regardless of input.
type DefaultValue interface {
	DefaultKind() DefaultKind
	String() string
}

// Literal is a fixed default value
type Literal struct {
	Value any
}

func (l Literal) DefaultKind() DefaultKind { return DefaultLiteral }
func (l Literal) String() string           { return fmt.Sprintf("%v", l.Value) }

// Now defaults to the current timestamp
type Now struct{}

func (Now) DefaultKind() DefaultKind { return DefaultNow }
func (Now) String() string           { return "now" }

// UUIDv4 defaults to a fresh random UUID
type UUIDv4 struct{}

func (UUIDv4) DefaultKind() DefaultKind { return DefaultUUIDv4 }
func (UUIDv4) String() string           { return "uuid_v4" }

// AutoIncrement defaults to the next value of a storage-side sequence
type AutoIncrement struct{}

func (AutoIncrement) DefaultKind() DefaultKind { return DefaultAutoIncrement }
func (AutoIncrement) String() string           { return "auto_increment" }

// GenerationStrategy identifies how a generated field obtains its value
type GenerationStrategy int

const (
	GenerateAutoIncrement GenerationStrategy = iota
	GenerateUUID
	GenerateTimestamp
	GenerateCustom
)

// String returns the string representation of the strategy
func (s GenerationStrategy) String() string {
	switch s {
	case GenerateAutoIncrement:
		return "auto_increment"
	case GenerateUUID:
		return "uuid"
	case GenerateTimestamp:
		return "timestamp"
	case GenerateCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ParseGenerationStrategy converts a string to a GenerationStrategy
func ParseGenerationStrategy(s string) (GenerationStrategy, error) {
	switch s {
	case "auto_increment":
		return GenerateAutoIncrement, nil
	case "uuid":
		return GenerateUUID, nil
	case "timestamp":
		return GenerateTimestamp, nil
	case "custom":
		return GenerateCustom, nil
	default:
		return 0, fmt.Errorf("unknown generation strategy: %s", s)
	}
}

// Generated declares that a field's value is computed by a strategy
type Generated struct {
	Strategy GenerationStrategy
	// Expr carries the expression for GenerateCustom
	Expr string
}

// Presence is the tri-state requiredness of a field
type Presence int

const (
	Required Presence = iota
	Optional
	OptionalWithDefault
)

// String returns the string representation of the presence
func (p Presence) String() string {
	switch p {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case OptionalWithDefault:
		return "optional_with_default"
	default:
		return "unknown"
	}
}
