package intent

import "fmt"

// Kind identifies the kind of a single intent inside a document.
// The set is closed: the transformer switches exhaustively over it.
type Kind int

const (
	KindAddEntity Kind = iota
	KindAddField
	KindAddRelation
	KindAddEndpoint
	KindAddCapability
)

// String returns the wire tag for the kind
func (k Kind) String() string {
	switch k {
	case KindAddEntity:
		return "add_entity"
	case KindAddField:
		return "add_field"
	case KindAddRelation:
		return "add_relation"
	case KindAddEndpoint:
		return "add_endpoint"
	case KindAddCapability:
		return "add_capability"
	default:
		return "unknown"
	}
}

// ParseKind converts a wire tag to a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "add_entity":
		return KindAddEntity, nil
	case "add_field":
		return KindAddField, nil
	case "add_relation":
		return KindAddRelation, nil
	case "add_endpoint":
		return KindAddEndpoint, nil
	case "add_capability":
		return KindAddCapability, nil
	default:
		return 0, fmt.Errorf("unknown intent kind: %s", s)
	}
}

// Kinds returns every supported kind tag, in declaration order
func Kinds() []string {
	return []string{
		KindAddEntity.String(),
		KindAddField.String(),
		KindAddRelation.String(),
		KindAddEndpoint.String(),
		KindAddCapability.String(),
	}
}
