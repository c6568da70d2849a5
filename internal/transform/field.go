package transform

import (
	"fmt"

	"github.com/openintent/oiml-sub000/internal/intent"
	"github.com/openintent/oiml-sub000/internal/ir"
)

// lowerField resolves one field specification into its IR form: exactly
// one type variant, tri-state presence, and explicit default/generated
// semantics.
func lowerField(spec intent.FieldSpec, path string) (ir.Field, []StructuralError) {
	var errs []StructuralError

	fieldType, typeErrs := lowerFieldType(spec, path)
	errs = append(errs, typeErrs...)

	presence, def, presErrs := lowerPresence(spec, fieldType, path)
	errs = append(errs, presErrs...)

	generated, genErrs := lowerGenerated(spec, path)
	errs = append(errs, genErrs...)

	if len(errs) > 0 {
		return ir.Field{}, errs
	}

	field := ir.Field{
		Name:       spec.Name,
		Type:       fieldType,
		Presence:   presence,
		Default:    def,
		Generated:  generated,
		Unique:     spec.Unique,
		PrimaryKey: spec.PrimaryKey,
		MaxLength:  spec.MaxLength,
	}

	inferGeneration(&field)
	return field, nil
}

// lowerFieldType picks the single FieldType variant for a spec and checks
// the presence rules of the type-specific payloads
func lowerFieldType(spec intent.FieldSpec, path string) (ir.FieldType, []StructuralError) {
	var errs []StructuralError

	if spec.ArrayType != "" && spec.Type != "array" {
		errs = append(errs, StructuralError{
			Path:    path + ".array_type",
			Message: `array_type is only allowed when type is "array"`,
		})
	}
	if len(spec.EnumValues) > 0 && spec.Type != "enum" && !(spec.Type == "array" && spec.ArrayType == "enum") {
		errs = append(errs, StructuralError{
			Path:    path + ".enum_values",
			Message: `enum_values is only allowed when type is "enum"`,
		})
	}

	if spec.Relation != nil {
		ref, refErrs := lowerReference(spec, path)
		errs = append(errs, refErrs...)
		if len(errs) > 0 {
			return nil, errs
		}
		return ref, nil
	}

	var fieldType ir.FieldType
	switch spec.Type {
	case "array":
		if spec.ArrayType == "" {
			errs = append(errs, StructuralError{
				Path:    path + ".array_type",
				Message: `array fields require array_type`,
			})
			break
		}
		elem, elemErrs := lowerElementType(spec, path)
		errs = append(errs, elemErrs...)
		if elem != nil {
			fieldType = ir.Array{Element: elem}
		}
	case "enum":
		if len(spec.EnumValues) == 0 {
			errs = append(errs, StructuralError{
				Path:    path + ".enum_values",
				Message: `enum fields require non-empty enum_values`,
			})
			break
		}
		fieldType = ir.Enum{Name: spec.Name, Values: spec.EnumValues, Source: "inline"}
	case "json":
		fieldType = ir.JSON{SchemaRef: spec.SchemaRef}
	default:
		scalar, err := ir.ParseScalarType(spec.Type)
		if err != nil {
			errs = append(errs, StructuralError{Path: path + ".type", Message: err.Error()})
			break
		}
		fieldType = ir.Scalar{Type: scalar}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return fieldType, nil
}

// lowerElementType resolves the element type of an array field
func lowerElementType(spec intent.FieldSpec, path string) (ir.FieldType, []StructuralError) {
	switch spec.ArrayType {
	case "enum":
		if len(spec.EnumValues) == 0 {
			return nil, []StructuralError{{
				Path:    path + ".enum_values",
				Message: `enum array elements require non-empty enum_values`,
			}}
		}
		return ir.Enum{Name: spec.Name, Values: spec.EnumValues, Source: "inline"}, nil
	case "json":
		return ir.JSON{SchemaRef: spec.SchemaRef}, nil
	case "array":
		return nil, []StructuralError{{
			Path:    path + ".array_type",
			Message: "nested arrays are not supported",
		}}
	default:
		scalar, err := ir.ParseScalarType(spec.ArrayType)
		if err != nil {
			return nil, []StructuralError{{Path: path + ".array_type", Message: err.Error()}}
		}
		return ir.Scalar{Type: scalar}, nil
	}
}

// lowerReference resolves a field-level relation into a Reference and
// enforces the cardinality invariants
func lowerReference(spec intent.FieldSpec, path string) (ir.FieldType, []StructuralError) {
	var errs []StructuralError
	rel := spec.Relation
	relPath := path + ".relation"

	card, err := ir.ParseCardinality(rel.Kind)
	if err != nil {
		return nil, []StructuralError{{Path: relPath + ".kind", Message: err.Error()}}
	}

	if card.IsToOne() && rel.ForeignKey == "" {
		errs = append(errs, StructuralError{
			Path:    relPath + ".foreign_key",
			Message: fmt.Sprintf("%s relations require a foreign_key", card),
		})
	}

	onDelete, onDeleteErrs := lowerOnDelete(rel.OnDelete, relPath)
	errs = append(errs, onDeleteErrs...)

	reverse, revErrs := lowerReverse(rel.Reverse, card, relPath)
	errs = append(errs, revErrs...)

	if len(errs) > 0 {
		return nil, errs
	}

	nullable := spec.Required == nil || !*spec.Required
	return ir.Reference{
		TargetEntity: rel.Target,
		TargetField:  rel.TargetField,
		Cardinality:  card,
		Nullable:     nullable,
		RelationName: rel.Name,
		ForeignKey:   rel.ForeignKey,
		OnDelete:     onDelete,
		Reverse:      reverse,
	}, nil
}

func lowerOnDelete(raw, relPath string) (*ir.CascadeAction, []StructuralError) {
	if raw == "" {
		return nil, nil
	}
	action, err := ir.ParseCascadeAction(raw)
	if err != nil {
		return nil, []StructuralError{{Path: relPath + ".on_delete", Message: err.Error()}}
	}
	return &action, nil
}

// lowerReverse checks that a declared reverse side is the cardinality
// inverse of the forward side
func lowerReverse(rev *intent.ReverseSpec, forward ir.Cardinality, relPath string) (*ir.ReverseRef, []StructuralError) {
	if rev == nil {
		return nil, nil
	}

	card, err := ir.ParseCardinality(rev.Kind)
	if err != nil {
		return nil, []StructuralError{{Path: relPath + ".reverse.kind", Message: err.Error()}}
	}

	if card != forward.Inverse() {
		return nil, []StructuralError{{
			Path: relPath + ".reverse.kind",
			Message: fmt.Sprintf("reverse cardinality %s is not the inverse of %s (expected %s)",
				card, forward, forward.Inverse()),
		}}
	}
	return &ir.ReverseRef{Cardinality: card, Name: rev.Name}, nil
}

// lowerPresence maps the required/default pair onto the presence tri-state
func lowerPresence(spec intent.FieldSpec, fieldType ir.FieldType, path string) (ir.Presence, ir.DefaultValue, []StructuralError) {
	required := spec.Required != nil && *spec.Required

	if spec.Default == nil {
		if required {
			return ir.Required, nil, nil
		}
		return ir.Optional, nil, nil
	}

	if required {
		return ir.Required, nil, []StructuralError{{
			Path:    path + ".default",
			Message: "required fields cannot declare a default",
		}}
	}
	return ir.OptionalWithDefault, lowerDefault(spec.Default, fieldType), nil
}

// lowerDefault maps a raw default value onto its IR form. The well-known
// symbolic defaults resolve to their strategies when the field type fits;
// everything else stays a literal.
func lowerDefault(raw any, fieldType ir.FieldType) ir.DefaultValue {
	s, isString := raw.(string)
	if !isString || fieldType == nil || fieldType.Kind() != ir.TypeScalar {
		return ir.Literal{Value: raw}
	}

	scalar := fieldType.(ir.Scalar).Type
	switch {
	case s == "now" && (scalar == ir.ScalarTimestamp || scalar == ir.ScalarDate):
		return ir.Now{}
	case (s == "uuid" || s == "uuid_v4") && scalar == ir.ScalarUUID:
		return ir.UUIDv4{}
	case s == "auto_increment" && (scalar == ir.ScalarInt || scalar == ir.ScalarBigInt):
		return ir.AutoIncrement{}
	default:
		return ir.Literal{Value: raw}
	}
}

// lowerGenerated parses an explicit generation strategy
func lowerGenerated(spec intent.FieldSpec, path string) (*ir.Generated, []StructuralError) {
	if spec.Generated == nil {
		return nil, nil
	}

	strategy, err := ir.ParseGenerationStrategy(spec.Generated.Strategy)
	if err != nil {
		return nil, []StructuralError{{Path: path + ".generated.strategy", Message: err.Error()}}
	}

	if strategy == ir.GenerateCustom && spec.Generated.Expr == "" {
		return nil, []StructuralError{{
			Path:    path + ".generated.expr",
			Message: "custom generation requires an expr",
		}}
	}
	if strategy != ir.GenerateCustom && spec.Generated.Expr != "" {
		return nil, []StructuralError{{
			Path:    path + ".generated.expr",
			Message: "expr is only allowed with the custom strategy",
		}}
	}

	return &ir.Generated{Strategy: strategy, Expr: spec.Generated.Expr}, nil
}

// inferGeneration fills in the conventional generation strategy for
// primary keys that declare neither a default nor an explicit strategy:
// uuid primary keys generate UUIDs, integer primary keys auto-increment.
func inferGeneration(field *ir.Field) {
	if !field.PrimaryKey || field.Generated != nil || field.Default != nil {
		return
	}
	scalar, ok := field.Type.(ir.Scalar)
	if !ok {
		return
	}

	switch scalar.Type {
	case ir.ScalarUUID:
		field.Generated = &ir.Generated{Strategy: ir.GenerateUUID}
	case ir.ScalarInt, ir.ScalarBigInt:
		field.Generated = &ir.Generated{Strategy: ir.GenerateAutoIncrement}
	}
}
