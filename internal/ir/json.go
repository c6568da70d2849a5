package ir

import (
	"fmt"

	"github.com/goccy/go-json"
)

// MarshalNode encodes an IR node for transport, tagging every variant
// with its kind so consumers can dispatch without reflection. Map-based
// construction keeps the output deterministic (keys marshal sorted).
func MarshalNode(n Node) ([]byte, error) {
	obj, err := nodeObject(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(obj)
}

func nodeObject(n Node) (map[string]any, error) {
	switch node := n.(type) {
	case Entity:
		fields := make([]map[string]any, 0, len(node.Fields))
		for _, f := range node.Fields {
			fields = append(fields, fieldObject(f))
		}
		return withScope(map[string]any{
			"kind":   NodeEntity.String(),
			"name":   node.Name,
			"fields": fields,
		}, node.Scope), nil
	case FieldAddition:
		return withScope(map[string]any{
			"kind":   NodeFieldAddition.String(),
			"entity": node.Entity,
			"field":  fieldObject(node.Field),
		}, node.Scope), nil
	case Relation:
		obj := withScope(map[string]any{
			"kind":        NodeRelation.String(),
			"from":        node.From,
			"to":          node.To,
			"cardinality": node.Cardinality.String(),
		}, node.Scope)
		if node.Name != "" {
			obj["name"] = node.Name
		}
		if node.ForeignKey != "" {
			obj["foreign_key"] = node.ForeignKey
		}
		if node.OnDelete != nil {
			obj["on_delete"] = node.OnDelete.String()
		}
		if node.Reverse != nil {
			obj["reverse"] = reverseObject(node.Reverse)
		}
		return obj, nil
	case Endpoint:
		obj := withScope(map[string]any{
			"kind":   NodeEndpoint.String(),
			"method": node.Method,
			"path":   node.Path,
		}, node.Scope)
		if node.Handler != "" {
			obj["handler"] = node.Handler
		}
		if node.Description != "" {
			obj["description"] = node.Description
		}
		return obj, nil
	case Capability:
		obj := withScope(map[string]any{
			"kind": NodeCapability.String(),
			"name": node.Name,
		}, node.Scope)
		if len(node.Config) > 0 {
			obj["config"] = node.Config
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unknown IR node type %T", n)
	}
}

func withScope(obj map[string]any, scope string) map[string]any {
	if scope != "" {
		obj["scope"] = scope
	}
	return obj
}

func fieldObject(f Field) map[string]any {
	obj := map[string]any{
		"name":     f.Name,
		"type":     typeObject(f.Type),
		"presence": f.Presence.String(),
	}
	if f.Default != nil {
		obj["default"] = defaultObject(f.Default)
	}
	if f.Generated != nil {
		gen := map[string]any{"strategy": f.Generated.Strategy.String()}
		if f.Generated.Expr != "" {
			gen["expr"] = f.Generated.Expr
		}
		obj["generated"] = gen
	}
	if f.Unique {
		obj["unique"] = true
	}
	if f.PrimaryKey {
		obj["primary_key"] = true
	}
	if f.MaxLength != nil {
		obj["max_length"] = *f.MaxLength
	}
	return obj
}

func typeObject(t FieldType) map[string]any {
	switch ft := t.(type) {
	case Scalar:
		return map[string]any{"kind": "scalar", "scalar": ft.Type.String()}
	case Enum:
		obj := map[string]any{"kind": "enum", "name": ft.Name, "values": ft.Values}
		if ft.Source != "" {
			obj["source"] = ft.Source
		}
		return obj
	case Reference:
		obj := map[string]any{
			"kind":          "reference",
			"target_entity": ft.TargetEntity,
			"cardinality":   ft.Cardinality.String(),
			"nullable":      ft.Nullable,
		}
		if ft.TargetField != "" {
			obj["target_field"] = ft.TargetField
		}
		if ft.RelationName != "" {
			obj["relation_name"] = ft.RelationName
		}
		if ft.ForeignKey != "" {
			obj["foreign_key"] = ft.ForeignKey
		}
		if ft.OnDelete != nil {
			obj["on_delete"] = ft.OnDelete.String()
		}
		if ft.Reverse != nil {
			obj["reverse"] = reverseObject(ft.Reverse)
		}
		return obj
	case JSON:
		obj := map[string]any{"kind": "json"}
		if ft.SchemaRef != "" {
			obj["schema_ref"] = ft.SchemaRef
		}
		return obj
	case Array:
		return map[string]any{"kind": "array", "element": typeObject(ft.Element)}
	default:
		return map[string]any{"kind": "unknown"}
	}
}

func defaultObject(d DefaultValue) map[string]any {
	switch dv := d.(type) {
	case Literal:
		return map[string]any{"kind": "literal", "value": dv.Value}
	case Now:
		return map[string]any{"kind": "now"}
	case UUIDv4:
		return map[string]any{"kind": "uuid_v4"}
	case AutoIncrement:
		return map[string]any{"kind": "auto_increment"}
	default:
		return map[string]any{"kind": "unknown"}
	}
}

func reverseObject(r *ReverseRef) map[string]any {
	obj := map[string]any{"cardinality": r.Cardinality.String()}
	if r.Name != "" {
		obj["name"] = r.Name
	}
	return obj
}
