package schema

import (
	"errors"
	"strings"
	"testing"
)

func mustCompile(t *testing.T, raw string) *Validator {
	t.Helper()
	v, err := Compile([]byte(raw))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return v
}

func TestCompileRejectsMalformedSchemas(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"invalid json", `{`},
		{"unsupported type", `{"type": "quaternion"}`},
		{"oneOf without discriminator", `{"oneOf": [{"type": "object"}]}`},
		{"branch without const tag", `{
			"discriminator": "kind",
			"oneOf": [{"type": "object", "properties": {"kind": {"type": "string"}}}]
		}`},
		{"invalid pattern", `{"type": "string", "pattern": "["}`},
		{"required undeclared property", `{"type": "object", "required": ["ghost"]}`},
		{"unsupported keyword", `{"type": "string", "minimum": 3}`},
		{"unsupported combinator", `{"allOf": [{"type": "object"}]}`},
		{"unsupported keyword in nested property", `{
			"type": "object",
			"properties": {"name": {"type": "string", "$ref": "#/defs/name"}}
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile([]byte(tt.raw))
			if err == nil {
				t.Fatal("Compile() should fail")
			}
			var compileErr *CompileError
			if !errors.As(err, &compileErr) {
				t.Errorf("error = %T, want *CompileError", err)
			}
		})
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	v := mustCompile(t, `{
		"type": "object",
		"required": ["name", "age"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"age": {"type": "integer"}
		}
	}`)

	violations := v.Validate(map[string]any{
		"name":  42,
		"extra": true,
	})

	// missing age, wrong name type, unknown extra: all reported together
	if len(violations) != 3 {
		t.Fatalf("Validate() = %d violations, want 3: %v", len(violations), violations)
	}
}

func TestValidateStrictObjects(t *testing.T) {
	strict := mustCompile(t, `{"type": "object", "properties": {"a": {"type": "string"}}}`)
	open := mustCompile(t, `{"type": "object", "additionalProperties": true}`)

	if got := strict.Validate(map[string]any{"a": "x", "b": "y"}); len(got) != 1 {
		t.Errorf("strict schema should reject unknown property, got %v", got)
	}
	if got := open.Validate(map[string]any{"anything": 1}); len(got) != 0 {
		t.Errorf("open schema should accept unknown properties, got %v", got)
	}
}

func TestValidatePaths(t *testing.T) {
	v := mustCompile(t, `{
		"type": "object",
		"properties": {
			"items": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["id"],
					"properties": {"id": {"type": "string"}}
				}
			}
		}
	}`)

	violations := v.Validate(map[string]any{
		"items": []any{
			map[string]any{"id": "ok"},
			map[string]any{},
		},
	})

	if len(violations) != 1 {
		t.Fatalf("Validate() = %v", violations)
	}
	if violations[0].Path != "items[1].id" {
		t.Errorf("Path = %q, want items[1].id", violations[0].Path)
	}
	if !strings.Contains(violations[0].String(), "items[1].id: ") {
		t.Errorf("String() = %q", violations[0].String())
	}
}

func TestValidateStringConstraints(t *testing.T) {
	v := mustCompile(t, `{
		"type": "object",
		"properties": {
			"status": {"type": "string", "enum": ["draft", "active"]},
			"version": {"type": "string", "pattern": "^[0-9]+\\.[0-9]+\\.[0-9]+$"},
			"tag": {"type": "string", "const": "oiml.intent"}
		}
	}`)

	tests := []struct {
		name  string
		doc   map[string]any
		valid bool
	}{
		{"enum ok", map[string]any{"status": "draft"}, true},
		{"enum bad", map[string]any{"status": "archived"}, false},
		{"pattern ok", map[string]any{"version": "1.0.0"}, true},
		{"pattern bad", map[string]any{"version": "1.0"}, false},
		{"const ok", map[string]any{"tag": "oiml.intent"}, true},
		{"const bad", map[string]any{"tag": "oiml.plan"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(tt.doc)
			if tt.valid && len(got) != 0 {
				t.Errorf("Validate() = %v, want none", got)
			}
			if !tt.valid && len(got) == 0 {
				t.Error("Validate() found no violations")
			}
		})
	}
}

func TestValidateArrayMinItems(t *testing.T) {
	v := mustCompile(t, `{
		"type": "object",
		"properties": {
			"intents": {"type": "array", "minItems": 1}
		}
	}`)

	if got := v.Validate(map[string]any{"intents": []any{}}); len(got) != 1 {
		t.Errorf("Validate() = %v, want minItems violation", got)
	}
	if got := v.Validate(map[string]any{"intents": []any{"x"}}); len(got) != 0 {
		t.Errorf("Validate() = %v", got)
	}
}

func TestValidateDiscriminatedUnion(t *testing.T) {
	v := mustCompile(t, `{
		"discriminator": "kind",
		"oneOf": [
			{
				"type": "object",
				"required": ["kind", "entity"],
				"properties": {
					"kind": {"type": "string", "const": "add_entity"},
					"entity": {"type": "string"}
				}
			},
			{
				"type": "object",
				"required": ["kind", "capability"],
				"properties": {
					"kind": {"type": "string", "const": "add_capability"},
					"capability": {"type": "string"}
				}
			}
		]
	}`)

	if got := v.Validate(map[string]any{"kind": "add_entity", "entity": "user"}); len(got) != 0 {
		t.Errorf("Validate() = %v", got)
	}

	// Branch selection: violations come from the tagged branch only
	got := v.Validate(map[string]any{"kind": "add_capability"})
	if len(got) != 1 || got[0].Path != "capability" {
		t.Errorf("Validate() = %v, want the add_capability branch's missing property", got)
	}

	got = v.Validate(map[string]any{"kind": "delete_everything"})
	if len(got) != 1 || got[0].Path != "kind" {
		t.Errorf("Validate() = %v, want a single unknown-tag violation at kind", got)
	}

	if got := v.Validate("not an object"); len(got) != 1 {
		t.Errorf("Validate() = %v", got)
	}
}

func TestValidateNumbers(t *testing.T) {
	v := mustCompile(t, `{
		"type": "object",
		"properties": {
			"count": {"type": "integer"},
			"ratio": {"type": "number"},
			"on": {"type": "boolean"}
		}
	}`)

	// JSON decoding yields float64, YAML yields int; both must pass
	if got := v.Validate(map[string]any{"count": float64(3), "ratio": 0.5, "on": true}); len(got) != 0 {
		t.Errorf("Validate() = %v", got)
	}
	if got := v.Validate(map[string]any{"count": 3}); len(got) != 0 {
		t.Errorf("Validate() = %v", got)
	}
	if got := v.Validate(map[string]any{"count": 3.5}); len(got) != 1 {
		t.Errorf("Validate() = %v, want non-integral rejection", got)
	}
}
