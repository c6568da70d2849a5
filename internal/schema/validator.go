package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Violation is a single schema violation at a JSON path
type Violation struct {
	Path    string
	Message string
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// Validate runs the compiled schema against a plain nested object and
// returns every violation found. It never fails fast: a document with
// five problems produces five violations.
func (v *Validator) Validate(value any) []Violation {
	var out []Violation
	validateNode(v.root, value, "", &out)
	return out
}

func validateNode(n *node, value any, path string, out *[]Violation) {
	def := n.def

	if len(n.branches) > 0 {
		validateUnion(n, value, path, out)
		return
	}

	switch def.Type {
	case "object":
		validateObject(n, value, path, out)
	case "array":
		validateArray(n, value, path, out)
	case "string":
		validateString(n, value, path, out)
	case "integer":
		if !isInteger(value) {
			report(out, path, "expected integer, got %s", typeName(value))
		}
	case "number":
		if !isNumber(value) {
			report(out, path, "expected number, got %s", typeName(value))
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			report(out, path, "expected boolean, got %s", typeName(value))
		}
	case "":
		// untyped node: any value passes
	}
}

func validateUnion(n *node, value any, path string, out *[]Violation) {
	obj, ok := value.(map[string]any)
	if !ok {
		report(out, path, "expected object, got %s", typeName(value))
		return
	}

	disc := n.def.Discriminator
	tagPath := joinPath(path, disc)

	raw, present := obj[disc]
	if !present {
		report(out, tagPath, "missing required property %q", disc)
		return
	}
	tag, ok := raw.(string)
	if !ok {
		report(out, tagPath, "expected string, got %s", typeName(raw))
		return
	}

	for i, branch := range n.branches {
		if n.tags[i] == tag {
			validateNode(branch, value, path, out)
			return
		}
	}
	report(out, tagPath, "unknown %s %q (expected one of: %s)",
		disc, tag, strings.Join(n.tags, ", "))
}

func validateObject(n *node, value any, path string, out *[]Violation) {
	obj, ok := value.(map[string]any)
	if !ok {
		report(out, path, "expected object, got %s", typeName(value))
		return
	}

	for _, req := range n.def.Required {
		if _, present := obj[req]; !present {
			report(out, joinPath(path, req), "missing required property %q", req)
		}
	}

	// Deterministic violation order regardless of map iteration
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	strict := n.def.AdditionalProperties == nil || !*n.def.AdditionalProperties
	for _, key := range keys {
		prop, declared := n.props[key]
		if !declared {
			if strict {
				report(out, joinPath(path, key), "unknown property %q", key)
			}
			continue
		}
		validateNode(prop, obj[key], joinPath(path, key), out)
	}
}

func validateArray(n *node, value any, path string, out *[]Violation) {
	arr, ok := value.([]any)
	if !ok {
		report(out, path, "expected array, got %s", typeName(value))
		return
	}

	if n.def.MinItems != nil && len(arr) < *n.def.MinItems {
		report(out, path, "array must have at least %d items, got %d", *n.def.MinItems, len(arr))
	}

	if n.items != nil {
		for i, elem := range arr {
			validateNode(n.items, elem, indexPath(path, i), out)
		}
	}
}

func validateString(n *node, value any, path string, out *[]Violation) {
	s, ok := value.(string)
	if !ok {
		report(out, path, "expected string, got %s", typeName(value))
		return
	}

	def := n.def
	if def.Const != nil && s != *def.Const {
		report(out, path, "expected %q, got %q", *def.Const, s)
		return
	}
	if len(def.Enum) > 0 {
		found := false
		for _, allowed := range def.Enum {
			if s == allowed {
				found = true
				break
			}
		}
		if !found {
			report(out, path, "value %q is not one of: %s", s, strings.Join(def.Enum, ", "))
		}
	}
	if def.MinLength != nil && len(s) < *def.MinLength {
		report(out, path, "string must be at least %d characters", *def.MinLength)
	}
	if def.MaxLength != nil && len(s) > *def.MaxLength {
		report(out, path, "string must be at most %d characters", *def.MaxLength)
	}
	if n.pattern != nil && !n.pattern.MatchString(s) {
		report(out, path, "value %q does not match pattern %s", s, def.Pattern)
	}
}

func report(out *[]Violation, path, format string, args ...any) {
	*out = append(*out, Violation{Path: path, Message: fmt.Sprintf(format, args...)})
}

func isInteger(v any) bool {
	switch n := v.(type) {
	case int, int64, uint64:
		return true
	case float64:
		return n == float64(int64(n))
	default:
		return false
	}
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int64, uint64, float64:
		return true
	default:
		return false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case int, int64, uint64:
		return "integer"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

func indexPath(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}
