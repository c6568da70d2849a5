package schema

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/goccy/go-json"
)

// Definition is the restricted schema dialect OIML validates against.
// It is deliberately not general JSON Schema: only the keywords below are
// supported, and anything else fails compilation instead of being ignored.
type Definition struct {
	ID          string `json:"$id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	Type string `json:"type,omitempty"`

	// Objects. Absent or false additionalProperties means strict:
	// unknown keys are violations.
	Properties           map[string]*Definition `json:"properties,omitempty"`
	Required             []string               `json:"required,omitempty"`
	AdditionalProperties *bool                  `json:"additionalProperties,omitempty"`

	// Arrays
	Items    *Definition `json:"items,omitempty"`
	MinItems *int        `json:"minItems,omitempty"`

	// Strings
	Enum      []string `json:"enum,omitempty"`
	Const     *string  `json:"const,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`

	// Discriminated unions. Each branch must declare a const for the
	// discriminator property.
	OneOf         []*Definition `json:"oneOf,omitempty"`
	Discriminator string        `json:"discriminator,omitempty"`
}

// CompileError reports a malformed schema definition. It is fatal and
// never cached: a schema that does not compile is a deployment problem.
type CompileError struct {
	Path    string
	Message string
}

func (e *CompileError) Error() string {
	if e.Path == "" {
		return "schema compile error: " + e.Message
	}
	return fmt.Sprintf("schema compile error at %s: %s", e.Path, e.Message)
}

// node is a compiled schema node with patterns pre-compiled
type node struct {
	def      *Definition
	pattern  *regexp.Regexp
	props    map[string]*node
	items    *node
	branches []*node
	// branch tag values, parallel to branches, when part of a oneOf
	tags []string
}

// Validator is a compiled, reusable schema validator. It is safe for
// concurrent use once compiled.
type Validator struct {
	root *node
	id   string
}

// ID returns the schema's declared $id, if any
func (v *Validator) ID() string { return v.id }

// Compile parses and compiles raw schema bytes into a Validator.
// Unknown keywords anywhere in the definition fail compilation: a schema
// author's constraint must never be silently unenforced.
func Compile(raw []byte) (*Validator, error) {
	var def Definition
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&def); err != nil {
		return nil, &CompileError{Message: err.Error()}
	}

	root, err := compileNode(&def, "")
	if err != nil {
		return nil, err
	}
	return &Validator{root: root, id: def.ID}, nil
}

var validTypes = map[string]bool{
	"object":  true,
	"array":   true,
	"string":  true,
	"integer": true,
	"number":  true,
	"boolean": true,
}

func compileNode(def *Definition, path string) (*node, error) {
	if def == nil {
		return nil, &CompileError{Path: path, Message: "null schema"}
	}

	n := &node{def: def}

	if len(def.OneOf) > 0 {
		if def.Discriminator == "" {
			return nil, &CompileError{Path: path, Message: "oneOf requires a discriminator property"}
		}
		if def.Type != "" && def.Type != "object" {
			return nil, &CompileError{Path: path, Message: "oneOf only applies to objects"}
		}
		for i, branch := range def.OneOf {
			branchPath := fmt.Sprintf("%s.oneOf[%d]", path, i)
			tagDef, ok := branch.Properties[def.Discriminator]
			if !ok || tagDef.Const == nil {
				return nil, &CompileError{
					Path:    branchPath,
					Message: fmt.Sprintf("branch must declare a const for discriminator %q", def.Discriminator),
				}
			}
			compiled, err := compileNode(branch, branchPath)
			if err != nil {
				return nil, err
			}
			n.branches = append(n.branches, compiled)
			n.tags = append(n.tags, *tagDef.Const)
		}
		return n, nil
	}

	if def.Type != "" && !validTypes[def.Type] {
		return nil, &CompileError{Path: path, Message: fmt.Sprintf("unsupported type %q", def.Type)}
	}

	if def.Pattern != "" {
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			return nil, &CompileError{Path: path, Message: fmt.Sprintf("invalid pattern: %v", err)}
		}
		n.pattern = re
	}

	if len(def.Properties) > 0 {
		n.props = make(map[string]*node, len(def.Properties))
		for name, prop := range def.Properties {
			compiled, err := compileNode(prop, joinPath(path, name))
			if err != nil {
				return nil, err
			}
			n.props[name] = compiled
		}
	}

	for _, req := range def.Required {
		if _, ok := def.Properties[req]; !ok {
			return nil, &CompileError{
				Path:    path,
				Message: fmt.Sprintf("required property %q is not declared", req),
			}
		}
	}

	if def.Items != nil {
		compiled, err := compileNode(def.Items, path+"[]")
		if err != nil {
			return nil, err
		}
		n.items = compiled
	}

	return n, nil
}
