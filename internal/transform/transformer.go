// Package transform lowers validated intent documents into canonical IR.
// Lowering is pure: the same document and context always produce
// structurally identical IR, and no I/O happens here.
package transform

import (
	"fmt"

	"github.com/openintent/oiml-sub000/internal/intent"
	"github.com/openintent/oiml-sub000/internal/ir"
)

// Context carries document-independent lowering inputs
type Context struct {
	// Project names the project the intents apply to; informational only
	Project string
	// DefaultScope applies when an intent declares no scope of its own
	DefaultScope string
}

// Diagnostic records a non-fatal lowering event, such as an intent of a
// kind this transformer does not know
type Diagnostic struct {
	Path    string
	Message string
}

// StructuralError reports a field or relation specification that violates
// the IR invariants a type-level schema cannot express
type StructuralError struct {
	Path    string
	Message string
}

func (e StructuralError) Error() string {
	return e.Path + ": " + e.Message
}

// Result is the outcome of lowering one document.
//
// Nodes is nil when no intent in the document was transformable at all,
// which is distinct from an empty-but-successful lowering: callers use
// Transformed to tell "nothing to do" from "nothing supported".
type Result struct {
	Nodes       []ir.Node
	Diagnostics []Diagnostic
	Errors      []StructuralError
}

// Transformed reports whether at least one intent was lowered
func (r *Result) Transformed() bool { return r.Nodes != nil }

// OK reports whether lowering produced no structural errors
func (r *Result) OK() bool { return len(r.Errors) == 0 }

// Transform lowers every intent in the document. Unrecognized kinds are
// skipped with a diagnostic; recognized kinds that violate structural
// invariants contribute errors but do not stop the remaining intents.
func Transform(doc *intent.Document, ctx Context) *Result {
	res := &Result{}

	for i, it := range doc.Intents {
		path := fmt.Sprintf("intents[%d]", i)

		kind, err := intent.ParseKind(it.Kind)
		if err != nil {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Path:    path + ".kind",
				Message: fmt.Sprintf("no transformer for kind %q", it.Kind),
			})
			continue
		}

		scope := it.Scope
		if scope == "" {
			scope = ctx.DefaultScope
		}

		var node ir.Node
		var errs []StructuralError

		switch kind {
		case intent.KindAddEntity:
			node, errs = lowerEntity(it, scope, path)
		case intent.KindAddField:
			node, errs = lowerFieldAddition(it, scope, path)
		case intent.KindAddRelation:
			node, errs = lowerRelation(it, scope, path)
		case intent.KindAddEndpoint:
			node, errs = lowerEndpoint(it, scope, path)
		case intent.KindAddCapability:
			node, errs = lowerCapability(it, scope, path)
		}

		if len(errs) > 0 {
			res.Errors = append(res.Errors, errs...)
			continue
		}
		res.Nodes = append(res.Nodes, node)
	}

	return res
}

func lowerEntity(it intent.Intent, scope, path string) (ir.Node, []StructuralError) {
	var errs []StructuralError

	entity := ir.Entity{
		Name:  it.Entity,
		Scope: scope,
	}
	for i, spec := range it.Fields {
		field, ferrs := lowerField(spec, fmt.Sprintf("%s.fields[%d]", path, i))
		if len(ferrs) > 0 {
			errs = append(errs, ferrs...)
			continue
		}
		entity.Fields = append(entity.Fields, field)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return entity, nil
}

func lowerFieldAddition(it intent.Intent, scope, path string) (ir.Node, []StructuralError) {
	if it.Field == nil {
		return nil, []StructuralError{{
			Path:    path + ".field",
			Message: "add_field requires a field specification",
		}}
	}

	field, errs := lowerField(*it.Field, path+".field")
	if len(errs) > 0 {
		return nil, errs
	}
	return ir.FieldAddition{Entity: it.Entity, Scope: scope, Field: field}, nil
}

func lowerRelation(it intent.Intent, scope, path string) (ir.Node, []StructuralError) {
	rel := it.Relation
	if rel == nil {
		return nil, []StructuralError{{
			Path:    path + ".relation",
			Message: "add_relation requires a relation descriptor",
		}}
	}

	var errs []StructuralError
	relPath := path + ".relation"

	card, err := ir.ParseCardinality(rel.Kind)
	if err != nil {
		errs = append(errs, StructuralError{Path: relPath + ".kind", Message: err.Error()})
		return nil, errs
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
	return ir.Relation{
		From:        rel.From,
		To:          rel.To,
		Scope:       scope,
		Cardinality: card,
		Name:        rel.Name,
		ForeignKey:  rel.ForeignKey,
		OnDelete:    onDelete,
		Reverse:     reverse,
	}, nil
}

func lowerEndpoint(it intent.Intent, scope, path string) (ir.Node, []StructuralError) {
	return ir.Endpoint{
		Method:      it.Method,
		Path:        it.Path,
		Scope:       scope,
		Handler:     it.Handler,
		Description: it.Description,
	}, nil
}

func lowerCapability(it intent.Intent, scope, path string) (ir.Node, []StructuralError) {
	return ir.Capability{
		Name:   it.Capability,
		Scope:  scope,
		Config: it.Config,
	}, nil
}
