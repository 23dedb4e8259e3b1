// Package model is the read-only view of a documentation model that the
// matchers classify. Nodes are built once by a loader and never mutated.
package model

import (
	"strconv"
	"strings"
)

// Kind discriminates type-tree nodes.
type Kind int

const (
	KindOther Kind = iota
	KindIntrinsic
	KindReference
	KindArray
	KindUnion
	KindIntersection
	KindTuple
	KindLiteral
	KindObject
	KindFunction
)

var kindNames = [...]string{
	KindOther:        "other",
	KindIntrinsic:    "intrinsic",
	KindReference:    "reference",
	KindArray:        "array",
	KindUnion:        "union",
	KindIntersection: "intersection",
	KindTuple:        "tuple",
	KindLiteral:      "literal",
	KindObject:       "object",
	KindFunction:     "function",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Type is a node in a type expression. The set of implementations is closed.
type Type interface {
	Kind() Kind
	String() string
	typeNode()
}

type node struct{}

func (node) typeNode() {}

// Intrinsic is a primitive or keyword type such as string, number or void.
type Intrinsic struct {
	node
	Name string
}

func (*Intrinsic) Kind() Kind { return KindIntrinsic }

func (t *Intrinsic) String() string { return t.Name }

// Reference names another declaration or a library type, optionally with
// type arguments.
type Reference struct {
	node
	Name          string
	TypeArguments []Type
}

func (*Reference) Kind() Kind { return KindReference }

func (t *Reference) String() string {
	if len(t.TypeArguments) == 0 {
		return t.Name
	}
	return t.Name + "<" + join(t.TypeArguments, ", ", false) + ">"
}

// Array is an unbounded homogeneous list.
type Array struct {
	node
	Element Type
}

func (*Array) Kind() Kind { return KindArray }

func (t *Array) String() string { return wrap(t.Element) + "[]" }

// Union is T1 | T2 | ...
type Union struct {
	node
	Types []Type
}

func (*Union) Kind() Kind { return KindUnion }

func (t *Union) String() string { return join(t.Types, " | ", true) }

// Intersection is T1 & T2 & ...
type Intersection struct {
	node
	Types []Type
}

func (*Intersection) Kind() Kind { return KindIntersection }

func (t *Intersection) String() string { return join(t.Types, " & ", true) }

// TupleElement is one position of a tuple. A rest element's Type is the
// declared rest type, normally an array.
type TupleElement struct {
	Name     string
	Type     Type
	Optional bool
	Rest     bool
}

// Tuple is an ordered fixed or open-ended sequence.
type Tuple struct {
	node
	Elements []TupleElement
}

func (*Tuple) Kind() Kind { return KindTuple }

func (t *Tuple) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, el := range t.Elements {
		if i > 0 {
			b.WriteString(", ")
		}
		if el.Rest {
			b.WriteString("...")
		}
		if el.Name != "" {
			b.WriteString(el.Name)
			if el.Optional {
				b.WriteByte('?')
			}
			b.WriteString(": ")
			b.WriteString(typeString(el.Type))
			continue
		}
		b.WriteString(typeString(el.Type))
		if el.Optional {
			b.WriteByte('?')
		}
	}
	b.WriteByte(']')
	return b.String()
}

// Property is a named member of an object type.
type Property struct {
	Name     string
	Type     Type
	Optional bool
}

// Object is an anonymous object shape. Property names are unique.
type Object struct {
	node
	Properties []Property
}

func (*Object) Kind() Kind { return KindObject }

func (t *Object) String() string {
	if len(t.Properties) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{ ")
	for i, p := range t.Properties {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(p.Name)
		if p.Optional {
			b.WriteByte('?')
		}
		b.WriteString(": ")
		b.WriteString(typeString(p.Type))
	}
	b.WriteString(" }")
	return b.String()
}

// Lookup returns the property with the given name.
func (t *Object) Lookup(name string) (Property, bool) {
	for _, p := range t.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Function is an anonymous callable type.
type Function struct {
	node
	Signature *Signature
}

func (*Function) Kind() Kind { return KindFunction }

func (t *Function) String() string {
	if t.Signature == nil {
		return "() => void"
	}
	return t.Signature.Params() + " => " + typeString(t.Signature.Return)
}

// Other is any node the loader does not model structurally.
type Other struct {
	node
	Raw string
}

func (*Other) Kind() Kind { return KindOther }

func (t *Other) String() string {
	if t.Raw == "" {
		return "unknown"
	}
	return t.Raw
}

func typeString(t Type) string {
	if t == nil {
		return "unknown"
	}
	return t.String()
}

// wrap parenthesizes compound types where they bind looser than the context.
func wrap(t Type) string {
	if t == nil {
		return "unknown"
	}
	switch t.Kind() {
	case KindUnion, KindIntersection, KindFunction:
		return "(" + t.String() + ")"
	}
	return t.String()
}

func join(types []Type, sep string, paren bool) string {
	parts := make([]string, len(types))
	for i, t := range types {
		if paren {
			parts[i] = wrap(t)
		} else {
			parts[i] = typeString(t)
		}
	}
	return strings.Join(parts, sep)
}
