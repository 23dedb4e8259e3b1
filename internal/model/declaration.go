package model

import "strings"

// ReflectionKind is the TypeDoc reflection kind bit of a declaration.
type ReflectionKind int

const (
	ReflectionProject            ReflectionKind = 0x1
	ReflectionModule             ReflectionKind = 0x2
	ReflectionNamespace          ReflectionKind = 0x4
	ReflectionEnum               ReflectionKind = 0x8
	ReflectionEnumMember         ReflectionKind = 0x10
	ReflectionVariable           ReflectionKind = 0x20
	ReflectionFunction           ReflectionKind = 0x40
	ReflectionClass              ReflectionKind = 0x80
	ReflectionInterface          ReflectionKind = 0x100
	ReflectionConstructor        ReflectionKind = 0x200
	ReflectionProperty           ReflectionKind = 0x400
	ReflectionMethod             ReflectionKind = 0x800
	ReflectionCallSignature      ReflectionKind = 0x1000
	ReflectionIndexSignature     ReflectionKind = 0x2000
	ReflectionConstructSignature ReflectionKind = 0x4000
	ReflectionParameter          ReflectionKind = 0x8000
	ReflectionTypeLiteral        ReflectionKind = 0x10000
	ReflectionTypeParameter      ReflectionKind = 0x20000
	ReflectionAccessor           ReflectionKind = 0x40000
	ReflectionGetSignature       ReflectionKind = 0x80000
	ReflectionSetSignature       ReflectionKind = 0x100000
	ReflectionTypeAlias          ReflectionKind = 0x200000
	ReflectionReference          ReflectionKind = 0x400000
)

var reflectionKindNames = map[ReflectionKind]string{
	ReflectionProject:            "project",
	ReflectionModule:             "module",
	ReflectionNamespace:          "namespace",
	ReflectionEnum:               "enum",
	ReflectionEnumMember:         "enum member",
	ReflectionVariable:           "variable",
	ReflectionFunction:           "function",
	ReflectionClass:              "class",
	ReflectionInterface:          "interface",
	ReflectionConstructor:        "constructor",
	ReflectionProperty:           "property",
	ReflectionMethod:             "method",
	ReflectionCallSignature:      "call signature",
	ReflectionIndexSignature:     "index signature",
	ReflectionConstructSignature: "construct signature",
	ReflectionParameter:          "parameter",
	ReflectionTypeLiteral:        "type literal",
	ReflectionTypeParameter:      "type parameter",
	ReflectionAccessor:           "accessor",
	ReflectionGetSignature:       "get signature",
	ReflectionSetSignature:       "set signature",
	ReflectionTypeAlias:          "type alias",
	ReflectionReference:          "reference",
}

func (k ReflectionKind) String() string {
	if s, ok := reflectionKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsCallable reports whether declarations of kind k carry call signatures.
func (k ReflectionKind) IsCallable() bool {
	switch k {
	case ReflectionFunction, ReflectionMethod, ReflectionConstructor:
		return true
	}
	return false
}

// Declaration is a named entity in the documentation model.
type Declaration struct {
	ID         int
	Name       string
	Kind       ReflectionKind
	Optional   bool
	Internal   bool // tagged @internal or @hidden
	Comment    string
	Type       Type
	Signatures []*Signature
	Children   []*Declaration
}

// Walk visits d and its descendants depth-first, pre-order. The path holds
// the names from the outermost visited declaration down to the current one.
// Returning false from fn skips the children of that declaration.
func (d *Declaration) Walk(fn func(path []string, d *Declaration) bool) {
	d.walk(nil, fn)
}

func (d *Declaration) walk(parent []string, fn func([]string, *Declaration) bool) {
	path := parent
	if d.Kind != ReflectionProject {
		path = append(parent[:len(parent):len(parent)], d.Name)
	}
	if !fn(path, d) {
		return
	}
	for _, c := range d.Children {
		c.walk(path, fn)
	}
}

// Signature is one call shape of a callable declaration.
type Signature struct {
	Name       string
	Comment    string
	Parameters []*Parameter
	Return     Type
}

// Params renders the parameter list, e.g. "(a: string, b?: number)".
func (s *Signature) Params() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range s.Parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		if p.Rest {
			b.WriteString("...")
		}
		b.WriteString(p.Name)
		if p.Optional {
			b.WriteByte('?')
		}
		b.WriteString(": ")
		b.WriteString(typeString(p.Type))
	}
	b.WriteByte(')')
	return b.String()
}

// Parameter is one parameter of a signature.
type Parameter struct {
	Name     string
	Type     Type
	Optional bool
	Rest     bool
}
