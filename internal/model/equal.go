package model

// Equal reports whether a and b are structurally identical. Two nil types
// are equal; a nil and a non-nil type are not.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case *Intrinsic:
		return a.Name == b.(*Intrinsic).Name
	case *Reference:
		b := b.(*Reference)
		return a.Name == b.Name && equalList(a.TypeArguments, b.TypeArguments)
	case *Array:
		return Equal(a.Element, b.(*Array).Element)
	case *Union:
		return equalList(a.Types, b.(*Union).Types)
	case *Intersection:
		return equalList(a.Types, b.(*Intersection).Types)
	case *Tuple:
		b := b.(*Tuple)
		if len(a.Elements) != len(b.Elements) {
			return false
		}
		for i, el := range a.Elements {
			o := b.Elements[i]
			if el.Name != o.Name || el.Optional != o.Optional || el.Rest != o.Rest || !Equal(el.Type, o.Type) {
				return false
			}
		}
		return true
	case *Literal:
		return a.Key() == b.(*Literal).Key()
	case *Object:
		b := b.(*Object)
		if len(a.Properties) != len(b.Properties) {
			return false
		}
		for _, p := range a.Properties {
			o, ok := b.Lookup(p.Name)
			if !ok || o.Optional != p.Optional || !Equal(p.Type, o.Type) {
				return false
			}
		}
		return true
	case *Function:
		return equalSignature(a.Signature, b.(*Function).Signature)
	case *Other:
		return a.Raw == b.(*Other).Raw
	}
	return false
}

func equalList(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalSignature(a, b *Signature) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if len(a.Parameters) != len(b.Parameters) || !Equal(a.Return, b.Return) {
		return false
	}
	for i, p := range a.Parameters {
		o := b.Parameters[i]
		if p.Optional != o.Optional || p.Rest != o.Rest || !Equal(p.Type, o.Type) {
			return false
		}
	}
	return true
}

// Flatten returns the members of t with nested unions expanded in place.
// A non-union type yields a single-element slice; nil yields nil.
func Flatten(t Type) []Type {
	if t == nil {
		return nil
	}
	u, ok := t.(*Union)
	if !ok {
		return []Type{t}
	}
	var out []Type
	for _, m := range u.Types {
		out = append(out, Flatten(m)...)
	}
	return out
}

// UnionOf builds the union of types, flattening nested unions and dropping
// structural duplicates (first occurrence wins). A single remaining member
// is returned as is. UnionOf returns nil when no non-nil type is given.
func UnionOf(types ...Type) Type {
	var members []Type
	for _, t := range types {
		for _, m := range Flatten(t) {
			if !Contains(members, m) {
				members = append(members, m)
			}
		}
	}
	switch len(members) {
	case 0:
		return nil
	case 1:
		return members[0]
	}
	return &Union{Types: members}
}

// Contains reports whether list holds a type structurally equal to t.
func Contains(list []Type, t Type) bool {
	for _, m := range list {
		if Equal(m, t) {
			return true
		}
	}
	return false
}
