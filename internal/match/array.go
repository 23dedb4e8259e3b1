package match

import "github.com/olehluchkiv/typeshapes/internal/model"

// ArrayMatch describes an array-like type. A nil Max is unbounded and a nil
// Min means no lower bound is known, which only happens for a plain array.
// When both are set Min <= Max.
type ArrayMatch struct {
	Min     *int
	Max     *int
	Element model.Type
}

// bounds is the length range one branch of an array-like type admits.
type bounds struct {
	min, max int
	open     bool // no upper bound
	plain    bool // a bare T[] carrying no length information
	element  model.Type
}

// ArrayType finds an array type in t. Besides plain arrays it infers bounded
// arrays from tuples and from unions of tuples, for example
// [T] | [T, T] | [T, T, T, ...T[]].
func ArrayType(t model.Type) (ArrayMatch, bool) {
	if t == nil {
		return ArrayMatch{}, false
	}
	if u, ok := t.(*model.Union); ok {
		return unionArray(u)
	}
	b, ok := arrayBounds(t)
	if !ok {
		return ArrayMatch{}, false
	}
	return b.result(), true
}

// arrayBounds handles a single non-union branch.
func arrayBounds(t model.Type) (bounds, bool) {
	switch t := t.(type) {
	case *model.Array:
		return bounds{open: true, plain: true, element: t.Element}, true
	case *model.Reference:
		if el, ok := genericArrayElement(t); ok {
			return bounds{open: true, plain: true, element: el}, true
		}
	case *model.Tuple:
		return tupleBounds(t)
	}
	return bounds{}, false
}

func tupleBounds(t *model.Tuple) (bounds, bool) {
	if len(t.Elements) == 0 {
		return bounds{}, false
	}
	var b bounds
	elements := make([]model.Type, 0, len(t.Elements))
	for _, el := range t.Elements {
		if el.Rest {
			b.open = true
			elements = append(elements, restElement(el.Type))
			continue
		}
		if !el.Optional {
			b.min++
		}
		b.max++
		elements = append(elements, el.Type)
	}
	b.element = model.UnionOf(elements...)
	if b.element == nil {
		return bounds{}, false
	}
	return b, true
}

// restElement unwraps the array type of a rest element.
func restElement(t model.Type) model.Type {
	switch t := t.(type) {
	case *model.Array:
		return t.Element
	case *model.Reference:
		if el, ok := genericArrayElement(t); ok {
			return el
		}
	}
	return t
}

func genericArrayElement(r *model.Reference) (model.Type, bool) {
	if (r.Name == "Array" || r.Name == "ReadonlyArray") && len(r.TypeArguments) == 1 {
		return r.TypeArguments[0], true
	}
	return nil, false
}

func unionArray(u *model.Union) (ArrayMatch, bool) {
	var (
		branches []bounds
		literals []*model.Literal
	)
	for _, m := range model.Flatten(u) {
		if lit, ok := m.(*model.Literal); ok {
			literals = append(literals, lit)
			continue
		}
		// [] only widens the range down to zero.
		if tup, ok := m.(*model.Tuple); ok && len(tup.Elements) == 0 {
			branches = append(branches, bounds{})
			continue
		}
		b, ok := arrayBounds(m)
		if !ok {
			return ArrayMatch{}, false
		}
		branches = append(branches, b)
	}
	if len(branches) == 0 {
		return ArrayMatch{}, false
	}

	merged := branches[0]
	elements := []model.Type{merged.element}
	for _, b := range branches[1:] {
		merged.min = min(merged.min, b.min)
		merged.max = max(merged.max, b.max)
		merged.open = merged.open || b.open
		elements = append(elements, b.element)
	}
	merged.plain = false
	merged.element = model.UnionOf(elements...)
	if merged.element == nil {
		return ArrayMatch{}, false
	}

	// A bare literal stands for a single-element value of the array.
	for _, lit := range literals {
		if !accepts(merged.element, lit) {
			return ArrayMatch{}, false
		}
		merged.min = min(merged.min, 1)
		merged.max = max(merged.max, 1)
	}
	return merged.result(), true
}

// accepts reports whether a value of literal type lit is a valid element.
func accepts(element model.Type, lit *model.Literal) bool {
	for _, m := range model.Flatten(element) {
		switch m := m.(type) {
		case *model.Literal:
			if m.Key() == lit.Key() {
				return true
			}
		case *model.Intrinsic:
			if m.Name == lit.LiteralKind.String() {
				return true
			}
		}
	}
	return false
}

func (b bounds) result() ArrayMatch {
	m := ArrayMatch{Element: b.element}
	if !b.plain {
		m.Min = intPtr(b.min)
	}
	if !b.open {
		m.Max = intPtr(b.max)
	}
	return m
}

func intPtr(n int) *int { return &n }
