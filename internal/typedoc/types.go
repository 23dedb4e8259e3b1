package typedoc

import (
	"github.com/go-json-experiment/json"

	"github.com/olehluchkiv/typeshapes/internal/model"
)

// typ converts a TypeDoc type node. A missing node stays nil.
func (d *decoder) typ(r *rawType) model.Type {
	if r == nil {
		return nil
	}
	switch r.Type {
	case "intrinsic":
		return &model.Intrinsic{Name: r.Name}
	case "reference":
		return &model.Reference{Name: r.Name, TypeArguments: d.types(r.TypeArguments)}
	case "array":
		return &model.Array{Element: d.typ(r.ElementType)}
	case "union":
		return &model.Union{Types: d.types(r.Types)}
	case "intersection":
		return &model.Intersection{Types: d.types(r.Types)}
	case "tuple":
		return d.tuple(r)
	case "literal":
		return literal(r)
	case "reflection":
		return d.reflection(r.Declaration)
	case "typeOperator":
		// readonly T[] is still an array for documentation purposes.
		if r.Operator == "readonly" {
			if target := d.rawTarget(r); target != nil {
				return d.typ(target)
			}
		}
		return &model.Other{Raw: r.Operator}
	case "query":
		if r.QueryType != nil {
			return &model.Other{Raw: "typeof " + r.QueryType.Name}
		}
	case "optional", "rest", "namedTupleMember":
		// Only meaningful inside a tuple; seen elsewhere they are opaque.
		return &model.Other{Raw: r.Type}
	}
	if r.Name != "" {
		return &model.Other{Raw: r.Name}
	}
	return &model.Other{Raw: r.Type}
}

func (d *decoder) types(raws []*rawType) []model.Type {
	if len(raws) == 0 {
		return nil
	}
	out := make([]model.Type, len(raws))
	for i, r := range raws {
		out[i] = d.typ(r)
	}
	return out
}

func (d *decoder) tuple(r *rawType) *model.Tuple {
	t := &model.Tuple{Elements: make([]model.TupleElement, 0, len(r.Elements))}
	for _, el := range r.Elements {
		t.Elements = append(t.Elements, d.tupleElement(el))
	}
	return t
}

func (d *decoder) tupleElement(r *rawType) model.TupleElement {
	if r == nil {
		return model.TupleElement{}
	}
	switch r.Type {
	case "optional":
		el := d.tupleElement(r.ElementType)
		el.Optional = true
		return el
	case "rest":
		el := d.tupleElement(r.ElementType)
		el.Rest = true
		return el
	case "namedTupleMember":
		el := d.tupleElement(r.Element)
		el.Name = r.Name
		el.Optional = el.Optional || r.IsOptional
		return el
	}
	return model.TupleElement{Type: d.typ(r)}
}

// rawTarget decodes the operand of a type operator.
func (d *decoder) rawTarget(r *rawType) *rawType {
	if len(r.Target) == 0 {
		return nil
	}
	var target rawType
	if err := json.Unmarshal(r.Target, &target); err != nil || target.Type == "" {
		return nil
	}
	return &target
}

// reflection converts an inline declaration: an object shape, a function type
// or, with several call signatures, an intersection of function types.
func (d *decoder) reflection(r *rawReflection) model.Type {
	if r == nil {
		return &model.Object{Properties: []model.Property{}}
	}
	if len(r.Children) == 0 && len(r.Signatures) > 0 {
		if len(r.Signatures) == 1 {
			return &model.Function{Signature: d.signature(r.Signatures[0])}
		}
		fns := make([]model.Type, len(r.Signatures))
		for i, s := range r.Signatures {
			fns[i] = &model.Function{Signature: d.signature(s)}
		}
		return &model.Intersection{Types: fns}
	}

	obj := &model.Object{Properties: make([]model.Property, 0, len(r.Children))}
	for _, c := range r.Children {
		var t model.Type
		switch {
		case c.Type != nil:
			t = d.typ(c.Type)
		case len(c.Signatures) > 0:
			t = d.reflection(&rawReflection{Signatures: c.Signatures})
		}
		obj.Properties = append(obj.Properties, model.Property{
			Name:     c.Name,
			Type:     t,
			Optional: c.Flags.IsOptional,
		})
	}
	return obj
}

func literal(r *rawType) model.Type {
	if len(r.Value) == 0 {
		return &model.Intrinsic{Name: "null"}
	}
	var v any
	if err := json.Unmarshal(r.Value, &v); err != nil {
		return &model.Other{Raw: string(r.Value)}
	}
	switch v := v.(type) {
	case nil:
		return &model.Intrinsic{Name: "null"}
	case string:
		return model.StringLiteral(v)
	case float64:
		return model.NumberLiteral(v)
	case bool:
		return model.BooleanLiteral(v)
	}
	// bigint literals are written as {"value": "...", "negative": bool}
	return &model.Other{Raw: "bigint"}
}
