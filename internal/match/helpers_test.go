package match

import "github.com/olehluchkiv/typeshapes/internal/model"

var (
	tString  = &model.Intrinsic{Name: "string"}
	tNumber  = &model.Intrinsic{Name: "number"}
	tBoolean = &model.Intrinsic{Name: "boolean"}
	tVoid    = &model.Intrinsic{Name: "void"}
)

func ref(name string, args ...model.Type) *model.Reference {
	return &model.Reference{Name: name, TypeArguments: args}
}

func union(types ...model.Type) *model.Union {
	return &model.Union{Types: types}
}

func intersect(types ...model.Type) *model.Intersection {
	return &model.Intersection{Types: types}
}

func array(el model.Type) *model.Array {
	return &model.Array{Element: el}
}

// tuple builds a tuple of required elements.
func tuple(types ...model.Type) *model.Tuple {
	t := &model.Tuple{}
	for _, ty := range types {
		t.Elements = append(t.Elements, model.TupleElement{Type: ty})
	}
	return t
}

func object(props ...model.Property) *model.Object {
	return &model.Object{Properties: props}
}

func prop(name string, t model.Type) model.Property {
	return model.Property{Name: name, Type: t}
}

func optProp(name string, t model.Type) model.Property {
	return model.Property{Name: name, Type: t, Optional: true}
}

func param(name string, t model.Type) *model.Parameter {
	return &model.Parameter{Name: name, Type: t}
}

func optParam(name string, t model.Type) *model.Parameter {
	return &model.Parameter{Name: name, Type: t, Optional: true}
}

func sig(ret model.Type, params ...*model.Parameter) *model.Signature {
	return &model.Signature{Name: "fn", Parameters: params, Return: ret}
}

func fn(sigs ...*model.Signature) *model.Declaration {
	return &model.Declaration{Name: "fn", Kind: model.ReflectionFunction, Signatures: sigs}
}

func alias(name string, t model.Type) *model.Declaration {
	return &model.Declaration{Name: name, Kind: model.ReflectionTypeAlias, Type: t}
}

func intp(n int) *int { return &n }
