package match

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/olehluchkiv/typeshapes/internal/model"
)

// TypeLiteralMatch is an object shape, optionally applied on top of a root
// type. At least one of Root and Properties is set.
type TypeLiteralMatch struct {
	Root       model.Type
	Properties []model.Property
}

// Property returns the merged property with the given name.
func (m TypeLiteralMatch) Property(name string) (model.Property, bool) {
	for _, p := range m.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return model.Property{}, false
}

// TypeLiteral finds an object literal in t, possibly intersected with a
// single root type (Root & { extra: string }).
func TypeLiteral(t model.Type) (TypeLiteralMatch, bool) {
	switch t := t.(type) {
	case *model.Object:
		return TypeLiteralMatch{Properties: cloneProperties(t.Properties)}, true
	case *model.Intersection:
		return intersectionLiteral(t)
	}
	return TypeLiteralMatch{}, false
}

func intersectionLiteral(t *model.Intersection) (TypeLiteralMatch, bool) {
	var (
		root    model.Type
		objects []*model.Object
	)
	for _, branch := range flattenIntersection(t) {
		if obj, ok := branch.(*model.Object); ok {
			objects = append(objects, obj)
			continue
		}
		if root != nil {
			return TypeLiteralMatch{}, false
		}
		root = branch
	}
	if len(objects) == 0 || (root == nil && len(objects) < 2) {
		return TypeLiteralMatch{}, false
	}
	return TypeLiteralMatch{Root: root, Properties: mergeProperties(objects)}, true
}

func flattenIntersection(t *model.Intersection) []model.Type {
	var out []model.Type
	for _, branch := range t.Types {
		if inner, ok := branch.(*model.Intersection); ok {
			out = append(out, flattenIntersection(inner)...)
			continue
		}
		out = append(out, branch)
	}
	return out
}

// mergeProperties combines the properties of several object branches. A
// property is optional if any branch marks it optional; differing types
// become a union.
func mergeProperties(objects []*model.Object) []model.Property {
	seen := set.New[string](0)
	var merged []model.Property
	for _, obj := range objects {
		for _, p := range obj.Properties {
			if !seen.Contains(p.Name) {
				seen.Insert(p.Name)
				merged = append(merged, p)
				continue
			}
			for i := range merged {
				if merged[i].Name != p.Name {
					continue
				}
				if model.Equal(merged[i].Type, p.Type) {
					merged[i].Type = p.Type
				} else {
					merged[i].Type = model.UnionOf(merged[i].Type, p.Type)
				}
				merged[i].Optional = merged[i].Optional || p.Optional
				break
			}
		}
	}
	if merged == nil {
		merged = []model.Property{}
	}
	return merged
}

func cloneProperties(props []model.Property) []model.Property {
	out := make([]model.Property, len(props))
	copy(out, props)
	return out
}
