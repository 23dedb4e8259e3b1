package match

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/olehluchkiv/typeshapes/internal/model"
)

// Enum finds an enum made up of literal values. It takes a declaration rather
// than a type because only a type alias (or a TypeScript enum) names a closed
// set; an anonymous "a" | "b" inside a signature does not.
//
// Every member must be a literal. Order follows the declaration and only
// exact duplicates (same kind and value) are collapsed.
func Enum(d *model.Declaration) ([]*model.Literal, bool) {
	if d == nil {
		return nil, false
	}
	var members []model.Type
	switch d.Kind {
	case model.ReflectionTypeAlias:
		members = model.Flatten(d.Type)
	case model.ReflectionEnum:
		for _, c := range d.Children {
			members = append(members, c.Type)
		}
	default:
		return nil, false
	}
	if len(members) == 0 {
		return nil, false
	}

	seen := set.New[model.LiteralKey](len(members))
	options := make([]*model.Literal, 0, len(members))
	for _, m := range members {
		lit, ok := m.(*model.Literal)
		if !ok {
			return nil, false
		}
		if seen.Contains(lit.Key()) {
			continue
		}
		seen.Insert(lit.Key())
		options = append(options, lit)
	}
	return options, true
}
