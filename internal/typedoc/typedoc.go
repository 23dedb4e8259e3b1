// Package typedoc decodes a TypeDoc JSON project into the declaration model.
//
// Both the pre-0.23 layout (legacy reflection kind numbering, shortText
// comments) and the current layout are understood. Type nodes the model does
// not describe structurally are kept as model.Other with a readable name.
package typedoc

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-json-experiment/json"

	"github.com/olehluchkiv/typeshapes/internal/model"
)

// ErrNotProject is returned when the JSON document is not a TypeDoc project.
var ErrNotProject = errors.New("not a TypeDoc project")

// Load reads and decodes the TypeDoc project at path.
func Load(path string) (*model.Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	project, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return project, nil
}

// Decode converts TypeDoc JSON into the project declaration.
func Decode(data []byte) (*model.Declaration, error) {
	var raw rawReflection
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parsing JSON")
	}
	if raw.Kind == nil {
		return nil, errors.WithHint(ErrNotProject, "run typedoc with --json to produce a model file")
	}
	// Legacy TypeDoc numbers the root "Global" as 0; current versions use 1.
	var d decoder
	switch *raw.Kind {
	case 0:
		d.legacy = true
	case int(model.ReflectionProject):
	default:
		return nil, errors.Wrapf(ErrNotProject, "root reflection %q has kind %d", raw.Name, *raw.Kind)
	}
	return d.declaration(&raw), nil
}

type decoder struct {
	legacy bool
}

// legacyKinds maps pre-0.23 reflection kinds that were renumbered.
var legacyKinds = map[int]model.ReflectionKind{
	0:        model.ReflectionProject,
	1:        model.ReflectionModule,
	2:        model.ReflectionNamespace,
	4:        model.ReflectionEnum,
	2097152:  model.ReflectionVariable, // ObjectLiteral
	4194304:  model.ReflectionTypeAlias,
	8388608:  model.ReflectionVariable, // Event
	16777216: model.ReflectionReference,
}

func (d *decoder) kind(k *int) model.ReflectionKind {
	if k == nil {
		return 0
	}
	if d.legacy {
		if mapped, ok := legacyKinds[*k]; ok {
			return mapped
		}
	}
	return model.ReflectionKind(*k)
}

func (d *decoder) declaration(r *rawReflection) *model.Declaration {
	decl := &model.Declaration{
		ID:       r.ID,
		Name:     r.Name,
		Kind:     d.kind(r.Kind),
		Optional: r.Flags.IsOptional,
		Comment:  commentText(r.Comment),
		Internal: isInternal(r.Comment),
		Type:     d.typ(r.Type),
	}
	// Current TypeDoc attaches a function's comment to its signatures.
	for _, s := range r.Signatures {
		decl.Signatures = append(decl.Signatures, d.signature(s))
		decl.Internal = decl.Internal || isInternal(s.Comment)
		if decl.Comment == "" {
			decl.Comment = commentText(s.Comment)
		}
	}
	if decl.Type == nil && decl.Kind == model.ReflectionEnumMember {
		decl.Type = enumValue(r.DefaultValue)
	}
	for _, c := range r.Children {
		decl.Children = append(decl.Children, d.declaration(c))
	}
	return decl
}

func (d *decoder) signature(r *rawReflection) *model.Signature {
	sig := &model.Signature{
		Name:    r.Name,
		Comment: commentText(r.Comment),
		Return:  d.typ(r.Type),
	}
	for _, p := range r.Parameters {
		sig.Parameters = append(sig.Parameters, &model.Parameter{
			Name:     p.Name,
			Type:     d.typ(p.Type),
			Optional: p.Flags.IsOptional || p.DefaultValue != "",
			Rest:     p.Flags.IsRest,
		})
	}
	return sig
}

// enumValue reads the initializer legacy TypeDoc writes for an enum member
// in place of a literal type, e.g. "0" or "\"popup\"".
func enumValue(v string) model.Type {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if len(v) >= 2 && v[0] == '\'' && v[len(v)-1] == '\'' {
		return model.StringLiteral(v[1 : len(v)-1])
	}
	var parsed any
	if err := json.Unmarshal([]byte(v), &parsed); err != nil {
		return &model.Other{Raw: v}
	}
	switch parsed := parsed.(type) {
	case string:
		return model.StringLiteral(parsed)
	case float64:
		return model.NumberLiteral(parsed)
	case bool:
		return model.BooleanLiteral(parsed)
	}
	return &model.Other{Raw: v}
}

func commentText(c *rawComment) string {
	if c == nil {
		return ""
	}
	if len(c.Summary) > 0 {
		var b strings.Builder
		for _, part := range c.Summary {
			b.WriteString(part.Text)
		}
		return strings.TrimSpace(b.String())
	}
	return strings.TrimSpace(c.ShortText + "\n\n" + c.Text)
}

func isInternal(c *rawComment) bool {
	if c == nil {
		return false
	}
	for _, tag := range c.ModifierTags {
		if tag == "@internal" || tag == "@hidden" {
			return true
		}
	}
	for _, tag := range c.Tags {
		if tag.Tag == "internal" || tag.Tag == "hidden" {
			return true
		}
	}
	return false
}
