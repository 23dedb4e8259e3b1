// Package report renders analysis results as Markdown, JSON or YAML.
package report

import (
	"sort"

	"github.com/olehluchkiv/typeshapes/internal/analyzer"
	"github.com/olehluchkiv/typeshapes/internal/match"
	"github.com/olehluchkiv/typeshapes/internal/model"
)

// Document is the serializable form of an analysis result.
type Document struct {
	Project      string         `json:"project" yaml:"project"`
	Scanned      int            `json:"scanned" yaml:"scanned"`
	Summary      map[string]int `json:"summary" yaml:"summary"`
	Declarations []Entry        `json:"declarations" yaml:"declarations"`
}

// Entry is one declaration with at least one finding.
type Entry struct {
	Path     string    `json:"path" yaml:"path"`
	Kind     string    `json:"kind" yaml:"kind"`
	Comment  string    `json:"comment,omitempty" yaml:"comment,omitempty"`
	Internal bool      `json:"internal,omitzero" yaml:"internal,omitempty"`
	Findings []Finding `json:"findings" yaml:"findings"`
}

// Finding mirrors analyzer.Finding with types rendered as TypeScript text.
type Finding struct {
	Shape       string       `json:"shape" yaml:"shape"`
	Array       *ArrayDoc    `json:"array,omitempty" yaml:"array,omitempty"`
	TypeLiteral *LiteralDoc  `json:"typeLiteral,omitempty" yaml:"typeLiteral,omitempty"`
	Enum        []any        `json:"enum,omitempty" yaml:"enum,omitempty"`
	Function    *FunctionDoc `json:"function,omitempty" yaml:"function,omitempty"`
}

type ArrayDoc struct {
	Element string `json:"element" yaml:"element"`
	Min     *int   `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *int   `json:"max,omitempty" yaml:"max,omitempty"`
}

type LiteralDoc struct {
	Root       string        `json:"root,omitempty" yaml:"root,omitempty"`
	Properties []PropertyDoc `json:"properties" yaml:"properties"`
}

type PropertyDoc struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Optional bool   `json:"optional,omitzero" yaml:"optional,omitempty"`
}

type FunctionDoc struct {
	Parameters []PropertyDoc `json:"parameters" yaml:"parameters"`
	Return     string        `json:"return" yaml:"return"`
}

// Build converts result into a Document. Declarations are sorted by path.
func Build(result *analyzer.Result) *Document {
	decls := make([]analyzer.DeclarationResult, len(result.Declarations))
	copy(decls, result.Declarations)
	sort.SliceStable(decls, func(i, j int) bool {
		return decls[i].Path < decls[j].Path
	})

	doc := &Document{
		Project:      result.Project,
		Scanned:      result.Scanned,
		Summary:      make(map[string]int),
		Declarations: make([]Entry, 0, len(decls)),
	}
	for shape, n := range result.Count() {
		doc.Summary[string(shape)] = n
	}
	for _, d := range decls {
		e := Entry{
			Path:     d.Path,
			Kind:     d.Kind.String(),
			Comment:  d.Comment,
			Internal: d.Internal,
			Findings: make([]Finding, 0, len(d.Findings)),
		}
		for _, f := range d.Findings {
			e.Findings = append(e.Findings, finding(f))
		}
		doc.Declarations = append(doc.Declarations, e)
	}
	return doc
}

func finding(f analyzer.Finding) Finding {
	out := Finding{Shape: string(f.Shape)}
	switch {
	case f.Array != nil:
		out.Array = &ArrayDoc{Element: typeText(f.Array.Element), Min: f.Array.Min, Max: f.Array.Max}
	case f.TypeLiteral != nil:
		out.TypeLiteral = literalDoc(f.TypeLiteral)
	case f.Function != nil:
		out.Function = functionDoc(f.Function)
	case f.Enum != nil:
		out.Enum = make([]any, len(f.Enum))
		for i, lit := range f.Enum {
			out.Enum[i] = lit.Value()
		}
	}
	return out
}

func literalDoc(m *match.TypeLiteralMatch) *LiteralDoc {
	doc := &LiteralDoc{Properties: make([]PropertyDoc, len(m.Properties))}
	if m.Root != nil {
		doc.Root = m.Root.String()
	}
	for i, p := range m.Properties {
		doc.Properties[i] = PropertyDoc{Name: p.Name, Type: typeText(p.Type), Optional: p.Optional}
	}
	return doc
}

func functionDoc(m *match.FunctionMatch) *FunctionDoc {
	doc := &FunctionDoc{Parameters: make([]PropertyDoc, len(m.Parameters)), Return: typeText(m.Return)}
	for i, p := range m.Parameters {
		doc.Parameters[i] = PropertyDoc{Name: p.Name, Type: typeText(p.Type), Optional: p.Optional}
	}
	return doc
}

func typeText(t model.Type) string {
	if t == nil {
		return "unknown"
	}
	return t.String()
}
