package analyzer

import (
	"github.com/olehluchkiv/typeshapes/internal/match"
	"github.com/olehluchkiv/typeshapes/internal/model"
)

// Shape names the pattern a finding recognized.
type Shape string

const (
	ShapeArray    Shape = "array"
	ShapeLiteral  Shape = "type-literal"
	ShapeEnum     Shape = "enum"
	ShapeFunction Shape = "function"
)

// Finding is one recognized shape on one declaration. Exactly one of the
// match fields is set, according to Shape.
type Finding struct {
	Shape       Shape
	Array       *match.ArrayMatch
	TypeLiteral *match.TypeLiteralMatch
	Enum        []*model.Literal
	Function    *match.FunctionMatch
}

// DeclarationResult collects the findings for a single declaration.
type DeclarationResult struct {
	Path        string // dotted path from the project root, e.g. "chrome.tabs.query"
	Name        string
	Kind        model.ReflectionKind
	Comment     string
	Internal    bool
	Declaration *model.Declaration
	Findings    []Finding
}

// Result holds the complete analysis output.
type Result struct {
	Project      string
	Declarations []DeclarationResult
	Scanned      int // declarations inspected, including those without findings
}

// Count returns how many findings of each shape the result holds.
func (r *Result) Count() map[Shape]int {
	counts := make(map[Shape]int)
	for _, d := range r.Declarations {
		for _, f := range d.Findings {
			counts[f.Shape]++
		}
	}
	return counts
}

// AnalyzeOptions controls analysis behavior.
type AnalyzeOptions struct {
	Filter          string // dotted path prefix filter
	IncludeInternal bool   // keep @internal and underscore-prefixed declarations
	Workers         int    // concurrent matcher workers, 0 means one per CPU
}
