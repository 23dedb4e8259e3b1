package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"gopkg.in/yaml.v3"

	"github.com/olehluchkiv/typeshapes/internal/analyzer"
)

// Format selects the output encoding.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat accepts a format name, with "md" and "yml" as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.WithHint(errors.Newf("unknown output format %q", s), "use one of markdown, json, yaml")
}

// ContentType returns the HTTP media type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	}
	return "text/markdown; charset=utf-8"
}

// Render encodes result in the given format.
func Render(result *analyzer.Result, format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return []byte(Markdown(result)), nil
	case FormatJSON:
		return JSON(result)
	case FormatYAML:
		return YAML(result)
	}
	return nil, errors.Newf("unknown output format %q", format)
}

// JSON encodes the result document as indented JSON with sorted map keys.
func JSON(result *analyzer.Result) ([]byte, error) {
	data, err := json.Marshal(Build(result), jsontext.WithIndent("  "), json.Deterministic(true))
	if err != nil {
		return nil, errors.Wrap(err, "encoding JSON report")
	}
	return append(data, '\n'), nil
}

// YAML encodes the result document as YAML.
func YAML(result *analyzer.Result) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Build(result)); err != nil {
		return nil, errors.Wrap(err, "encoding YAML report")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encoding YAML report")
	}
	return buf.Bytes(), nil
}

// SummaryRow is one line of the per-shape summary.
type SummaryRow struct {
	Shape string
	Count int
}

// Summary returns finding counts per shape in a fixed order. Shapes with no
// findings are included with a zero count.
func Summary(result *analyzer.Result) []SummaryRow {
	counts := result.Count()
	shapes := []analyzer.Shape{analyzer.ShapeArray, analyzer.ShapeLiteral, analyzer.ShapeEnum, analyzer.ShapeFunction}
	rows := make([]SummaryRow, 0, len(shapes))
	for _, s := range shapes {
		rows = append(rows, SummaryRow{Shape: string(s), Count: counts[s]})
	}
	return rows
}

// Markdown produces a human-readable report. Declarations are sorted by path.
func Markdown(result *analyzer.Result) string {
	doc := Build(result)
	var b strings.Builder

	title := doc.Project
	if title == "" {
		title = "typeshapes report"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Scanned %d declarations, %d with recognized shapes.\n\n", doc.Scanned, len(doc.Declarations))

	b.WriteString("| Shape | Count |\n")
	b.WriteString("|-------|-------|\n")
	for _, row := range Summary(result) {
		fmt.Fprintf(&b, "| %s | %d |\n", row.Shape, row.Count)
	}

	for _, e := range doc.Declarations {
		fmt.Fprintf(&b, "\n## %s\n\n", e.Path)
		fmt.Fprintf(&b, "_%s_", e.Kind)
		if e.Internal {
			b.WriteString(" (internal)")
		}
		b.WriteString("\n")
		if e.Comment != "" {
			fmt.Fprintf(&b, "\n%s\n", e.Comment)
		}
		b.WriteString("\n")
		for _, f := range e.Findings {
			fmt.Fprintf(&b, "- **%s**: `%s`\n", f.Shape, findingText(f))
		}
	}
	return b.String()
}

func findingText(f Finding) string {
	switch {
	case f.Array != nil:
		return arrayText(f.Array)
	case f.TypeLiteral != nil:
		return literalText(f.TypeLiteral)
	case f.Function != nil:
		return functionText(f.Function)
	case f.Enum != nil:
		parts := make([]string, len(f.Enum))
		for i, v := range f.Enum {
			parts[i] = valueText(v)
		}
		return strings.Join(parts, " | ")
	}
	return ""
}

func arrayText(a *ArrayDoc) string {
	lo, hi := "0", "*"
	if a.Min != nil {
		lo = strconv.Itoa(*a.Min)
	}
	if a.Max != nil {
		hi = strconv.Itoa(*a.Max)
	}
	return fmt.Sprintf("%s[%s..%s]", a.Element, lo, hi)
}

func literalText(l *LiteralDoc) string {
	var b strings.Builder
	if l.Root != "" {
		b.WriteString(l.Root)
		b.WriteString(" & ")
	}
	b.WriteString("{ ")
	for i, p := range l.Properties {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(p.Name)
		if p.Optional {
			b.WriteByte('?')
		}
		b.WriteString(": ")
		b.WriteString(p.Type)
	}
	b.WriteString(" }")
	return b.String()
}

func functionText(fn *FunctionDoc) string {
	parts := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		opt := ""
		if p.Optional {
			opt = "?"
		}
		parts[i] = p.Name + opt + ": " + p.Type
	}
	return "(" + strings.Join(parts, ", ") + ") => " + fn.Return
}

func valueText(v any) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return fmt.Sprint(v)
}
