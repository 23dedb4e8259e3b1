package analyzer

import (
	"context"
	"log/slog"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/olehluchkiv/typeshapes/internal/match"
	"github.com/olehluchkiv/typeshapes/internal/model"
	"github.com/olehluchkiv/typeshapes/internal/typedoc"
)

// Analyze loads the TypeDoc model at path and recognizes shapes in every
// declaration it contains.
func Analyze(ctx context.Context, path string, opts AnalyzeOptions, logger *slog.Logger) (*Result, error) {
	project, err := typedoc.Load(path)
	if err != nil {
		return nil, errors.Wrap(err, "loading model")
	}
	logger.Info("model loaded", "path", path, "project", project.Name)
	return AnalyzeProject(ctx, project, opts, logger)
}

type entry struct {
	path string
	decl *model.Declaration
}

// AnalyzeProject runs the matchers over every declaration below project.
// Matchers run concurrently; results keep the order of a depth-first walk.
func AnalyzeProject(ctx context.Context, project *model.Declaration, opts AnalyzeOptions, logger *slog.Logger) (*Result, error) {
	var entries []entry
	project.Walk(func(path []string, d *model.Declaration) bool {
		if d != project {
			entries = append(entries, entry{path: strings.Join(path, "."), decl: d})
		}
		return true
	})
	logger.Info("declarations collected", "count", len(entries))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	findings := make([][]Finding, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			findings[i] = Inspect(e.decl)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "analysis interrupted")
	}

	result := &Result{Project: project.Name, Scanned: len(entries)}
	for i, e := range entries {
		if len(findings[i]) == 0 {
			continue
		}
		for _, f := range findings[i] {
			logger.Debug("shape found", "path", e.path, "shape", f.Shape)
		}
		result.Declarations = append(result.Declarations, DeclarationResult{
			Path:        e.path,
			Name:        e.decl.Name,
			Kind:        e.decl.Kind,
			Comment:     e.decl.Comment,
			Internal:    e.decl.Internal,
			Declaration: e.decl,
			Findings:    findings[i],
		})
	}

	logger.Info("analysis complete", "scanned", result.Scanned, "matched", len(result.Declarations))
	return result, nil
}

// Inspect applies the matchers relevant to the kind of d.
func Inspect(d *model.Declaration) []Finding {
	var out []Finding
	switch d.Kind {
	case model.ReflectionTypeAlias:
		if opts, ok := match.Enum(d); ok {
			out = append(out, Finding{Shape: ShapeEnum, Enum: opts})
		}
		out = append(out, typeFindings(d.Type)...)
	case model.ReflectionEnum:
		if opts, ok := match.Enum(d); ok {
			out = append(out, Finding{Shape: ShapeEnum, Enum: opts})
		}
	case model.ReflectionVariable, model.ReflectionProperty:
		out = append(out, typeFindings(d.Type)...)
		if _, isFunc := d.Type.(*model.Function); isFunc {
			out = append(out, functionFindings(d)...)
		}
	default:
		if d.Kind.IsCallable() && len(d.Signatures) > 1 {
			out = append(out, functionFindings(d)...)
		}
	}
	return out
}

func typeFindings(t model.Type) []Finding {
	var out []Finding
	if m, ok := match.ArrayType(t); ok {
		out = append(out, Finding{Shape: ShapeArray, Array: &m})
	}
	if m, ok := match.TypeLiteral(t); ok {
		out = append(out, Finding{Shape: ShapeLiteral, TypeLiteral: &m})
	}
	return out
}

func functionFindings(d *model.Declaration) []Finding {
	if m, ok := match.UnifiedFunction(d); ok {
		return []Finding{{Shape: ShapeFunction, Function: &m}}
	}
	return nil
}
