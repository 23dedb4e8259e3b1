package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/olehluchkiv/typeshapes/internal/analyzer"
	"github.com/olehluchkiv/typeshapes/internal/resolver"
)

// AnalysisConfig holds parameters for the analysis pipeline.
type AnalysisConfig struct {
	Input           string
	Filter          string
	IncludeInternal bool
	Workers         int
	CacheDir        string
	FetchTimeout    time.Duration
}

// RunAnalysis executes the full resolve → analyze → filter pipeline and
// returns the filtered result ready for rendering.
func RunAnalysis(ctx context.Context, cfg AnalysisConfig, logger *slog.Logger) (*analyzer.Result, error) {
	logger = logger.With("component", "analysis")

	// Step 1: Resolve input to a local model file.
	logger.Info("resolving input", "input", cfg.Input)
	path, err := resolver.Resolve(ctx, cfg.Input, resolver.Options{
		CacheDir: cfg.CacheDir,
		Timeout:  cfg.FetchTimeout,
	}, logger)
	if err != nil {
		return nil, errors.Wrap(err, "resolve")
	}

	// Step 2: Analyze declarations.
	opts := analyzer.AnalyzeOptions{
		Filter:          cfg.Filter,
		IncludeInternal: cfg.IncludeInternal,
		Workers:         cfg.Workers,
	}
	result, err := analyzer.Analyze(ctx, path, opts, logger)
	if err != nil {
		return nil, errors.Wrap(err, "analyze")
	}

	// Step 3: Filter results.
	result = analyzer.Filter(result, opts)

	logger.Info("analysis complete",
		"scanned", result.Scanned,
		"declarations", len(result.Declarations))

	return result, nil
}
