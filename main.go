package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/olehluchkiv/typeshapes/internal/analyzer"
	"github.com/olehluchkiv/typeshapes/internal/config"
	"github.com/olehluchkiv/typeshapes/internal/logging"
	"github.com/olehluchkiv/typeshapes/internal/report"
	"github.com/olehluchkiv/typeshapes/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		stop()
		os.Exit(1)
	}
}

// app carries state shared by the subcommands once the root command has
// loaded configuration and logging.
type app struct {
	configFile string
	v          *viper.Viper
	cfg        *config.Config
	logger     *slog.Logger
	cleanup    func()
}

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"log-level":        "log.level",
	"log-file":         "log.file",
	"log-format":       "log.format",
	"filter":           "analyze.filter",
	"include-internal": "analyze.include_internal",
	"workers":          "analyze.workers",
	"format":           "output.format",
	"output":           "output.path",
	"port":             "serve.port",
	"cache-dir":        "cache.dir",
	"timeout":          "fetch.timeout",
}

func newRootCmd() *cobra.Command {
	a := &app{cleanup: func() {}}

	root := &cobra.Command{
		Use:   "typeshapes",
		Short: "Recognize array, type-literal, enum and overloaded-function shapes in TypeDoc models",
		Long: `typeshapes reads the JSON model written by "typedoc --json" and reports which
declarations have a shape a binding generator can map directly: bounded arrays,
object literals over a root type, literal enums and unifiable overload sets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.cleanup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: ./typeshapes.yaml or ~/.config/typeshapes/typeshapes.yaml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "also write logs to this file")
	pf.String("log-format", "json", "log format (json, text)")
	pf.String("cache-dir", "", "directory for downloaded models")
	pf.Duration("timeout", 0, "download timeout for URL inputs (default 30s)")

	root.AddCommand(newAnalyzeCmd(a), newServeCmd(a))
	return root
}

// setup loads configuration and logging for the command about to run.
func (a *app) setup(cmd *cobra.Command) error {
	a.v = config.New(a.configFile)
	if err := bindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}
	if err := config.Read(a.v); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger, cleanup, err := logging.Setup(logging.Options{
		Level:  level,
		File:   cfg.Log.File,
		Format: cfg.Log.Format,
	}, cmd.ErrOrStderr())
	if err != nil {
		return errors.Wrap(err, "failed to setup logging")
	}
	a.logger = logger
	a.cleanup = cleanup

	if used := a.v.ConfigFileUsed(); used != "" {
		logger.Debug("config loaded", "file", used)
	}
	return nil
}

// bindFlags binds every known flag present on the command to its config key.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "binding --%s", name)
		}
	}
	return nil
}

func (a *app) analysisConfig(input string) server.AnalysisConfig {
	return server.AnalysisConfig{
		Input:           input,
		Filter:          a.cfg.Analyze.Filter,
		IncludeInternal: a.cfg.Analyze.IncludeInternal,
		Workers:         a.cfg.Analyze.Workers,
		CacheDir:        a.cfg.Cache.Dir,
		FetchTimeout:    a.cfg.Fetch.Timeout,
	}
}

func addAnalyzeFlags(fs *pflag.FlagSet) {
	fs.String("filter", "", "dotted declaration path prefix filter, e.g. chrome.tabs")
	fs.Bool("include-internal", false, "include @internal and underscore-prefixed declarations")
	fs.Int("workers", 0, "concurrent matcher workers (default one per CPU)")
}

func newAnalyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <model.json|dir|url>",
		Short: "Analyze a TypeDoc model and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd.Context(), args[0], cmd.OutOrStdout())
		},
	}
	addAnalyzeFlags(cmd.Flags())
	cmd.Flags().StringP("format", "f", "markdown", "output format (markdown, json, yaml)")
	cmd.Flags().StringP("output", "o", "", "write the report to this file instead of stdout")
	return cmd
}

func (a *app) runAnalyze(ctx context.Context, input string, out io.Writer) error {
	format, err := report.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return err
	}

	result, err := server.RunAnalysis(ctx, a.analysisConfig(input), a.logger)
	if err != nil {
		a.logger.Error("analysis failed", "error", err)
		return err
	}

	data, err := report.Render(result, format)
	if err != nil {
		return err
	}

	path := a.cfg.Output.Path
	if path == "" {
		_, err := out.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		a.logger.Error("failed to write output file", "error", err)
		return errors.Wrapf(err, "writing %s", path)
	}
	return printSummary(out, result, format, path)
}

// printSummary shows a per-shape table after a report was written to a file.
func printSummary(out io.Writer, result *analyzer.Result, format report.Format, path string) error {
	data := pterm.TableData{{"Shape", "Count"}}
	for _, row := range report.Summary(result) {
		data = append(data, []string{row.Shape, strconv.Itoa(row.Count)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithWriter(out).WithData(data).Render(); err != nil {
		return errors.Wrap(err, "rendering summary")
	}
	pterm.Success.WithWriter(out).Printfln("Wrote %s report for %d of %d declarations to %s",
		format, len(result.Declarations), result.Scanned, path)
	return nil
}

func newServeCmd(a *app) *cobra.Command {
	var noBrowser bool

	cmd := &cobra.Command{
		Use:   "serve <model.json|dir|url>",
		Short: "Analyze a TypeDoc model and serve the report over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			result, err := server.RunAnalysis(ctx, a.analysisConfig(args[0]), a.logger)
			if err != nil {
				a.logger.Error("analysis failed", "error", err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Starting server on http://localhost:%d\n", a.cfg.Serve.Port)
			if err := server.Serve(ctx, result, a.cfg.Serve.Port, !noBrowser, a.logger); err != nil {
				a.logger.Error("server error", "error", err)
				return err
			}
			return nil
		},
	}
	addAnalyzeFlags(cmd.Flags())
	cmd.Flags().Int("port", 8080, "HTTP server port")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "skip auto-opening browser")
	return cmd
}
