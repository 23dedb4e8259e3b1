package server

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/olehluchkiv/typeshapes/internal/analyzer"
	"github.com/olehluchkiv/typeshapes/internal/report"
)

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>typeshapes: {{.Project}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      max-width: 60rem;
      margin: 0 auto;
      padding: 1rem;
      background-color: #f8f9fa;
      color: #212529;
    }
    @media (prefers-color-scheme: dark) {
      body { background-color: #1a1a2e; color: #e0e0e0; }
      a { color: #8ab4f8; }
    }
    nav { display: flex; gap: 1rem; margin-bottom: 1rem; }
    table { border-collapse: collapse; margin-bottom: 1rem; }
    td, th { border: 1px solid #ccc; padding: 0.3rem 0.8rem; text-align: left; }
    pre { white-space: pre-wrap; font-size: 0.9rem; }
  </style>
</head>
<body>
  <h1>{{.Project}}</h1>
  <nav>
    <a href="/report.md">Markdown</a>
    <a href="/report.json">JSON</a>
    <a href="/report.yaml">YAML</a>
  </nav>
  <table>
    <tr><th>Shape</th><th>Count</th></tr>
    {{range .Summary}}<tr><td>{{.Shape}}</td><td>{{.Count}}</td></tr>
    {{end}}
  </table>
  <pre>{{.Markdown}}</pre>
</body>
</html>
`

// rendered holds the report in every format, encoded once at startup.
type rendered struct {
	markdown []byte
	json     []byte
	yaml     []byte
}

// Handler returns the HTTP handler serving the report for result.
func Handler(result *analyzer.Result, logger *slog.Logger) (http.Handler, error) {
	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "parsing HTML template")
	}

	var r rendered
	if r.markdown, err = report.Render(result, report.FormatMarkdown); err != nil {
		return nil, err
	}
	if r.json, err = report.Render(result, report.FormatJSON); err != nil {
		return nil, err
	}
	if r.yaml, err = report.Render(result, report.FormatYAML); err != nil {
		return nil, err
	}

	project := result.Project
	if project == "" {
		project = "typeshapes report"
	}
	data := struct {
		Project  string
		Summary  []report.SummaryRow
		Markdown string
	}{
		Project:  project,
		Summary:  report.Summary(result),
		Markdown: string(r.markdown),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, req *http.Request) {
		logger.Debug("request received", "method", req.Method, "path", req.URL.Path)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, data); err != nil {
			logger.Error("failed to render template", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	})

	serveBytes := func(path string, format report.Format, body []byte) {
		mux.HandleFunc("GET "+path, func(w http.ResponseWriter, req *http.Request) {
			logger.Debug("request received", "method", req.Method, "path", req.URL.Path)
			w.Header().Set("Content-Type", format.ContentType())
			_, _ = w.Write(body)
		})
	}
	serveBytes("/report.md", report.FormatMarkdown, r.markdown)
	serveBytes("/report.json", report.FormatJSON, r.json)
	serveBytes("/report.yaml", report.FormatYAML, r.yaml)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	return mux, nil
}

// Serve starts the HTTP server for the analysis result.
// It blocks until the context is cancelled.
func Serve(ctx context.Context, result *analyzer.Result, port int, openBrowser bool, logger *slog.Logger) error {
	logger = logger.With("component", "server")

	handler, err := Handler(result, logger)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	url := fmt.Sprintf("http://localhost:%d", port)
	logger.Info("starting HTTP server", "addr", url)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- errors.Wrap(err, "HTTP server error")
		}
		close(errCh)
	}()

	if openBrowser {
		openInBrowser(url, logger)
	}

	// Block until the context is cancelled or the server fails.
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "HTTP server shutdown error")
		}
		return nil
	}
}

// openInBrowser opens the given URL in the default system browser.
func openInBrowser(url string, logger *slog.Logger) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		logger.Warn("unsupported platform for opening browser", "os", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		logger.Warn("failed to open browser", "error", err)
	}
}
