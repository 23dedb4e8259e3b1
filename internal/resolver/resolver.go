package resolver

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/olehluchkiv/typeshapes/internal/typedoc"
)

// ErrNoModel is returned when no TypeDoc JSON model can be found for an input.
var ErrNoModel = errors.New("no TypeDoc model found")

// modelFile is the file name typedoc --json conventionally writes.
const modelFile = "docs.json"

// maxDepth bounds the directory search below the input directory.
const maxDepth = 4

// Options controls how inputs are resolved.
type Options struct {
	CacheDir string        // where downloaded models are kept; defaults to the user cache dir
	Timeout  time.Duration // download timeout, 0 means no timeout beyond ctx
	Client   *http.Client
}

// Resolve takes an input (model file, directory, or http(s) URL) and returns
// the path of a local TypeDoc JSON model.
func Resolve(ctx context.Context, input string, opts Options, logger *slog.Logger) (string, error) {
	if isURL(input) {
		return fetchModel(ctx, input, opts, logger)
	}

	absPath, err := filepath.Abs(input)
	if err != nil {
		return "", errors.Wrap(err, "resolving path")
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", errors.Wrapf(err, "stat %s", absPath)
	}

	if !info.IsDir() {
		logger.Info("resolved model file", "input", input, "path", absPath)
		return absPath, nil
	}

	path, err := findModelInTree(absPath)
	if err != nil {
		return "", err
	}
	logger.Info("resolved model in directory", "input", input, "path", path)
	return path, nil
}

func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// cachePath returns a stable file for caching a downloaded model.
// Uses <cache>/typeshapes/models/<hash>.json where hash is derived from the URL.
func cachePath(url string, opts Options) (string, error) {
	base := opts.CacheDir
	if base == "" {
		userCache, err := os.UserCacheDir()
		if err != nil {
			return "", errors.Wrap(err, "getting cache dir")
		}
		base = filepath.Join(userCache, "typeshapes")
	}
	h := sha256.Sum256([]byte(url))
	return filepath.Join(base, "models", fmt.Sprintf("%x.json", h[:8])), nil
}

// fetchModel downloads the model into the cache. If the download fails and a
// cached copy exists, the cached copy is used.
func fetchModel(ctx context.Context, url string, opts Options, logger *slog.Logger) (string, error) {
	dest, err := cachePath(url, opts)
	if err != nil {
		return "", err
	}

	logger.Info("downloading model", "url", url, "dest", dest)
	if err := download(ctx, url, dest, opts); err != nil {
		if _, statErr := os.Stat(dest); statErr == nil {
			logger.Warn("download failed, using cached model", "url", url, "error", err)
			return dest, nil
		}
		return "", errors.Wrapf(err, "downloading %s", url)
	}

	logger.Info("download complete", "dest", dest)
	return dest, nil
}

func download(ctx context.Context, url, dest string, opts Options) error {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading response")
	}
	if _, err := typedoc.Decode(data); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errors.Wrap(err, "creating cache dir")
	}
	// dest is only replaced once the whole body is on disk.
	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "writing cache")
	}
	return errors.Wrap(os.Rename(tmp, dest), "writing cache")
}

// skipDirs are never searched for models.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

// findModelInTree searches root breadth-first for a TypeDoc model. In each
// directory docs.json wins; otherwise the first *.json (by name) that decodes
// as a TypeDoc project is used. Directories at the same depth are visited in
// name order.
func findModelInTree(root string) (string, error) {
	level := []string{root}
	for depth := 0; depth <= maxDepth && len(level) > 0; depth++ {
		var next []string
		for _, dir := range level {
			entries, err := os.ReadDir(dir)
			if err != nil {
				continue
			}
			if path, ok := modelIn(dir, entries); ok {
				return path, nil
			}
			for _, e := range entries {
				if !e.IsDir() || skipDirs[e.Name()] || strings.HasPrefix(e.Name(), ".") {
					continue
				}
				next = append(next, filepath.Join(dir, e.Name()))
			}
		}
		sort.Strings(next)
		level = next
	}

	return "", errors.WithHint(
		errors.Wrapf(ErrNoModel, "searching %s", root),
		"generate one with: npx typedoc --json docs.json",
	)
}

// modelIn picks the model file among the entries of a single directory.
func modelIn(dir string, entries []os.DirEntry) (string, bool) {
	var candidates []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if e.Name() == modelFile {
			candidates = append([]string{e.Name()}, candidates...)
			continue
		}
		candidates = append(candidates, e.Name())
	}
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if isModel(path) {
			return path, true
		}
	}
	return "", false
}

func isModel(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	_, err = typedoc.Decode(data)
	return err == nil
}
