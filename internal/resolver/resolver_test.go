package resolver

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const project = `{"id": 0, "name": "p", "kind": 1, "flags": {}, "children": []}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolve_File(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "model.json")
	writeFile(t, path, project)

	got, err := Resolve(context.Background(), path, Options{}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestResolve_MissingPath(t *testing.T) {
	_, err := Resolve(context.Background(), filepath.Join(t.TempDir(), "missing"), Options{}, discardLogger())
	require.Error(t, err)
}

func TestFindModelInTree_AtRoot(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "docs.json"), project)

	got, err := findModelInTree(tmp)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "docs.json"), got)
}

func TestFindModelInTree_InSubdirectory(t *testing.T) {
	tmp := t.TempDir()
	want := filepath.Join(tmp, "out", "api.json")
	writeFile(t, want, project)

	got, err := findModelInTree(tmp)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindModelInTree_PrefersDocsJSON(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "a.json"), project)
	writeFile(t, filepath.Join(tmp, "docs.json"), project)

	got, err := findModelInTree(tmp)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "docs.json"), got)
}

func TestFindModelInTree_IgnoresOtherJSON(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "package.json"), `{"name": "pkg", "version": "1.0.0"}`)
	writeFile(t, filepath.Join(tmp, "tsconfig.json"), `{"compilerOptions": {}}`)
	want := filepath.Join(tmp, "build", "docs.json")
	writeFile(t, want, project)

	got, err := findModelInTree(tmp)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindModelInTree_PicksShallowest(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "a", "b", "docs.json"), project)
	shallow := filepath.Join(tmp, "z", "docs.json")
	writeFile(t, shallow, project)

	got, err := findModelInTree(tmp)
	require.NoError(t, err)
	assert.Equal(t, shallow, got)
}

func TestFindModelInTree_SameDepthSorted(t *testing.T) {
	tmp := t.TempDir()
	alpha := filepath.Join(tmp, "alpha", "docs.json")
	writeFile(t, alpha, project)
	writeFile(t, filepath.Join(tmp, "beta", "docs.json"), project)

	got, err := findModelInTree(tmp)
	require.NoError(t, err)
	assert.Equal(t, alpha, got)
}

func TestFindModelInTree_SkipsVendorAndNodeModules(t *testing.T) {
	tmp := t.TempDir()
	for _, skip := range []string{"vendor", "node_modules", ".git"} {
		writeFile(t, filepath.Join(tmp, skip, "docs.json"), project)
	}

	_, err := findModelInTree(tmp)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoModel))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestResolve_URLDownloadsIntoCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, project)
	}))
	defer srv.Close()

	cache := t.TempDir()
	got, err := Resolve(context.Background(), srv.URL+"/docs.json", Options{CacheDir: cache}, discardLogger())
	require.NoError(t, err)

	rel, err := filepath.Rel(cache, got)
	require.NoError(t, err)
	assert.Equal(t, "models", filepath.Dir(rel))
	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.JSONEq(t, project, string(data))
}

func TestResolve_URLFallsBackToCache(t *testing.T) {
	var down atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if down.Load() {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, project)
	}))
	defer srv.Close()

	opts := Options{CacheDir: t.TempDir()}
	first, err := Resolve(context.Background(), srv.URL, opts, discardLogger())
	require.NoError(t, err)

	down.Store(true)
	second, err := Resolve(context.Background(), srv.URL, opts, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_URLFailsWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := Resolve(context.Background(), srv.URL, Options{CacheDir: t.TempDir()}, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestResolve_URLRejectsNonModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"hello": "world"}`)
	}))
	defer srv.Close()

	cache := t.TempDir()
	_, err := Resolve(context.Background(), srv.URL, Options{CacheDir: cache}, discardLogger())
	require.Error(t, err)

	entries, _ := os.ReadDir(filepath.Join(cache, "models"))
	assert.Empty(t, entries)
}

func TestCachePath_StablePerURL(t *testing.T) {
	opts := Options{CacheDir: "/cache"}
	a, err := cachePath("https://example.com/a.json", opts)
	require.NoError(t, err)
	b, err := cachePath("https://example.com/a.json", opts)
	require.NoError(t, err)
	c, err := cachePath("https://example.com/c.json", opts)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
