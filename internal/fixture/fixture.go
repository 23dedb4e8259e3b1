// Package fixture loads txtar test archives from the repository's testdata
// directory.
package fixture

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"golang.org/x/tools/txtar"
)

// Dir returns the absolute path of the repository testdata directory.
func Dir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "testdata")
}

// Files parses testdata/<name>.txtar and returns its files by name.
func Files(t testing.TB, name string) map[string][]byte {
	t.Helper()
	ar, err := txtar.ParseFile(filepath.Join(Dir(), name+".txtar"))
	if err != nil {
		t.Fatalf("parsing fixture %s: %v", name, err)
	}
	files := make(map[string][]byte, len(ar.Files))
	for _, f := range ar.Files {
		files[f.Name] = f.Data
	}
	return files
}

// File returns one file of the archive, failing the test if it is missing.
func File(t testing.TB, name, file string) []byte {
	t.Helper()
	data, ok := Files(t, name)[file]
	if !ok {
		t.Fatalf("fixture %s has no file %s", name, file)
	}
	return data
}

// Extract writes the archive into a fresh temporary directory and returns it.
func Extract(t testing.TB, name string) string {
	t.Helper()
	dir := t.TempDir()
	for file, data := range Files(t, name) {
		path := filepath.Join(dir, file)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}
	return dir
}
