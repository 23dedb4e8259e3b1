package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "markdown", cfg.Output.Format)
	assert.Equal(t, 8080, cfg.Serve.Port)
	assert.Equal(t, 0, cfg.Analyze.Workers)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typeshapes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
analyze:
  filter: chrome.tabs
  include_internal: true
  workers: 4
output:
  format: yaml
fetch:
  timeout: 5s
`), 0o644))

	v := New(path)
	require.NoError(t, Read(v))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "chrome.tabs", cfg.Analyze.Filter)
	assert.True(t, cfg.Analyze.IncludeInternal)
	assert.Equal(t, 4, cfg.Analyze.Workers)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 8080, cfg.Serve.Port, "unset keys keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typeshapes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("serve:\n  port: 9000\n"), 0o644))
	t.Setenv("TYPESHAPES_SERVE_PORT", "9100")
	t.Setenv("TYPESHAPES_ANALYZE_FILTER", "chrome.storage")

	v := New(path)
	require.NoError(t, Read(v))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Serve.Port)
	assert.Equal(t, "chrome.storage", cfg.Analyze.Filter)
}

func TestRead_MissingExplicitFile(t *testing.T) {
	v := New(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, Read(v))
}

func TestRead_NoFileInSearchPath(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	v := New("")
	require.NoError(t, Read(v))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "zero values are valid", config: Config{}},
		{name: "negative workers", config: Config{Analyze: AnalyzeConfig{Workers: -1}}, wantErr: true},
		{name: "port too large", config: Config{Serve: ServeConfig{Port: 70000}}, wantErr: true},
		{name: "negative timeout", config: Config{Fetch: FetchConfig{Timeout: -time.Second}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
