package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	require.NotNil(t, config)

	// LogLevel stays empty so the precedence logic in logger.go applies
	assert.Empty(t, config.LogLevel)
	assert.NotEmpty(t, config.LogFormat)
}

func TestLoadConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("GPUMAP_CATALOG_PATH", "/srv/gpus")
	t.Setenv("DATABASE_URL", "postgres://localhost/gpus")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/srv/gpus", config.CatalogPath)
	assert.Equal(t, "postgres://localhost/gpus", config.DatabaseURL)
	assert.Equal(t, "debug", config.EnvLogLevel)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gpumap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog_path: ./catalog\ndatabase_url: sqlite://gpus.db\nlog_format: json\n"), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "./catalog", config.CatalogPath)
	assert.Equal(t, "sqlite://gpus.db", config.DatabaseURL)
	assert.Equal(t, "json", config.LogFormat)
	assert.Equal(t, path, config.ConfigFile)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{"default", Config{}, "info"},
		{"explicit wins", Config{LogLevel: "error", Verbose: true}, "error"},
		{"invalid explicit", Config{LogLevel: "loud"}, "info"},
		{"verbose", Config{Verbose: true, EnvLogLevel: "warn"}, "debug"},
		{"quiet", Config{Quiet: true}, "warn"},
		{"verbose and quiet", Config{Verbose: true, Quiet: true}, "warn"},
		{"environment", Config{EnvLogLevel: "trace"}, "trace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(&tt.config))
		})
	}
}
