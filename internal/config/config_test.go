package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/ufo_sightings.csv", cfg.CSVPath)
	assert.Equal(t, "ufo_sightings.db", cfg.DBPath)
	assert.Equal(t, "data/ufo_cleaned.csv", cfg.CleanedCSVPath)
	assert.Empty(t, cfg.AliasFile)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10, cfg.TopK)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("CSV_PATH", "/data/in.csv")
	t.Setenv("DB_PATH", "/data/sightings.db")
	t.Setenv("CLEANED_CSV_PATH", "/data/out.csv")
	t.Setenv("ALIAS_FILE", "/data/aliases.yaml")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("TOP_K", "5")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/in.csv", cfg.CSVPath)
	assert.Equal(t, "/data/sightings.db", cfg.DBPath)
	assert.Equal(t, "/data/out.csv", cfg.CleanedCSVPath)
	assert.Equal(t, "/data/aliases.yaml", cfg.AliasFile)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidTopK(t *testing.T) {
	t.Setenv("TOP_K", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOP_K")
}

func TestLoadAliases(t *testing.T) {
	t.Run("empty path yields empty map", func(t *testing.T) {
		aliases, err := LoadAliases("")
		require.NoError(t, err)
		assert.Empty(t, aliases)
	})

	t.Run("reads yaml mapping", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "aliases.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sighting_notes: description\nreport_date: datetime\n"), 0o644))

		aliases, err := LoadAliases(path)
		require.NoError(t, err)
		assert.Equal(t, "description", aliases["sighting_notes"])
		assert.Equal(t, "datetime", aliases["report_date"])
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadAliases(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("::: not yaml"), 0o644))
		_, err := LoadAliases(path)
		require.Error(t, err)
	})
}
