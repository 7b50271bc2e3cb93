package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFromFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment: production
logging:
  level: debug
  format: pretty
session:
  serializer: cbor
  compression: deflate
  max_frame_size_bytes: 1048576
`), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "cbor", cfg.Session.Serializer)
	require.Equal(t, "deflate", cfg.Session.Compression)
	require.EqualValues(t, 1048576, cfg.Session.MaxFrameSizeBytes)
}

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`environment: staging`), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "none", cfg.Session.Serializer)
	require.Equal(t, "off", cfg.Session.Compression)
	require.EqualValues(t, 40<<20, cfg.Session.MaxFrameSizeBytes)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	require.Error(t, err)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := &Config{Environment: "test"}
	setDefaults(cfg)
	require.NoError(t, SaveToFile(cfg, path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, cfg.Environment, loaded.Environment)
	require.Equal(t, cfg.Session.Serializer, loaded.Session.Serializer)
}
