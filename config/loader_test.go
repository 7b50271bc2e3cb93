package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFallsBackToDefaultsWithoutAnyFile(t *testing.T) {
	cfg, err := Load(LoaderOptions{ConfigDir: t.TempDir(), Environment: "test"})
	require.NoError(t, err)
	require.Equal(t, "test", cfg.Environment)
	require.Equal(t, "none", cfg.Session.Serializer)
}

func TestLoadPrefersEnvironmentSpecificFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.yaml"), []byte("logging:\n  level: warn\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "staging.yaml"), []byte("logging:\n  level: debug\n"), 0o644))

	cfg, err := Load(LoaderOptions{ConfigDir: dir, Environment: "staging"})
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsInvalidSerializer(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("session:\n  serializer: xml\n"), 0o644))

	_, err := Load(LoaderOptions{ConfigDir: dir, Environment: "test"})
	require.Error(t, err)
}

func TestLoadHonorsEnvironmentOverride(t *testing.T) {
	require.NoError(t, os.Setenv("PKSTL_LOG_LEVEL", "error"))
	defer os.Unsetenv("PKSTL_LOG_LEVEL")

	cfg, err := Load(LoaderOptions{ConfigDir: t.TempDir(), Environment: "test"})
	require.NoError(t, err)
	require.Equal(t, "error", cfg.Logging.Level)
}

func TestMustLoadPanicsOnValidationFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("session:\n  compression: gzip\n"), 0o644))

	require.Panics(t, func() {
		MustLoad(LoaderOptions{ConfigDir: dir, Environment: "test"})
	})
}
