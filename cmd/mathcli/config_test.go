package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	require.Equal(t, "math> ", cfg.Prompt)
	require.Equal(t, 20, cfg.HistorySize)
	require.Equal(t, 6, cfg.RoundDecimals)
}

func TestLoadCLIConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := loadCLIConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)
}

func TestLoadCLIConfigOverlaysFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mathutils.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: \"> \"\nround_decimals: 2\n"), 0o644))

	cfg, err := loadCLIConfig(path)
	require.NoError(t, err)
	require.Equal(t, "> ", cfg.Prompt)
	require.Equal(t, 2, cfg.RoundDecimals)
	require.Equal(t, 20, cfg.HistorySize, "unset field keeps its default")
}

func TestLoadCLIConfigMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mathutils.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: [unterminated"), 0o644))

	_, err := loadCLIConfig(path)
	require.Error(t, err)
}
