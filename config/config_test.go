package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpilot/recommend"
)

func TestHomeFromEnv(t *testing.T) {
	t.Setenv(HomeEnvVar, "/tmp/custom-home")

	home, err := Home()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-home", home)
}

func TestHomeDefault(t *testing.T) {
	t.Setenv(HomeEnvVar, "")
	t.Setenv("HOME", "/home/someone")

	home, err := Home()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/someone", ".taskpilot"), home)
}

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnvVar, home)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "tasks.json"), cfg.DataFile)
	assert.Equal(t, recommend.DefaultLimit, cfg.Recommend.Limit)
	assert.False(t, cfg.Log.Verbose)
	assert.False(t, cfg.Log.Quiet)
}

func TestLoadFromFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnvVar, home)

	content := "data_file: /tmp/elsewhere/tasks.json\nrecommend:\n  limit: 3\nlog:\n  verbose: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere/tasks.json", cfg.DataFile)
	assert.Equal(t, 3, cfg.Recommend.Limit)
	assert.True(t, cfg.Log.Verbose)
}

func TestEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnvVar, home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("recommend:\n  limit: 3\n"), 0o644))
	t.Setenv("TASKPILOT_RECOMMEND_LIMIT", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Recommend.Limit)
}

func TestEnvOverridesDataFile(t *testing.T) {
	t.Setenv(HomeEnvVar, t.TempDir())
	t.Setenv("TASKPILOT_DATA_FILE", "/tmp/env/tasks.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env/tasks.json", cfg.DataFile)
}

func TestLoadFromPathMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(HomeEnvVar, t.TempDir())

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, recommend.DefaultLimit, cfg.Recommend.Limit)
}

func TestValidateRejectsBadLimit(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnvVar, home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("recommend:\n  limit: 0\n"), 0o644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recommend.limit")
}

func TestValidateRejectsEmptyDataFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnvVar, home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(`data_file: "  "`+"\n"), 0o644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data_file")
}
