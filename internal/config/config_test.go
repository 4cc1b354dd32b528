package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Dashboard.Data)
	assert.Nil(t, cfg.Dashboard.RangeStep)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[dashboard]
data = "/srv/launches.csv"
site = "KSC LC-39A"
range-step = 500.0
plot-height = 12
success-color = "#00FF00"
verbose = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Dashboard.Data)
	assert.Equal(t, "/srv/launches.csv", *cfg.Dashboard.Data)
	assert.Equal(t, "KSC LC-39A", *cfg.Dashboard.Site)
	assert.Equal(t, 500.0, *cfg.Dashboard.RangeStep)
	assert.Equal(t, 12, *cfg.Dashboard.PlotHeight)
	assert.Equal(t, "#00FF00", *cfg.Dashboard.SuccessColor)
	assert.Nil(t, cfg.Dashboard.FailureColor)
	assert.True(t, *cfg.Dashboard.Verbose)
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[dashboard]\nsites = \"A\"\n"), 0o644))
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard.sites")
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[dashboard\n"), 0o644))
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	assert.Equal(t, filepath.Join("/cfg", "launchdash", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/data", "launchdash", "launchdash.log"), DefaultLogPath())
}

func TestDefaultDataPathPrefersWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})

	assert.Equal(t, filepath.Join(dir, "data", "launchdash", DefaultDataFile), DefaultDataPath())

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultDataFile), []byte("x"), 0o644))
	assert.Equal(t, DefaultDataFile, DefaultDataPath())
}
