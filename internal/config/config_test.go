package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config discovery at empty directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, used, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Empty(t, used)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_file: grades.txt\nformat: json\n"), 0o644))

	cfg, used, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "grades.txt", cfg.DataFile)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, DefaultReportFile, cfg.ReportFile)
	assert.Equal(t, path, used)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	isolate(t)
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_DiscoversXDGConfig(t *testing.T) {
	isolate(t)
	xdg := os.Getenv("XDG_CONFIG_HOME")
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "gradebook"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "gradebook", "gradebook.yaml"), []byte("report_file: out.txt\n"), 0o644))

	cfg, used, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "out.txt", cfg.ReportFile)
	assert.NotEmpty(t, used)
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("GRADEBOOK_DATA_FILE", "env.txt")

	cfg, _, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env.txt", cfg.DataFile)
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradebook.yaml")
	require.NoError(t, WriteDefault(path, false))

	cfg, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	assert.Error(t, WriteDefault(path, false), "refuses to overwrite")
	assert.NoError(t, WriteDefault(path, true))
}
