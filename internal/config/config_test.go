package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("missing.toml")
	require.NoError(t, err)

	assert.Equal(t, 80, cfg.Game.Width)
	assert.Equal(t, 40, cfg.Game.Height)
	assert.Equal(t, 8, cfg.Game.LightRadius)
	assert.Zero(t, cfg.Game.Seed)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "undercroft.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[game]
seed = 7
width = 60
light_radius = 5

[logging]
format = "json"
`), 0o644))
	t.Setenv(EnvSeed, "99")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(99), cfg.Game.Seed, "env wins over file")
	assert.Equal(t, 60, cfg.Game.Width)
	assert.Equal(t, 40, cfg.Game.Height, "unset keys keep defaults")
	assert.Equal(t, 5, cfg.Game.LightRadius)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "small.toml")
	require.NoError(t, os.WriteFile(path, []byte("[game]\nwidth = 3\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)

	t.Setenv(EnvSeed, "not-a-number")
	_, err = Load("missing.toml")
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[game\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
