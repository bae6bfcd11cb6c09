package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := withHome(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, home, cfg.DataDir)
	assert.Equal(t, DriverJSON, cfg.Storage.Driver)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, "127.0.0.1:7777", cfg.Serve.Addr)
	assert.True(t, cfg.Notify.Enabled)
	assert.Equal(t, filepath.Join(home, ".vibematrix.json"), cfg.LogPath())
	assert.Equal(t, filepath.Join(home, ".vibematrix-schedule.json"), cfg.SchedulePath())
	assert.Equal(t, filepath.Join(home, ".vibematrix.db"), cfg.SQLitePath())
}

func TestLoadFileEnvAndOverrides(t *testing.T) {
	home := withHome(t)
	path := DefaultPath(home)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: ~/moods
history_limit: 25
storage:
  driver: sqlite
notify:
  enabled: false
`), 0o600))
	t.Setenv("VIBEMATRIX_SERVE_ADDR", "127.0.0.1:9999")

	cfg, err := Load("", map[string]any{"silent": true})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "moods"), cfg.DataDir)
	assert.Equal(t, 25, cfg.HistoryLimit)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.False(t, cfg.Notify.Enabled)
	assert.Equal(t, "127.0.0.1:9999", cfg.Serve.Addr)
	assert.True(t, cfg.Silent)
	assert.Equal(t, filepath.Join(home, "moods", ".vibematrix.json"), cfg.LogPath())
}

func TestLoadExplicitMissingFile(t *testing.T) {
	home := withHome(t)

	_, err := Load(filepath.Join(home, "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	withHome(t)

	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{"unknown driver", map[string]any{"storage.driver": "mongo"}},
		{"postgres without dsn", map[string]any{"storage.driver": "postgres"}},
		{"zero history", map[string]any{"history_limit": 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("", tt.overrides)
			assert.Error(t, err)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	home := withHome(t)
	path := filepath.Join(home, "custom.yaml")

	want := Default(home)
	want.Storage = Storage{Driver: DriverPostgres, DSN: "postgres://localhost/vibes"}
	want.Fast = true
	require.NoError(t, Save(path, &want))

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}
