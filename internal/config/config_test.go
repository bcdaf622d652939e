package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"render3d/internal/bounds"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "render3d.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
title = "demo"

[render]
culling = false
precise = true
volume = "sphere"

[scene]
path = "scenes/demo.yaml"
watch = true

[logging]
level = "debug"
format = "json"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width, "unset keys keep defaults")
	assert.False(t, cfg.Render.Culling)
	assert.True(t, cfg.Render.Precise)
	assert.Equal(t, bounds.KindSphere, cfg.VolumeKind())
	assert.Equal(t, "skyblue", cfg.Render.ClearColor)
	assert.Equal(t, "scenes/demo.yaml", cfg.Scene.Path)
	assert.Equal(t, "assets/scripts", cfg.Scene.ScriptsDir)
	assert.True(t, cfg.Scene.Watch)
	assert.Equal(t, LoggingConfig{Level: "debug", Format: "json"}, cfg.Logging)
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Render.Culling)
	assert.Equal(t, bounds.KindOBB, cfg.VolumeKind())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[window\n", "parse config"},
		{"volume", "[render]\nvolume = \"capsule\"\n", "render.volume"},
		{"size", "[window]\nwidth = 0\n", "window size"},
		{"format", "[logging]\nformat = \"xml\"\n", "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
