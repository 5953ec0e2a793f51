package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabsgo/version"
)

// isolateConfig points the user config dir at a fresh temp dir.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("AppData", dir)
	return dir
}

func writeConfigFile(t *testing.T, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(configDir(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir(), "config.yaml"), []byte(body), 0o644))
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := LoadConfig(newViper())
	require.NoError(t, err)

	assert.Equal(t, "tabsgo.sock", filepath.Base(cfg.SocketPath))
	assert.Equal(t, "127.0.0.1:8765", cfg.ListenAddr)
	assert.False(t, cfg.OpenBrowser)
	assert.Equal(t, version.Engine, cfg.Versions.Chrome)
	assert.Equal(t, version.ScriptRuntime, cfg.Versions.Node)
	assert.Equal(t, version.Version, cfg.Versions.Electron)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	isolateConfig(t)
	t.Setenv("TABSGO_VERSIONS_CHROME", "126.0.6478.36")
	t.Setenv("TABSGO_LISTEN_ADDR", "localhost:9000")
	t.Setenv("TABSGO_OPEN_BROWSER", "true")

	cfg, err := LoadConfig(newViper())
	require.NoError(t, err)

	assert.Equal(t, "126.0.6478.36", cfg.Versions.Chrome)
	assert.Equal(t, "localhost:9000", cfg.ListenAddr)
	assert.True(t, cfg.OpenBrowser)
}

func TestLoadConfig_ListenAddrForms(t *testing.T) {
	for _, addr := range []string{"[::1]:8765", ":8765", "127.0.0.1:0", "localhost:9000"} {
		t.Run(addr, func(t *testing.T) {
			isolateConfig(t)
			t.Setenv("TABSGO_LISTEN_ADDR", addr)

			cfg, err := LoadConfig(newViper())
			require.NoError(t, err)
			assert.Equal(t, addr, cfg.ListenAddr)
		})
	}
}

func TestNewViper_NoSideEffects(t *testing.T) {
	isolateConfig(t)

	_ = newViper()
	_, err := os.Stat(configDir())
	assert.True(t, os.IsNotExist(err), "config dir must not be created")
}

func TestLoadConfig_File(t *testing.T) {
	isolateConfig(t)
	writeConfigFile(t, "versions:\n  node: 20.11.1\nsocket_path: /tmp/tabsgo-test.sock\n")

	cfg, err := LoadConfig(newViper())
	require.NoError(t, err)

	assert.Equal(t, "20.11.1", cfg.Versions.Node)
	assert.Equal(t, "/tmp/tabsgo-test.sock", cfg.SocketPath)
	assert.Equal(t, version.Engine, cfg.Versions.Chrome)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "listen address without port", file: "listen_addr: localhost\n"},
		{name: "listen port out of range", file: "listen_addr: \"[::1]:70000\"\n"},
		{name: "empty version", file: "versions:\n  electron: \"\"\n"},
		{name: "malformed yaml", file: "versions: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			writeConfigFile(t, tt.file)

			_, err := LoadConfig(newViper())
			assert.Error(t, err)
		})
	}
}
