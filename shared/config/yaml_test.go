package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpcwire/rpcwire/shared/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testYaml = `
server:
  address: "localhost:4000"
  name: "test-server"
  version: "0.1.0"
  log_level: "debug"
  throttling:
    rps: 5
    rpm: 100
  ssl:
    enabled: false
`

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestYamlConfigLoad(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), testYaml)

	cfg, err := config.NewYamlConfig(path, zap.NewNop())
	require.NoError(t, err)
	defer cfg.Close()

	addr, err := cfg.ListenAddr()
	require.NoError(t, err)
	assert.Equal(t, "localhost:4000", addr)

	name, err := cfg.ServerName()
	require.NoError(t, err)
	assert.Equal(t, "test-server", name)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, "debug", level)

	rps, err := cfg.ThrottlingRPS()
	require.NoError(t, err)
	assert.Equal(t, 5, rps)

	rpm, err := cfg.ThrottlingRPM()
	require.NoError(t, err)
	assert.Equal(t, 100, rpm)

	sslEnabled, err := cfg.SSLEnabled()
	require.NoError(t, err)
	assert.False(t, sslEnabled)

	mode, err := cfg.SSLMode()
	require.NoError(t, err)
	assert.Equal(t, "manual", mode, "unset SSL mode defaults to manual")

	assert.NoError(t, cfg.Status(context.Background()))
}

func TestYamlConfigMissingFile(t *testing.T) {
	_, err := config.NewYamlConfig(filepath.Join(t.TempDir(), "missing.yaml"), zap.NewNop())
	assert.Error(t, err)
}

func TestYamlConfigUpdate(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, testYaml)

	cfg, err := config.NewYamlConfig(path, zap.NewNop())
	require.NoError(t, err)
	defer cfg.Close()

	writeConfigFile(t, dir, `
server:
  address: "localhost:5000"
`)
	require.NoError(t, cfg.Update())

	addr, err := cfg.ListenAddr()
	require.NoError(t, err)
	assert.Equal(t, "localhost:5000", addr)
}

func TestYamlConfigWatcher(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, testYaml)

	cfg, err := config.NewYamlConfig(path, zap.NewNop())
	require.NoError(t, err)
	defer cfg.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, cfg.StartWatcher(ctx))

	writeConfigFile(t, dir, `
server:
  address: "localhost:6000"
`)

	assert.Eventually(t, func() bool {
		addr, err := cfg.ListenAddr()
		return err == nil && addr == "localhost:6000"
	}, 5*time.Second, 50*time.Millisecond, "watcher should pick up the new listen address")
}

func TestInternalConfigDefaults(t *testing.T) {
	cfg := config.NewInternalConfig()
	defer cfg.Close()

	addr, err := cfg.ListenAddr()
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	cfg.SetListenAddr("localhost:9000")
	addr, err = cfg.ListenAddr()
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", addr)

	rps, err := cfg.ThrottlingRPS()
	require.NoError(t, err)
	assert.Zero(t, rps, "throttling disabled by default")

	assert.NoError(t, cfg.Status(context.Background()))
}
