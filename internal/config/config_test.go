package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sorter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.DecisionLog.Enabled)
	assert.Equal(t, "decisions.jsonl", cfg.DecisionLog.FileName)
	assert.Equal(t, "sorter", cfg.Metrics.Namespace)
	assert.False(t, cfg.Server.TLSEnabled())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9000"
  read_timeout: 2s
  enable_debug: true
log:
  level: debug
  format: json
decision_log:
  enabled: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout, "unset keys keep defaults")
	assert.True(t, cfg.Server.EnableDebug)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.DecisionLog.Enabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")
	t.Setenv("SORTER_LOG_LEVEL", "warn")
	t.Setenv("SORTER_SERVER_ENABLE_DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Server.EnableDebug)
}

func TestLoad_PortEnv(t *testing.T) {
	t.Setenv("PORT", "3000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Server.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown level", "log:\n  level: loud\n", "Config.Log.Level"},
		{"unknown format", "log:\n  format: xml\n", "Config.Log.Format"},
		{"zero timeout", "server:\n  read_timeout: 0s\n", "Config.Server.ReadTimeout"},
		{"cert without key", "server:\n  tls_cert_file: cert.pem\n", "Config.Server.TLSKeyFile"},
		{"decision log without dir", "decision_log:\n  enabled: true\n  dir: \"\"\n", "Config.DecisionLog.Dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestServerConfig_TLSEnabled(t *testing.T) {
	s := ServerConfig{TLSCertFile: "cert.pem", TLSKeyFile: "key.pem"}
	assert.True(t, s.TLSEnabled())

	s.TLSKeyFile = ""
	assert.False(t, s.TLSEnabled())
}
