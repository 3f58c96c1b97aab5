package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"VITE_API_URL", "SNAPCODE_API_URL", "OPENAI_API_KEY", "OPENAI_BASE_URL", "SNAPCODE_MODEL", "SNAPCODE_LISTEN_ADDR", "SNAPCODE_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapcode.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.Client.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Client.Timeout)
	assert.Equal(t, DefaultListenAddr, cfg.Server.ListenAddr)
	assert.Equal(t, DefaultModel, cfg.Server.Model)
	assert.Equal(t, DefaultMaxTokens, cfg.Server.MaxTokens)
	assert.InDelta(t, DefaultTemperature, cfg.Server.Temperature, 0.0001)
	assert.Equal(t, "http://127.0.0.1:8002/generate", cfg.Client.GenerateURL())
}

func TestLoad_EmptyOrCommentOnlyFileUsesDefaults(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"comment only", "# snapcode settings\n"},
		{"blank lines", "\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)

			cfg, err := Load(writeConfig(t, tt.body))
			require.NoError(t, err)
			assert.Equal(t, DefaultBaseURL, cfg.Client.BaseURL)
			assert.Equal(t, DefaultModel, cfg.Server.Model)
		})
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
client:
  base_url: https://snap.example.com/api/
  timeout: 30s
server:
  listen_addr: ":9000"
  model: gpt-4o
  max_tokens: 500
  temperature: 0.2
  allowed_origins:
    - https://app.example.com
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://snap.example.com/api", cfg.Client.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	assert.Equal(t, ":9000", cfg.Server.ListenAddr)
	assert.Equal(t, "gpt-4o", cfg.Server.Model)
	assert.Equal(t, 500, cfg.Server.MaxTokens)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "https://snap.example.com/api/generate", cfg.Client.GenerateURL())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "client:\n  base_url: http://from-file:1\n")
	t.Setenv("SNAPCODE_API_URL", "http://from-env:2")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SNAPCODE_MODEL", "gpt-4o-mini")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:2", cfg.Client.BaseURL)
	assert.Equal(t, "sk-test", cfg.Server.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.Server.Model)
}

func TestLoad_ViteEnvIsAccepted(t *testing.T) {
	clearEnv(t)
	t.Setenv("VITE_API_URL", "http://vite:3")

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "http://vite:3", cfg.Client.BaseURL)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "client: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty base url falls back", func(c *Config) { c.Client.BaseURL = "" }, false},
		{"relative url", func(c *Config) { c.Client.BaseURL = "/generate" }, true},
		{"ftp scheme", func(c *Config) { c.Client.BaseURL = "ftp://host" }, true},
		{"negative timeout", func(c *Config) { c.Client.Timeout = -time.Second }, true},
		{"zero max tokens", func(c *Config) { c.Server.MaxTokens = 0 }, true},
		{"temperature too high", func(c *Config) { c.Server.Temperature = 3 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
