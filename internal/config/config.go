package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DefaultBaseURL     = "http://127.0.0.1:8002"
	DefaultListenAddr  = "127.0.0.1:8002"
	DefaultModel       = "gpt-3.5-turbo"
	DefaultMaxTokens   = 2000
	DefaultTemperature = 0.7
	DefaultTimeout     = 120 * time.Second
	DefaultConfigFile  = "snapcode.yaml"
)

// ClientConfig selects the remote generation endpoint.
type ClientConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig configures the generation service and its OpenAI backend.
type ServerConfig struct {
	ListenAddr     string   `yaml:"listen_addr"`
	OpenAIAPIKey   string   `yaml:"openai_api_key"`
	OpenAIBaseURL  string   `yaml:"openai_base_url"`
	Model          string   `yaml:"model"`
	MaxTokens      int      `yaml:"max_tokens"`
	Temperature    float32  `yaml:"temperature"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Config struct {
	Client   ClientConfig `yaml:"client"`
	Server   ServerConfig `yaml:"server"`
	LogLevel string       `yaml:"log_level"`
	LogFile  string       `yaml:"log_file"`
}

// Default returns a Config with every field set to its fallback value.
func Default() *Config {
	return &Config{
		Client: ClientConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Server: ServerConfig{
			ListenAddr:  DefaultListenAddr,
			Model:       DefaultModel,
			MaxTokens:   DefaultMaxTokens,
			Temperature: DefaultTemperature,
		},
		LogLevel: "info",
	}
}

// Load builds the effective configuration: defaults, then the YAML file at path
// (a missing file is fine when path is the default name), then .env and
// process environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	_ = godotenv.Load() // Loads .env file if present
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	// An empty or comment-only file decodes to io.EOF and carries no settings.
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("VITE_API_URL"); v != "" {
		c.Client.BaseURL = v
	}
	if v := os.Getenv("SNAPCODE_API_URL"); v != "" {
		c.Client.BaseURL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Server.OpenAIAPIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.Server.OpenAIBaseURL = v
	}
	if v := os.Getenv("SNAPCODE_MODEL"); v != "" {
		c.Server.Model = v
	}
	if v := os.Getenv("SNAPCODE_LISTEN_ADDR"); v != "" {
		c.Server.ListenAddr = v
	}
	if v := os.Getenv("SNAPCODE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate normalises the base URL and rejects values that cannot work.
func (c *Config) Validate() error {
	if c.Client.BaseURL == "" {
		c.Client.BaseURL = DefaultBaseURL
	}
	c.Client.BaseURL = strings.TrimRight(c.Client.BaseURL, "/")
	u, err := url.Parse(c.Client.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: must be an absolute http(s) URL", c.Client.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base_url %q: unsupported scheme %q", c.Client.BaseURL, u.Scheme)
	}
	if c.Client.Timeout < 0 {
		return fmt.Errorf("client timeout must not be negative")
	}
	if c.Server.MaxTokens <= 0 {
		return fmt.Errorf("server max_tokens must be positive, got %d", c.Server.MaxTokens)
	}
	if c.Server.Temperature < 0 || c.Server.Temperature > 2 {
		return fmt.Errorf("server temperature must be within [0, 2], got %v", c.Server.Temperature)
	}
	return nil
}

// GenerateURL is the full endpoint the client posts to.
func (c ClientConfig) GenerateURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/generate"
}
