package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// HTTP server
	Port           string `yaml:"port"`
	APIKey         string `yaml:"api_key"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`

	// Analysis
	Marker    string `yaml:"marker"`
	OutputDir string `yaml:"output_dir"`

	LogLevel string `yaml:"log_level"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:           "8090",
		MaxUploadBytes: 52428800, // 50MB
		Marker:         "TODO",
		OutputDir:      ".",
		LogLevel:       "info",
	}
}

// Load reads the environment over the defaults.
func Load() Config {
	cfg := Defaults()
	cfg.applyEnv()
	return cfg
}

// LoadFile reads a YAML file over the defaults, then the environment over
// that. An empty path behaves like Load.
func LoadFile(path string) (Config, error) {
	if path == "" {
		return Load(), nil
	}

	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = envOr("PORT", c.Port)
	c.APIKey = envOr("DOCSTAT_API_KEY", c.APIKey)
	c.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", c.MaxUploadBytes)
	c.Marker = envOr("DOCSTAT_MARKER", c.Marker)
	c.OutputDir = envOr("DOCSTAT_OUTPUT_DIR", c.OutputDir)
	c.LogLevel = envOr("LOG_LEVEL", c.LogLevel)

	if c.OutputDir == "" {
		c.OutputDir = "."
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Marker) == "" {
		return errors.New("marker must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level maps LogLevel to a slog level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
