package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type AppConfig struct {
	ServiceName string     `yaml:"service_name"`
	LogLevel    string     `yaml:"log_level"`
	Env         string     `yaml:"env"`
	CORSOrigins string     `yaml:"cors_allowed_origins"`
	HTTP        HTTPConfig `yaml:"http"`
}

// IsProduction reports whether APP_ENV (or the file's env) is "production".
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "production")
}

// Load reads the optional YAML file named by CONFIG_FILE and then applies
// environment overrides on top of it.
func Load() (AppConfig, error) {
	var cfg AppConfig
	if err := LoadFile(os.Getenv("CONFIG_FILE"), &cfg); err != nil {
		return AppConfig{}, err
	}

	setFromEnv(&cfg.ServiceName, "SERVICE_NAME")
	setFromEnv(&cfg.LogLevel, "LOG_LEVEL")
	setFromEnv(&cfg.Env, "APP_ENV")
	setFromEnv(&cfg.CORSOrigins, "CORS_ALLOWED_ORIGINS")
	setFromEnv(&cfg.HTTP.Addr, "HTTP_ADDR")

	if cfg.ServiceName == "" {
		return AppConfig{}, errors.New("SERVICE_NAME is required")
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

// LoadFile unmarshals the YAML file at path into out. An empty path is a no-op.
func LoadFile(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func setFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
