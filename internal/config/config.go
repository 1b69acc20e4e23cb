package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"library/internal/models"
)

const (
	ModeDev     = "dev"
	ModeRelease = "release"

	// EnvConfigPath names the environment variable holding a config file path.
	EnvConfigPath = "LIBRARY_CONFIG"
	envMode       = "LIBRARY_MODE"
	envServerAddr = "SERVER_ADDR"
)

//go:embed default.yaml
var defaultYAML []byte

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

type Config struct {
	Version string            `yaml:"version"`
	Mode    string            `yaml:"mode"`
	Server  ServerConfig      `yaml:"server"`
	CORS    CORSConfig        `yaml:"cors"`
	Seed    []models.SeedBook `yaml:"seed"`
}

// Default returns the built-in configuration, including the sample catalog.
func Default() (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return nil, fmt.Errorf("parse default config: %w", err)
	}
	return &cfg, nil
}

// Load starts from Default, overlays the file at path when path is not empty,
// then applies SERVER_ADDR and LIBRARY_MODE from the environment.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(envServerAddr)); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(envMode)); v != "" {
		cfg.Mode = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Mode != ModeDev && c.Mode != ModeRelease {
		errs = append(errs, fmt.Errorf("mode must be %q or %q, got %q", ModeDev, ModeRelease, c.Mode))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	for i, s := range c.Seed {
		if strings.TrimSpace(s.ISBN) == "" {
			errs = append(errs, fmt.Errorf("seed[%d]: isbn is required", i))
		}
		if s.Copies < 1 {
			errs = append(errs, fmt.Errorf("seed[%d] (%s): copies must be >= 1", i, s.ISBN))
		}
	}
	return errors.Join(errs...)
}
