package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	LogLevel    string   `yaml:"log_level"`
	CORSOrigins []string `yaml:"cors_origins"`

	// IncludeMoveType keeps the "type" field in serialized moves.
	IncludeMoveType bool `yaml:"include_move_type"`
	// AllowOppositeCheck accepts positions where the side not to move is in check.
	AllowOppositeCheck bool `yaml:"allow_opposite_check"`
}

func Default() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8080,
		LogLevel:        "info",
		CORSOrigins:     []string{"*"},
		IncludeMoveType: true,
	}
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("'%s': %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: '%s': %v", ErrInvalidConfig, path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("HOST"); ok && v != "" {
		c.Host = v
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PORT %q is not a number", ErrInvalidConfig, v)
		}
		c.Port = port
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		c.CORSOrigins = c.CORSOrigins[:0]
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.CORSOrigins = append(c.CORSOrigins, origin)
			}
		}
	}
	return nil
}

func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("%w: no CORS origins", ErrInvalidConfig)
	}
	return nil
}

// Addr is the listen address in host:port form.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Level returns the parsed log level. Call only on a validated config.
func (c Config) Level() zerolog.Level {
	level, _ := zerolog.ParseLevel(c.LogLevel)
	return level
}

func (c Config) AllowOrigins() string {
	return strings.Join(c.CORSOrigins, ",")
}
