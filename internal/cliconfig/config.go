package cliconfig

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/dirfeed/internal/domain"
)

// Defaults for the feed and listener.
const (
	DefaultFilePath = "serve"
	DefaultTitle    = "a default title"
	DefaultDomain   = "example.com"
	DefaultSubdesc  = "a default description"
	DefaultBind     = "127.0.0.1"
	DefaultPort     = 8080
	DefaultLogLevel = "info"
)

// Config holds CLI configuration for dirfeed. It is fixed once the process
// starts serving.
type Config struct {
	FilePath string
	Title    string
	Domain   string
	Subdesc  string

	Bind string
	Port int

	MaxConns     int
	WriteTimeout time.Duration
	Watch        bool
	LogLevel     string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		FilePath: DefaultFilePath,
		Title:    DefaultTitle,
		Domain:   DefaultDomain,
		Subdesc:  DefaultSubdesc,
		Bind:     DefaultBind,
		Port:     DefaultPort,
		LogLevel: DefaultLogLevel,
	}
}

// Addr returns the listen address built from Bind and Port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Bind, strconv.Itoa(c.Port))
}

// Level returns the parsed log level.
func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(c.LogLevel)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("%w: filepath is required", domain.ErrInvalidConfig)
	}
	if c.Bind == "" {
		return fmt.Errorf("%w: bind address is required", domain.ErrInvalidConfig)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", domain.ErrInvalidConfig, c.Port)
	}
	if c.MaxConns < 0 {
		return fmt.Errorf("%w: max-conns must not be negative", domain.ErrInvalidConfig)
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("%w: write-timeout must not be negative", domain.ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: log-level: %v", domain.ErrInvalidConfig, err)
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if positive.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
