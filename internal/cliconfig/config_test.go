package cliconfig

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/dirfeed/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.FilePath != "serve" {
		t.Errorf("FilePath = %v, want serve", cfg.FilePath)
	}
	if cfg.Title != "a default title" {
		t.Errorf("Title = %v, want a default title", cfg.Title)
	}
	if cfg.Domain != "example.com" {
		t.Errorf("Domain = %v, want example.com", cfg.Domain)
	}
	if cfg.Subdesc != "a default description" {
		t.Errorf("Subdesc = %v, want a default description", cfg.Subdesc)
	}
	if cfg.Addr() != "127.0.0.1:8080" {
		t.Errorf("Addr() = %v, want 127.0.0.1:8080", cfg.Addr())
	}
	if cfg.MaxConns != 0 || cfg.WriteTimeout != 0 || cfg.Watch {
		t.Errorf("hardening options should be off by default: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_Addr(t *testing.T) {
	cfg := Config{Bind: "::1", Port: 9000}
	if got := cfg.Addr(); got != "[::1]:9000" {
		t.Errorf("Addr() = %v, want [::1]:9000", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "ephemeral port", mutate: func(c *Config) { c.Port = 0 }},
		{name: "empty log level means info", mutate: func(c *Config) { c.LogLevel = "" }},
		{name: "empty filepath", mutate: func(c *Config) { c.FilePath = "" }, wantErr: true},
		{name: "empty bind", mutate: func(c *Config) { c.Bind = "" }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "negative port", mutate: func(c *Config) { c.Port = -1 }, wantErr: true},
		{name: "negative max conns", mutate: func(c *Config) { c.MaxConns = -1 }, wantErr: true},
		{name: "negative write timeout", mutate: func(c *Config) { c.WriteTimeout = -time.Second }, wantErr: true},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "chatty" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_Level(t *testing.T) {
	cfg := Config{LogLevel: "debug"}
	lvl, err := cfg.Level()
	if err != nil {
		t.Fatalf("Level() error = %v", err)
	}
	if lvl != zerolog.DebugLevel {
		t.Errorf("Level() = %v, want debug", lvl)
	}
}
