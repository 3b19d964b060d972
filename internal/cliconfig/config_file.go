package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	FilePath     string `toml:"filepath"`
	Title        string `toml:"title"`
	Domain       string `toml:"domain"`
	Subdesc      string `toml:"subdesc"`
	Bind         string `toml:"bind"`
	Port         int    `toml:"port"`
	MaxConns     int    `toml:"max_conns"`
	WriteTimeout string `toml:"write_timeout"`
	Watch        *bool  `toml:"watch"`
	LogLevel     string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.dirfeed/config.toml, or "" when the home
// directory cannot be determined.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".dirfeed", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("filepath", fc.FilePath, &cfg.FilePath)
	s.setString("title", fc.Title, &cfg.Title)
	s.setString("domain", fc.Domain, &cfg.Domain)
	s.setString("subdesc", fc.Subdesc, &cfg.Subdesc)
	s.setString("bind", fc.Bind, &cfg.Bind)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setInt("port", fc.Port, &cfg.Port)
	s.setInt("max-conns", fc.MaxConns, &cfg.MaxConns)

	if err := s.setDuration("write-timeout", fc.WriteTimeout, &cfg.WriteTimeout); err != nil {
		return err
	}

	s.setBool("watch", fc.Watch, &cfg.Watch)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
