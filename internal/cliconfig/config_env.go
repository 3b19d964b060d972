package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (DIRFEED_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("filepath", os.Getenv("DIRFEED_FILEPATH"), &cfg.FilePath)
	s.setString("title", os.Getenv("DIRFEED_TITLE"), &cfg.Title)
	s.setString("domain", os.Getenv("DIRFEED_DOMAIN"), &cfg.Domain)
	s.setString("subdesc", os.Getenv("DIRFEED_SUBDESC"), &cfg.Subdesc)
	s.setString("bind", os.Getenv("DIRFEED_BIND"), &cfg.Bind)
	s.setString("log-level", os.Getenv("DIRFEED_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("port", os.Getenv("DIRFEED_PORT"), &cfg.Port); err != nil {
		return err
	}
	if err := s.setIntFromString("max-conns", os.Getenv("DIRFEED_MAX_CONNS"), &cfg.MaxConns); err != nil {
		return err
	}
	if err := s.setDuration("write-timeout", os.Getenv("DIRFEED_WRITE_TIMEOUT"), &cfg.WriteTimeout); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv("DIRFEED_WATCH"), &cfg.Watch)

	return nil
}
