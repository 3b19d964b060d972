package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bft-labs/dirfeed/internal/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_InvalidPort(t *testing.T) {
	_, err := execute(t, "--port", "70000")
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestRoot_MissingDirectory(t *testing.T) {
	_, err := execute(t, "-f", filepath.Join(t.TempDir(), "missing"), "-p", "0")
	if err == nil || !strings.Contains(err.Error(), "build feed") {
		t.Fatalf("err = %v, want build feed error", err)
	}
}

func TestRoot_ExplicitConfigMustExist(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("err = %v, want load config error", err)
	}
}

func TestRoot_ConfigFileApplied(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("port = 99999\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, "--config", cfgPath)
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig from file port", err)
	}
}

func TestRoot_Help(t *testing.T) {
	out, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("help returned error: %v", err)
	}
	for _, flag := range []string{"--filepath", "--title", "--domain", "--subdesc", "--bind", "--port"} {
		if !strings.Contains(out, flag) {
			t.Errorf("help output missing %s", flag)
		}
	}
}
