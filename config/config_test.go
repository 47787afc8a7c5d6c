package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orbitsave.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Root != "" {
		t.Errorf("Root = %q, want empty (detect at startup)", cfg.Root)
	}
	if cfg.Watch.Interval != 2*time.Second || cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Watch = %+v", cfg.Watch)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
root: /opt/orbitx
catalog:
  path: /var/lib/orbitx/catalog.db
watch:
  interval: 5s
  debounce: 1s
log:
  level: debug
  file: /var/log/orbitsave.log
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Root != "/opt/orbitx" {
		t.Errorf("Root = %q", cfg.Root)
	}
	if cfg.Catalog.Path != "/var/lib/orbitx/catalog.db" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if cfg.Watch.Interval != 5*time.Second || cfg.Watch.Debounce != time.Second {
		t.Errorf("Watch = %+v", cfg.Watch)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/var/log/orbitsave.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "root: /opt/orbitx\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Root != "/opt/orbitx" {
		t.Errorf("Root = %q", cfg.Root)
	}
	if cfg.Watch.Interval != 2*time.Second {
		t.Errorf("Watch.Interval = %s, want default 2s", cfg.Watch.Interval)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "root: /opt/orbitx\nlog:\n  level: debug\n")
	t.Setenv("ORBITX_ROOT", "/srv/orbitx")
	t.Setenv("ORBITX_LOG_LEVEL", "warn")
	t.Setenv("ORBITX_WATCH_INTERVAL", "250ms")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Root != "/srv/orbitx" {
		t.Errorf("Root = %q, env should win", cfg.Root)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, env should win", cfg.Log.Level)
	}
	if cfg.Watch.Interval != 250*time.Millisecond {
		t.Errorf("Watch.Interval = %s", cfg.Watch.Interval)
	}
}

func TestEnvBadDuration(t *testing.T) {
	t.Setenv("ORBITX_WATCH_INTERVAL", "soon")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unparseable duration")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateRejectsZeroInterval(t *testing.T) {
	path := writeConfig(t, "watch:\n  interval: 0s\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for zero interval")
	}
}

func TestCatalogPath(t *testing.T) {
	cfg := Default()
	if got := cfg.CatalogPath("/opt/orbitx"); got != filepath.Join("/opt/orbitx", "data", "catalog.db") {
		t.Errorf("CatalogPath = %q", got)
	}
	cfg.Catalog.Path = "/elsewhere/cat.db"
	if got := cfg.CatalogPath("/opt/orbitx"); got != "/elsewhere/cat.db" {
		t.Errorf("explicit CatalogPath = %q", got)
	}
}
