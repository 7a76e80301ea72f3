package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v for a missing file", err)
	}
	if cfg.Simulator.MaxLikes != 3 {
		t.Errorf("MaxLikes = %d, want 3", cfg.Simulator.MaxLikes)
	}
	if cfg.SimulatorInterval() != 5*time.Second {
		t.Errorf("interval = %v, want 5s", cfg.SimulatorInterval())
	}
	if cfg.ReplyDelay() != 1500*time.Millisecond {
		t.Errorf("reply delay = %v, want 1.5s", cfg.ReplyDelay())
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.DataDir = "/tmp/sparkd-test"
	cfg.Simulator.MaxLikes = 7
	cfg.Simulator.Interval.Duration = 250 * time.Millisecond
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.DataDir != "/tmp/sparkd-test" {
		t.Errorf("DataDir = %q, want /tmp/sparkd-test", loaded.DataDir)
	}
	if loaded.Simulator.MaxLikes != 7 {
		t.Errorf("MaxLikes = %d, want 7", loaded.Simulator.MaxLikes)
	}
	if loaded.SimulatorInterval() != 250*time.Millisecond {
		t.Errorf("interval = %v, want 250ms", loaded.SimulatorInterval())
	}
}

func TestLoadFillsInvalidFieldsWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[simulator]\nmax_likes = 0\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Simulator.MaxLikes != 3 {
		t.Errorf("MaxLikes = %d, want default 3 for a zero value", cfg.Simulator.MaxLikes)
	}
	if cfg.SimulatorInterval() != 5*time.Second {
		t.Errorf("interval = %v, want default 5s when unset", cfg.SimulatorInterval())
	}
}

func TestSavePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := Save(path, Default()); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file permission = %o, want 0600", perm)
	}
}
