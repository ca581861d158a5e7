package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("Load = %+v, want defaults", cfg)
	}
	if Exists() {
		t.Fatal("Exists() = true before Save")
	}
}

func TestSaveLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Vehicle.Name = "Jupiter"
	cfg.Units.Currency = "$"
	cfg.General.DefaultDays = 90
	cfg.Log.Level = "debug"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("Load = %+v, want %+v", got, cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, appName, "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[vehicle]\nname = \"Ntorq\"\ngauge_max_mileage = 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Vehicle.Name != "Ntorq" {
		t.Fatalf("Vehicle.Name = %q, want Ntorq", cfg.Vehicle.Name)
	}
	if cfg.Vehicle.GaugeMaxMileage != 60 {
		t.Fatalf("GaugeMaxMileage = %v, want default 60", cfg.Vehicle.GaugeMaxMileage)
	}
	if cfg.Units.Currency != "₹" {
		t.Fatalf("Units.Currency = %q, want default", cfg.Units.Currency)
	}
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, appName, "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[vehicle\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
}

func TestDBPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	cfg := DefaultConfig()
	if got, want := cfg.DBPath(), filepath.Join("/tmp/xdg-data", appName, "fuelsync.db"); got != want {
		t.Fatalf("DBPath = %q, want %q", got, want)
	}
	cfg.General.DBPath = "/srv/fuel.db"
	if got := cfg.DBPath(); got != "/srv/fuel.db" {
		t.Fatalf("DBPath override = %q", got)
	}
}
