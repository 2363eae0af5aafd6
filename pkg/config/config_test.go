package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"casevis/pkg/config"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	want := config.Default()
	if cfg.DataDir != want.DataDir || cfg.Password != want.Password || cfg.Author != want.Author {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "casevis.yaml")
	body := "data_dir: /srv/cases\npassword: hunter2\nwatch: true\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/srv/cases" || cfg.Password != "hunter2" || !cfg.Watch {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.ExportDir != config.Default().ExportDir {
		t.Error("unset fields should keep defaults")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "casevis.yaml")
	if err := os.WriteFile(path, []byte("password: fromfile\ndata_dir: fromfile\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvPassword, "fromenv")
	t.Setenv(config.EnvDataDir, "/env/data")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Password != "fromenv" {
		t.Errorf("password = %q, want env override", cfg.Password)
	}
	if cfg.DataDir != "/env/data" {
		t.Errorf("data dir = %q, want env override", cfg.DataDir)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "casevis.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- bad"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Error("malformed YAML should fail loudly, not fall back to defaults")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "casevis.yaml")
	cfg := config.Default()
	cfg.DataDir = "/srv/cases"
	cfg.Watch = true

	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.DataDir != "/srv/cases" || !loaded.Watch {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}
