package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir changes the working directory for the duration of the test,
// matching the behavior of testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

// isolate points HOME and the working directory at empty temp dirs so the
// test never picks up a real config file or .env.local.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
	for _, name := range []string{
		"GRIDSHIFT_DB_PATH", "GRIDSHIFT_LOG_LEVEL", "GRIDSHIFT_OUTPUT",
		"GRIDSHIFT_COLUMNS", "GRIDSHIFT_ROWS", "GRIDSHIFT_HOTSEAT",
		"GRIDSHIFT_RESERVE_FIRST_CELL",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Columns != 5 || cfg.Rows != 5 || cfg.HotseatCount != 5 {
		t.Errorf("default layout %dx%d/%d, want 5x5/5", cfg.Columns, cfg.Rows, cfg.HotseatCount)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default log level %q, want info", cfg.LogLevel)
	}
	if cfg.Output != "table" {
		t.Errorf("default output %q, want table", cfg.Output)
	}
	if cfg.DBPath == "" {
		t.Error("default db path should be set")
	}
	if cfg.ReserveFirstCell {
		t.Error("first-cell reservation should default off")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("GRIDSHIFT_DB_PATH", "/tmp/custom.db")
	t.Setenv("GRIDSHIFT_COLUMNS", "6")
	t.Setenv("GRIDSHIFT_ROWS", "7")
	t.Setenv("GRIDSHIFT_HOTSEAT", "3")
	t.Setenv("GRIDSHIFT_LOG_LEVEL", "debug")
	t.Setenv("GRIDSHIFT_OUTPUT", "json")
	t.Setenv("GRIDSHIFT_RESERVE_FIRST_CELL", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	target := cfg.Target()
	if target.Columns != 6 || target.Rows != 7 || target.HotseatCount != 3 {
		t.Errorf("target = %v, want 6x7/3", target)
	}
	if cfg.LogLevel != "debug" || cfg.Output != "json" {
		t.Errorf("LogLevel=%q Output=%q", cfg.LogLevel, cfg.Output)
	}
	if !cfg.ReserveFirstCell {
		t.Error("ReserveFirstCell should be on")
	}
}

func TestLoadInvalidIntEnvIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("GRIDSHIFT_COLUMNS", "many")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Columns != 5 {
		t.Errorf("Columns = %d, want default 5 with an unparseable override", cfg.Columns)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	isolate(t)
	home := os.Getenv("HOME")
	configDir := filepath.Join(home, ".config", "gridshift")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	yamlContent := "columns: 4\nrows: 6\nhotseat: 2\nreserve_first_cell: true\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Columns != 4 || cfg.Rows != 6 || cfg.HotseatCount != 2 {
		t.Errorf("layout %dx%d/%d, want 4x6/2 from yaml", cfg.Columns, cfg.Rows, cfg.HotseatCount)
	}
	if !cfg.ReserveFirstCell {
		t.Error("reserve_first_cell from yaml should be honored")
	}
}

func TestEnvBeatsYAML(t *testing.T) {
	isolate(t)
	home := os.Getenv("HOME")
	configDir := filepath.Join(home, ".config", "gridshift")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("columns: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GRIDSHIFT_COLUMNS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Columns != 8 {
		t.Errorf("Columns = %d, want env value 8 over yaml", cfg.Columns)
	}
}

func TestProjectLocalDB(t *testing.T) {
	isolate(t)
	if err := os.MkdirAll(".gridshift", 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(".gridshift/layout.db", nil, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != ".gridshift/layout.db" {
		t.Errorf("DBPath = %q, want project-local database", cfg.DBPath)
	}
}
