package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pcranston/gridshift/internal/domain"
)

// Config represents the application configuration
type Config struct {
	DBPath           string `yaml:"db_path"`
	Columns          int    `yaml:"columns"`
	Rows             int    `yaml:"rows"`
	HotseatCount     int    `yaml:"hotseat"`
	ReserveFirstCell bool   `yaml:"reserve_first_cell"`
	LogLevel         string `yaml:"log_level"`
	Output           string `yaml:"output"`
}

// Load loads configuration from multiple sources with precedence:
// 1. Environment variables (GRIDSHIFT_*)
// 2. ./.env.local (dotenv) - walks up parent directories to find it
// 3. ~/.config/gridshift/config.yaml (YAML)
func Load() (*Config, error) {
	cfg := &Config{
		Columns:      5,
		Rows:         5,
		HotseatCount: 5,
		LogLevel:     "info",
		Output:       "table",
	}

	// Load .env.local if it exists (walking up parent directories)
	if envPath := findEnvLocal(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	// YAML config is optional
	_ = loadYAMLConfig(cfg)

	if dbPath := os.Getenv("GRIDSHIFT_DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel := os.Getenv("GRIDSHIFT_LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if output := os.Getenv("GRIDSHIFT_OUTPUT"); output != "" {
		cfg.Output = output
	}
	if cols := intEnv("GRIDSHIFT_COLUMNS"); cols > 0 {
		cfg.Columns = cols
	}
	if rows := intEnv("GRIDSHIFT_ROWS"); rows > 0 {
		cfg.Rows = rows
	}
	if hotseat := intEnv("GRIDSHIFT_HOTSEAT"); hotseat > 0 {
		cfg.HotseatCount = hotseat
	}
	if reserve := os.Getenv("GRIDSHIFT_RESERVE_FIRST_CELL"); reserve != "" {
		cfg.ReserveFirstCell = reserve == "1" || reserve == "true"
	}

	if cfg.DBPath == "" {
		// Check for project-local database first
		if _, err := os.Stat(".gridshift/layout.db"); err == nil {
			cfg.DBPath = ".gridshift/layout.db"
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			cfg.DBPath = filepath.Join(homeDir, ".local", "share", "gridshift", "layout.db")
		}
	}

	return cfg, nil
}

// Target returns the configured target layout descriptor.
func (c *Config) Target() domain.Descriptor {
	return domain.Descriptor{
		Columns:      c.Columns,
		Rows:         c.Rows,
		HotseatCount: c.HotseatCount,
	}
}

// loadYAMLConfig loads configuration from ~/.config/gridshift/config.yaml
func loadYAMLConfig(cfg *Config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(homeDir, ".config", "gridshift", "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

func intEnv(name string) int {
	val := os.Getenv(name)
	if val == "" {
		return 0
	}
	var n int
	if _, err := fmt.Sscanf(val, "%d", &n); err != nil {
		return 0
	}
	return n
}

// findEnvLocal searches for .env.local starting from cwd and walking up
// parent directories. Stops at the user's home directory.
// Returns the path to .env.local if found, empty string otherwise.
func findEnvLocal() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if _, err := os.Stat(".env.local"); err == nil {
			return ".env.local"
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	homeDir = filepath.Clean(homeDir)
	dir := filepath.Clean(cwd)

	for {
		envPath := filepath.Join(dir, ".env.local")
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}

		if dir == homeDir {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}
