package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything the battle simulator needs at startup.
type Config struct {
	LogLevel string `yaml:"log_level"`

	Combat   Combat   `yaml:"combat"`
	Database Database `yaml:"database"`
}

// Database holds PostgreSQL connection parameters for the battle report
// store. Disabled by default: the engine runs fully in-process.
type Database struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Default returns the full config with default tuning.
func Default() Config {
	return Config{
		LogLevel: "info",
		Combat:   DefaultCombat(),
		Database: Database{
			Enabled:  false,
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "grognard",
			Password: "grognard",
			DBName:   "grognard",
			SSLMode:  "disable",
		},
	}
}

// Load reads config from a YAML file. A missing file yields defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
