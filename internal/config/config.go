package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RegionConfig declares one plannable region.
type RegionConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// ViewConfig carries display defaults forwarded to report builders.
type ViewConfig struct {
	HideEmptyWeeks bool `yaml:"hide_empty_weeks"`
}

// Config models planner.yaml. Environment variables override the file
// where both exist.
type Config struct {
	Port          string         `yaml:"port"`
	LogLevel      string         `yaml:"log_level"`
	LogFile       string         `yaml:"log_file"`
	DatabaseURL   string         `yaml:"database_url"`
	RedisAddr     string         `yaml:"redis_addr"`
	SqlitePath    string         `yaml:"sqlite_path"`
	SeedDir       string         `yaml:"seed_dir"`
	ExportDir     string         `yaml:"export_dir"`
	DefaultRegion string         `yaml:"default_region"`
	Regions       []RegionConfig `yaml:"regions"`
	MonthlyView   ViewConfig     `yaml:"monthly_view"`
}

// Load reads planner.yaml from path and applies environment overrides.
// A missing file is not an error; env vars and defaults still apply.
func Load(path string) (Config, error) {
	cfg := Config{
		Port:       "8080",
		LogLevel:   "info",
		SqlitePath: "data/planner.db",
		SeedDir:    "data/seeds",
		ExportDir:  "data/exports",
	}

	bytes, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// fall through to env overrides
	case err != nil:
		return Config{}, fmt.Errorf("load config: read %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(bytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config: parse %q: %w", path, err)
		}
	}

	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideString(&cfg.LogFile, "LOG_FILE")
	overrideString(&cfg.DatabaseURL, "DATABASE_URL")
	overrideString(&cfg.RedisAddr, "REDIS_ADDR")
	overrideString(&cfg.SqlitePath, "DB_PATH")
	overrideString(&cfg.SeedDir, "SEED_DIR")
	overrideString(&cfg.ExportDir, "EXPORT_DIR")
	overrideString(&cfg.DefaultRegion, "DEFAULT_REGION")

	if cfg.DefaultRegion == "" && len(cfg.Regions) > 0 {
		cfg.DefaultRegion = cfg.Regions[0].ID
	}

	return cfg, nil
}

// RegionName resolves a region id to its display name, falling back to
// the id itself.
func (c Config) RegionName(id string) string {
	for _, region := range c.Regions {
		if region.ID == id {
			return region.Name
		}
	}
	return id
}

// Get returns the value of an environment variable, or fallback when
// unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func overrideString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
