package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Report   ReportConfig   `yaml:"report"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration. Driver selects
// between the embedded sqlite deployment and postgres.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// IngestConfig names the seed CSV files loaded at startup. Empty paths are
// skipped.
type IngestConfig struct {
	StoreStatusCSV   string `yaml:"store_status_csv"`
	BusinessHoursCSV string `yaml:"business_hours_csv"`
	TimezonesCSV     string `yaml:"timezones_csv"`
}

// ReportConfig holds the report generation settings.
type ReportConfig struct {
	OutputDir       string `yaml:"output_dir"`
	DefaultTimezone string `yaml:"default_timezone"`
	WorkerPoolSize  int    `yaml:"worker_pool_size"`
	Parallelism     int    `yaml:"parallelism"`
}

// Load reads the configuration from the given path and applies defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "store_monitoring.db"
	}

	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = "reports"
	}
	if cfg.Report.DefaultTimezone == "" {
		// Same fallback zone the original monitoring pipeline assumed for
		// stores with no timezone row.
		cfg.Report.DefaultTimezone = "America/Chicago"
	}
	if cfg.Report.WorkerPoolSize <= 0 {
		log.Printf("report.worker_pool_size is not set or invalid; defaulting to 1")
		cfg.Report.WorkerPoolSize = 1
	}
	if cfg.Report.Parallelism <= 0 {
		cfg.Report.Parallelism = 4
	}
}
