package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Report     ReportConfig     `yaml:"report"`
	Collector  CollectorConfig  `yaml:"collector"`
	Seed       SeedConfig       `yaml:"seed"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // "postgres" (default) or "sqlite"
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// ReportConfig holds settings for report compilation.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// WorkerPoolConfig holds the configuration for the report worker pool.
type WorkerPoolConfig struct {
	Size      int `yaml:"size"`
	QueueSize int `yaml:"queue_size"`
}

// CollectorConfig holds settings for the upstream observation feed.
type CollectorConfig struct {
	Enabled         bool             `yaml:"enabled"`
	IntervalSeconds int              `yaml:"interval_seconds"`
	Interval        time.Duration    `yaml:"-"` // Ignored by YAML parser
	Request         CollectorRequest `yaml:"request"`
	ActiveValues    []string         `yaml:"status_active_values"`
	InactiveValues  []string         `yaml:"status_inactive_values"`
}

// CollectorRequest defines the HTTP request for the collector.
type CollectorRequest struct {
	URL      string            `yaml:"url"`
	Headers  map[string]string `yaml:"headers"`
	PageSize int               `yaml:"pageSize"`
}

// SeedConfig points at the CSV files loaded once at startup.
type SeedConfig struct {
	Enabled          bool   `yaml:"enabled"`
	LocationsFile    string `yaml:"locations_file"`
	HoursFile        string `yaml:"hours_file"`
	ObservationsFile string `yaml:"observations_file"`
}

// Load reads the configuration from the given path.
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

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 6000
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
		cfg.Database.Driver = "postgres"
	}

	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = "./reports"
	}

	if cfg.Collector.IntervalSeconds <= 0 {
		cfg.Collector.IntervalSeconds = 3600
	}
	cfg.Collector.Interval = time.Duration(cfg.Collector.IntervalSeconds) * time.Second

	if cfg.Collector.Request.PageSize <= 0 {
		cfg.Collector.Request.PageSize = 100
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}
	if cfg.WorkerPool.QueueSize <= 0 {
		cfg.WorkerPool.QueueSize = 64
	}

	return &cfg, nil
}
