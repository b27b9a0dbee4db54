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
	Parking    ParkingConfig    `yaml:"parking"`
	Inspector  InspectorConfig  `yaml:"inspector"`
	Occupancy  OccupancyConfig  `yaml:"occupancy"`
	Reminder   ReminderConfig   `yaml:"reminder"`
	Push       PushConfig       `yaml:"push"`
	Database   DatabaseConfig   `yaml:"database"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// ParkingConfig holds the billing policy for the parking session ledger.
// The convenience fee and the minimum-charge floor are deployment policy:
// the plate-keyed ledger bills a flat add-on with a one-minute floor, the
// car/zone meter bills neither.
type ParkingConfig struct {
	ConvenienceFeeFt int            `yaml:"convenience_fee_ft"`
	MinimumMinutes   int            `yaml:"minimum_minutes"`
	ZoneRatesFt      map[string]int `yaml:"zone_rates_ft"`
}

// InspectorConfig holds the settings for the inspector validation flow.
type InspectorConfig struct {
	ValidateDelayMS int `yaml:"validate_delay_ms"`
}

// OccupancyConfig controls the mock occupancy feed for the map.
type OccupancyConfig struct {
	Enabled             bool          `yaml:"enabled"`
	IntervalSeconds     int           `yaml:"interval_seconds"`
	Interval            time.Duration `yaml:"-"` // Ignored by YAML parser
	OccupiedProbability float64       `yaml:"occupied_probability"`
}

// ReminderConfig controls the long-session push reminder sweep.
type ReminderConfig struct {
	Enabled          bool          `yaml:"enabled"`
	IntervalSeconds  int           `yaml:"interval_seconds"`
	Interval         time.Duration `yaml:"-"`
	ThresholdMinutes int           `yaml:"threshold_minutes"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
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
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}

	if cfg.Parking.ConvenienceFeeFt <= 0 {
		cfg.Parking.ConvenienceFeeFt = 60
	}
	if cfg.Parking.MinimumMinutes <= 0 {
		cfg.Parking.MinimumMinutes = 1
	}

	if cfg.Occupancy.IntervalSeconds <= 0 {
		cfg.Occupancy.IntervalSeconds = 10
	}
	cfg.Occupancy.Interval = time.Duration(cfg.Occupancy.IntervalSeconds) * time.Second
	if cfg.Occupancy.OccupiedProbability <= 0 || cfg.Occupancy.OccupiedProbability > 1 {
		cfg.Occupancy.OccupiedProbability = 0.6
	}

	if cfg.Reminder.IntervalSeconds <= 0 {
		cfg.Reminder.IntervalSeconds = 60
	}
	cfg.Reminder.Interval = time.Duration(cfg.Reminder.IntervalSeconds) * time.Second
	if cfg.Reminder.ThresholdMinutes <= 0 {
		cfg.Reminder.ThresholdMinutes = 120
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "kaposvar.db"
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}
