// Package config loads the service configuration from YAML with
// ${ENV_VAR} expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"dayroom/internal/timeslot"
)

type Config struct {
	Server struct {
		Port           int     `yaml:"port"`
		RateLimitRPS   float64 `yaml:"rate_limit_rps"`
		RateLimitBurst int     `yaml:"rate_limit_burst"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Backup struct {
		Enabled       bool   `yaml:"enabled"`
		IntervalHours int    `yaml:"interval_hours"`
		Path          string `yaml:"path"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"backup"`

	Redis struct {
		Address         string `yaml:"address"`
		Password        string `yaml:"password"`
		DB              int    `yaml:"db"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	} `yaml:"redis"`

	Monitoring struct {
		HealthCheckPort   int  `yaml:"health_check_port"`
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Booking struct {
		OpenTime    string `yaml:"open_time"`
		CloseTime   string `yaml:"close_time"`
		SlotMinutes int    `yaml:"slot_minutes"`
	} `yaml:"booking"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err = cfg.validate(); err != nil {
		return nil, err
	}

	if err = os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.RateLimitRPS <= 0 {
		c.Server.RateLimitRPS = 10
	}
	if c.Server.RateLimitBurst <= 0 {
		c.Server.RateLimitBurst = 20
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/dayroom.db"
	}
	if c.Backup.Enabled {
		if c.Backup.IntervalHours <= 0 {
			c.Backup.IntervalHours = 24
		}
		if c.Backup.Path == "" {
			c.Backup.Path = "data/backups"
		}
	}
	if c.Booking.OpenTime == "" {
		c.Booking.OpenTime = "08:00"
	}
	if c.Booking.CloseTime == "" {
		c.Booking.CloseTime = "17:00"
	}
	if c.Booking.SlotMinutes <= 0 {
		c.Booking.SlotMinutes = 30
	}
}

func (c *Config) validate() error {
	w := c.PolicyWindow()
	if w.Start >= w.End {
		return fmt.Errorf("booking: open_time %q must be before close_time %q",
			c.Booking.OpenTime, c.Booking.CloseTime)
	}
	return nil
}

// PolicyWindow returns the operating hours as a slot engine window.
func (c *Config) PolicyWindow() timeslot.Window {
	return timeslot.Window{
		Start: timeslot.ParseTimeToMinutes(c.Booking.OpenTime),
		End:   timeslot.ParseTimeToMinutes(c.Booking.CloseTime),
	}
}

// SlotStep returns the configured slot granularity in minutes.
func (c *Config) SlotStep() int {
	return c.Booking.SlotMinutes
}

// BackupInterval returns how often to back up the database; zero means
// backups are disabled.
func (c *Config) BackupInterval() time.Duration {
	if !c.Backup.Enabled {
		return 0
	}
	return time.Duration(c.Backup.IntervalHours) * time.Hour
}

// BackupRetention returns how long backup files are kept.
func (c *Config) BackupRetention() time.Duration {
	if c.Backup.RetentionDays <= 0 {
		return 0
	}
	return time.Duration(c.Backup.RetentionDays) * 24 * time.Hour
}

// CacheTTL returns the availability cache lifetime; zero disables caching.
func (c *Config) CacheTTL() time.Duration {
	if c.Redis.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Redis.CacheTTLSeconds) * time.Second
}
