// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/codr1/courtbook/internal/timeofday"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type BookingConfig struct {
	MinDurationHours float64 `yaml:"min_duration_hours"`
	MaxDurationHours float64 `yaml:"max_duration_hours"`
	// Self-service cancellations closer than this to the start are refused.
	CancellationGraceHours float64 `yaml:"cancellation_grace_hours"`
	TaxRate                float64 `yaml:"tax_rate"`
	OpensAt                string  `yaml:"opens_at"`
	ClosesAt               string  `yaml:"closes_at"`
	EnforceCoachHours      bool    `yaml:"enforce_coach_hours"`
}

type LockingConfig struct {
	Backend   string        `yaml:"backend"`
	RedisAddr string        `yaml:"redis_addr"`
	LeaseTTL  time.Duration `yaml:"lease_ttl"`
	RedisPass string        `yaml:"-"` // Loaded from environment
}

type EventsConfig struct {
	AMQPURL  string `yaml:"amqp_url"`
	Exchange string `yaml:"exchange"`
}

type EmailConfig struct {
	Region          string `yaml:"region"`
	Sender          string `yaml:"sender"`
	AccessKeyID     string `yaml:"-"` // Loaded from environment
	SecretAccessKey string `yaml:"-"` // Loaded from environment
}

type SchedulerConfig struct {
	AutoComplete     bool   `yaml:"auto_complete"`
	AutoCompleteCron string `yaml:"auto_complete_cron"`
}

type RateLimitConfig struct {
	WritesPerMinute int  `yaml:"writes_per_minute"`
	Burst           int  `yaml:"burst"`
	TrustProxy      bool `yaml:"trust_proxy"`
}

type Config struct {
	App struct {
		Name            string        `yaml:"name"`
		Environment     string        `yaml:"environment"`
		Port            int           `yaml:"port"`
		Timezone        string        `yaml:"timezone"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"app"`

	Database  DatabaseConfig  `yaml:"database"`
	Booking   BookingConfig   `yaml:"booking"`
	Locking   LockingConfig   `yaml:"locking"`
	Events    EventsConfig    `yaml:"events"`
	Email     EmailConfig     `yaml:"email"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	Features struct {
		EnableMetrics bool `yaml:"enable_metrics"`
		EnableDebug   bool `yaml:"enable_debug"`
	} `yaml:"features"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Load sensitive values from environment
	cfg.Locking.RedisPass = os.Getenv("REDIS_PASSWORD")
	cfg.Email.AccessKeyID = os.Getenv("AWS_SES_ACCESS_KEY_ID")
	cfg.Email.SecretAccessKey = os.Getenv("AWS_SES_SECRET_ACCESS_KEY")
	if url := os.Getenv("AMQP_URL"); url != "" {
		cfg.Events.AMQPURL = url
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes yaml configuration and fills defaults for omitted values.
// It does not validate; call Validate once secrets are merged in.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.App.Timezone == "" {
		c.App.Timezone = "UTC"
	}
	if c.App.ShutdownTimeout == 0 {
		c.App.ShutdownTimeout = 30 * time.Second
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Booking.MinDurationHours == 0 {
		c.Booking.MinDurationHours = 0.5
	}
	if c.Booking.MaxDurationHours == 0 {
		c.Booking.MaxDurationHours = 4
	}
	if c.Booking.CancellationGraceHours == 0 {
		c.Booking.CancellationGraceHours = 2
	}
	if c.Booking.TaxRate == 0 {
		c.Booking.TaxRate = 0.10
	}
	if c.Booking.OpensAt == "" {
		c.Booking.OpensAt = "08:00"
	}
	if c.Booking.ClosesAt == "" {
		c.Booking.ClosesAt = "22:00"
	}
	if c.Locking.Backend == "" {
		c.Locking.Backend = "memory"
	}
	if c.Locking.LeaseTTL == 0 {
		c.Locking.LeaseTTL = 10 * time.Second
	}
	if c.Events.Exchange == "" {
		c.Events.Exchange = "booking.exchange"
	}
	if c.Scheduler.AutoCompleteCron == "" {
		c.Scheduler.AutoCompleteCron = "*/15 * * * *"
	}
	if c.RateLimit.WritesPerMinute == 0 {
		c.RateLimit.WritesPerMinute = 30
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid app timezone %q: %w", c.App.Timezone, err)
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	b := c.Booking
	if b.MinDurationHours <= 0 || b.MaxDurationHours < b.MinDurationHours {
		return fmt.Errorf("booking duration bounds must satisfy 0 < min <= max")
	}
	if b.CancellationGraceHours < 0 {
		return fmt.Errorf("cancellation grace hours must not be negative")
	}
	if b.TaxRate < 0 || b.TaxRate >= 1 {
		return fmt.Errorf("tax rate must be in [0, 1)")
	}
	opens, err := timeofday.Parse(b.OpensAt)
	if err != nil {
		return fmt.Errorf("booking opens_at: %w", err)
	}
	closes, err := timeofday.Parse(b.ClosesAt)
	if err != nil {
		return fmt.Errorf("booking closes_at: %w", err)
	}
	if closes <= opens {
		return fmt.Errorf("booking closes_at must be after opens_at")
	}

	switch c.Locking.Backend {
	case "memory":
	case "redis":
		if c.Locking.RedisAddr == "" {
			return fmt.Errorf("redis address is required for redis locking")
		}
	default:
		return fmt.Errorf("unsupported locking backend: %s", c.Locking.Backend)
	}

	if c.Email.Sender != "" && c.Email.Region == "" {
		return fmt.Errorf("email region is required when a sender is configured")
	}
	if c.RateLimit.WritesPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}

	return nil
}

// Location returns the facility timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CancellationGrace returns the grace window as a duration.
func (b BookingConfig) CancellationGrace() time.Duration {
	return time.Duration(b.CancellationGraceHours * float64(time.Hour))
}
