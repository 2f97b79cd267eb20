// Package config loads the application configuration from an optional
// yaml file plus RESOURCIO_* environment overrides. The planning section
// is the single source of truth for the non-project overhead and the
// utilization thresholds.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Planning    PlanningConfig    `mapstructure:"planning"`
	Submissions SubmissionsConfig `mapstructure:"submissions"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects and configures the storage backend.
// Driver "memory" runs with seeded in-memory repositories, used for
// demos and tests; "postgres" is the production backend.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// AuthConfig configures token issuance.
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// PlanningConfig carries the canonical utilization parameters.
type PlanningConfig struct {
	NonProjectHours float64          `mapstructure:"non_project_hours"`
	Thresholds      ThresholdsConfig `mapstructure:"thresholds"`
}

// ThresholdsConfig mirrors planning.Thresholds for config binding.
type ThresholdsConfig struct {
	OptimalMin float64 `mapstructure:"optimal_min"`
	OptimalMax float64 `mapstructure:"optimal_max"`
	Warning    float64 `mapstructure:"warning"`
	Error      float64 `mapstructure:"error"`
	Critical   float64 `mapstructure:"critical"`
}

// SubmissionsConfig configures the weekly submission workflow.
type SubmissionsConfig struct {
	// UnsubmitGracePeriod is how long after submission a week may be
	// reopened for corrections.
	UnsubmitGracePeriod time.Duration `mapstructure:"unsubmit_grace_period"`
}

// SchedulerConfig configures the cron jobs.
type SchedulerConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	ReminderSchedule string `mapstructure:"reminder_schedule"`
	LockSchedule     string `mapstructure:"lock_schedule"`
}

// Load reads configuration from the given file (optional) and the
// environment. Defaults match the documented canonical values.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("RESOURCIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("auth.token_ttl", "24h")

	v.SetDefault("planning.non_project_hours", 8.0)
	v.SetDefault("planning.thresholds.optimal_min", 50.0)
	v.SetDefault("planning.thresholds.optimal_max", 90.0)
	v.SetDefault("planning.thresholds.warning", 90.0)
	v.SetDefault("planning.thresholds.error", 100.0)
	v.SetDefault("planning.thresholds.critical", 120.0)

	v.SetDefault("submissions.unsubmit_grace_period", "168h") // one week

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.reminder_schedule", "0 9 * * FRI")
	v.SetDefault("scheduler.lock_schedule", "0 0 * * MON")
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	case "memory":
		// No DSN needed.
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	if c.Planning.NonProjectHours < 0 {
		return fmt.Errorf("planning.non_project_hours must not be negative")
	}

	t := c.Planning.Thresholds
	if !(t.OptimalMin <= t.Warning && t.Warning <= t.Error && t.Error <= t.Critical) {
		return fmt.Errorf("planning.thresholds must be non-decreasing")
	}

	return nil
}
