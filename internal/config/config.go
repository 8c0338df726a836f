package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	Calendar  CalendarConfig  `yaml:"calendar"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// AuthConfig configures the admin login. AdminPasswordHash (argon2id) wins
// over AdminPassword when both are set.
type AuthConfig struct {
	AdminPassword     string        `yaml:"admin_password"`
	AdminPasswordHash string        `yaml:"admin_password_hash"`
	SessionTTL        time.Duration `yaml:"session_ttl"`
	CookieSecure      bool          `yaml:"cookie_secure"`
	CSRFKey           string        `yaml:"csrf_key"`
}

// CalendarConfig controls how "today" is computed and how far back closed
// deadlines are listed.
type CalendarConfig struct {
	Timezone         string `yaml:"timezone"`
	RecentWindowDays int    `yaml:"recent_window_days"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "playbook.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: TransportHTTP,
		},
		Auth: AuthConfig{
			SessionTTL: 7 * 24 * time.Hour,
		},
		Calendar: CalendarConfig{
			Timezone:         "Local",
			RecentWindowDays: 30,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from an optional .env file, an optional YAML
// file and environment variables, in that order of precedence (lowest first).
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("PLAYBOOK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("PLAYBOOK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("PLAYBOOK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid PLAYBOOK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("PLAYBOOK_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("PLAYBOOK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("PLAYBOOK_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if mode := os.Getenv("PLAYBOOK_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if pw := os.Getenv("PLAYBOOK_ADMIN_PASSWORD"); pw != "" {
		cfg.Auth.AdminPassword = pw
	}
	if hash := os.Getenv("PLAYBOOK_ADMIN_PASSWORD_HASH"); hash != "" {
		cfg.Auth.AdminPasswordHash = hash
	}
	if ttl := os.Getenv("PLAYBOOK_SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("invalid PLAYBOOK_SESSION_TTL: %w", err)
		}
		cfg.Auth.SessionTTL = d
	}
	if secure := os.Getenv("PLAYBOOK_COOKIE_SECURE"); secure != "" {
		b, err := strconv.ParseBool(secure)
		if err != nil {
			return fmt.Errorf("invalid PLAYBOOK_COOKIE_SECURE: %w", err)
		}
		cfg.Auth.CookieSecure = b
	}
	if key := os.Getenv("PLAYBOOK_CSRF_KEY"); key != "" {
		cfg.Auth.CSRFKey = key
	}
	if tz := os.Getenv("PLAYBOOK_TIMEZONE"); tz != "" {
		cfg.Calendar.Timezone = tz
	}
	if days := os.Getenv("PLAYBOOK_RECENT_WINDOW_DAYS"); days != "" {
		n, err := strconv.Atoi(days)
		if err != nil {
			return fmt.Errorf("invalid PLAYBOOK_RECENT_WINDOW_DAYS: %w", err)
		}
		cfg.Calendar.RecentWindowDays = n
	}
	if enabled := os.Getenv("PLAYBOOK_METRICS_ENABLED"); enabled != "" {
		b, err := strconv.ParseBool(enabled)
		if err != nil {
			return fmt.Errorf("invalid PLAYBOOK_METRICS_ENABLED: %w", err)
		}
		cfg.Metrics.Enabled = b
	}
	return nil
}

// Validate checks values that cannot be caught while parsing.
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Transport.Mode {
	case TransportHTTP, TransportStdio:
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("invalid session ttl %s", c.Auth.SessionTTL)
	}
	if c.Auth.CSRFKey != "" && len(c.Auth.CSRFKey) != 32 {
		return errors.New("csrf_key must be exactly 32 bytes")
	}
	if c.Calendar.RecentWindowDays < 0 {
		return fmt.Errorf("invalid recent_window_days %d", c.Calendar.RecentWindowDays)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the calendar timezone used to compute today's date.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar timezone %q: %w", c.Calendar.Timezone, err)
	}
	return loc, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
