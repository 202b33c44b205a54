// Package config loads service settings from defaults, an optional YAML
// file and RSVP_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved service configuration.
type Config struct {
	ServiceName string
	AppVersion  string
	ListenPort  string
	SessionTTL  time.Duration
	Database    Database
	Log         Log
	Notify      Notify
}

type Database struct {
	Driver string
	DSN    string
}

type Log struct {
	Level  string
	Pretty bool
}

type Notify struct {
	WebhookURL string
	Timeout    time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "rsvp-planner")
	v.SetDefault("app_version", "dev")
	v.SetDefault("listen_port", "8080")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "rsvp.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("notify.webhook_url", "")
	v.SetDefault("notify.timeout", "5s")
}

// New returns a viper instance with defaults and environment binding.
// RSVP_DATABASE_DSN overrides database.dsn, and so on.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("RSVP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file into v when file is non-empty and resolves the result.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		ServiceName: v.GetString("service_name"),
		AppVersion:  v.GetString("app_version"),
		ListenPort:  v.GetString("listen_port"),
		SessionTTL:  v.GetDuration("session.ttl"),
		Database: Database{
			Driver: v.GetString("database.driver"),
			DSN:    v.GetString("database.dsn"),
		},
		Log: Log{
			Level:  v.GetString("log.level"),
			Pretty: v.GetBool("log.pretty"),
		},
		Notify: Notify{
			WebhookURL: v.GetString("notify.webhook_url"),
			Timeout:    v.GetDuration("notify.timeout"),
		},
	}

	switch cfg.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return nil, fmt.Errorf("unsupported database.driver %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("session.ttl must be positive")
	}
	return cfg, nil
}
