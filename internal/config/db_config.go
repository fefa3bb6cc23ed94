package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"strings"
)

type dbDriver string

const (
	DriverSQLite   dbDriver = "sqlite"
	DriverPostgres dbDriver = "postgres"
)

type DBConfig struct {
	Driver   dbDriver `mapstructure:"driver"`
	Host     string   `mapstructure:"host"`
	Port     int      `mapstructure:"port"`
	User     string   `mapstructure:"user"`
	Password string   `mapstructure:"password"`
	Name     string   `mapstructure:"name"`
	SSLMode  string   `mapstructure:"sslmode"`
}

// DSN builds the connection string for the configured driver.
// For SQLite the name is the database file, ".db" is appended when it has no extension.
func (config DBConfig) DSN() string {
	switch config.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			config.Host, config.User, config.Password, config.Name, config.Port, config.SSLMode)
	default:
		if strings.Contains(config.Name, ".") {
			return config.Name
		}
		return config.Name + ".db"
	}
}

func (config DBConfig) validate() error {
	var errs []error

	if config.Name == "" {
		errs = append(errs, fmt.Errorf("missing variable: db name"))
	}

	switch config.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if config.Host == "" {
			errs = append(errs, fmt.Errorf("missing variable: db host"))
		}
		if config.Port <= 0 {
			errs = append(errs, fmt.Errorf("invalid variable: db port %d", config.Port))
		}
		if config.User == "" {
			errs = append(errs, fmt.Errorf("missing variable: db user"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown db driver: %q", config.Driver))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config DBConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"db.driver":   "DB_DRIVER",
		"db.host":     "DB_HOST",
		"db.port":     "DB_PORT",
		"db.user":     "DB_USER",
		"db.password": "DB_PASSWORD",
		"db.name":     "DB_NAME",
		"db.sslmode":  "DB_SSLMODE",
	})
}
