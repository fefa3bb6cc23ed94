package config

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
)

type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger"`
	DB       DBConfig       `mapstructure:"db"`
	HH       HHConfig       `mapstructure:"hh"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("failed to load .env file: %v", err)
	}

	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		configFile = value
	}

	config, err := loadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	v := viper.New()
	v.SetConfigFile(file)
	v.AutomaticEnv()

	setDefaults(v)

	if err := bindEnvironmentVariables(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", file, err)
	}

	config := Config{}
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.driver", string(DriverSQLite))
	v.SetDefault("db.name", "headhunter")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("hh.url", "https://api.hh.ru/vacancies")
	v.SetDefault("hh.keyword", "python")
	v.SetDefault("hh.pages", 1)
	v.SetDefault("hh.per_page", 10)
	v.SetDefault("hh.only_with_salary", true)
	v.SetDefault("hh.max_requests_per_second", 5)
	v.SetDefault("pipeline.snapshot_file", "data/data.json")
	v.SetDefault("pipeline.invalid_listing_policy", string(PolicyAbort))
	v.SetDefault("pipeline.batch_size", 100)
	v.SetDefault("pipeline.refresh_schedule", "@daily")
	v.SetDefault("metrics.port", 8080)
}

type section interface {
	validate() error
	bindEnvironmentVariables(v *viper.Viper) error
}

func (config *Config) sections() map[string]section {
	return map[string]section{
		"LoggerConfig":   config.Logger,
		"DBConfig":       config.DB,
		"HHConfig":       config.HH,
		"PipelineConfig": config.Pipeline,
		"MetricsConfig":  config.Metrics,
	}
}

func bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error

	for name, s := range (&Config{}).sections() {
		if err := s.bindEnvironmentVariables(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config *Config) validate() error {
	var errs []error

	for name, s := range config.sections() {
		if err := s.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func bindAll(v *viper.Viper, bindings map[string]string) error {
	var errs []error
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
