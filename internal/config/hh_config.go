package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
)

type HHConfig struct {
	Url                  string  `mapstructure:"url"`
	Keyword              string  `mapstructure:"keyword"`
	Pages                int     `mapstructure:"pages"`
	PerPage              int     `mapstructure:"per_page"`
	OnlyWithSalary       bool    `mapstructure:"only_with_salary"`
	MaxRequestsPerSecond float32 `mapstructure:"max_requests_per_second"`
}

func (config HHConfig) validate() error {
	var errs []error

	if config.Url == "" {
		errs = append(errs, fmt.Errorf("missing variable: url"))
	}
	if config.Pages < 1 || config.Pages > 20 {
		errs = append(errs, fmt.Errorf("pages must be between 1 and 20, got %d", config.Pages))
	}
	if config.PerPage < 1 || config.PerPage > 100 {
		errs = append(errs, fmt.Errorf("per_page must be between 1 and 100, got %d", config.PerPage))
	}
	if config.MaxRequestsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("max_requests_per_second must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config HHConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"hh.url":                     "HH_URL",
		"hh.keyword":                 "HH_KEYWORD",
		"hh.pages":                   "HH_PAGES",
		"hh.per_page":                "HH_PER_PAGE",
		"hh.only_with_salary":        "HH_ONLY_WITH_SALARY",
		"hh.max_requests_per_second": "HH_MAX_REQUESTS_PER_SECOND",
	})
}
