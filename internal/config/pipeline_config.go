package config

import (
	"errors"
	"fmt"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// InvalidListingPolicy decides what a load does with a listing that does not normalize.
type InvalidListingPolicy string

const (
	// PolicyAbort fails the whole load on the first such listing.
	PolicyAbort InvalidListingPolicy = "abort"
	// PolicySkip leaves such listings out and reports them.
	PolicySkip InvalidListingPolicy = "skip"
)

type PipelineConfig struct {
	SnapshotFile         string               `mapstructure:"snapshot_file"`
	InvalidListingPolicy InvalidListingPolicy `mapstructure:"invalid_listing_policy"`
	BatchSize            int                  `mapstructure:"batch_size"`
	RefreshSchedule      string               `mapstructure:"refresh_schedule"`
}

func (config PipelineConfig) validate() error {
	var errs []error

	if config.SnapshotFile == "" {
		errs = append(errs, fmt.Errorf("missing variable: snapshot_file"))
	}
	if config.InvalidListingPolicy != PolicyAbort && config.InvalidListingPolicy != PolicySkip {
		errs = append(errs, fmt.Errorf("unknown invalid_listing_policy: %q", config.InvalidListingPolicy))
	}
	if config.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("batch_size must be positive"))
	}
	if _, err := cron.ParseStandard(config.RefreshSchedule); err != nil {
		errs = append(errs, fmt.Errorf("invalid refresh_schedule: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config PipelineConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"pipeline.snapshot_file":          "SNAPSHOT_FILE",
		"pipeline.invalid_listing_policy": "INVALID_LISTING_POLICY",
		"pipeline.batch_size":             "LOAD_BATCH_SIZE",
		"pipeline.refresh_schedule":       "REFRESH_SCHEDULE",
	})
}

type MetricsConfig struct {
	Port int `mapstructure:"port"`
}

func (config MetricsConfig) validate() error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid metrics port: %d", config.Port)
	}
	return nil
}

func (config MetricsConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return v.BindEnv("metrics.port", "METRICS_PORT")
}
