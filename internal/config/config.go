package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Addr            string `mapstructure:"addr"`
	DBDSN           string `mapstructure:"db_dsn"`
	RefreshSchedule string `mapstructure:"refresh_schedule"`
	SampleOnStart   bool   `mapstructure:"sample_on_start"`
	SourceURL       string `mapstructure:"source_url"`
	SourceComment   string `mapstructure:"source_comment"`
}

// Load reads settings from an optional config file plus BIDBACK_* environment
// variables, layered over the built-in defaults. An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("db_dsn", "file::memory:?cache=shared")
	v.SetDefault("refresh_schedule", "@every 1h")
	v.SetDefault("sample_on_start", true)
	v.SetDefault("source_url", "")
	v.SetDefault("source_comment", "Default bidding tracker export")

	v.SetEnvPrefix("BIDBACK")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DBDSN == "" {
		return fmt.Errorf("db_dsn is required")
	}
	if c.RefreshSchedule == "" {
		return fmt.Errorf("refresh_schedule is required")
	}
	return nil
}
