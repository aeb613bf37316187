// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Pipeline struct {
		// HighValueThreshold is the cutoff (currency units) above which a
		// transaction is excluded from spend-based estimation.
		HighValueThreshold int64 `mapstructure:"high_value_threshold" yaml:"high_value_threshold"`
	} `mapstructure:"pipeline" yaml:"pipeline"`

	Data struct {
		RulesFile   string `mapstructure:"rules_file" yaml:"rules_file"`
		FactorsFile string `mapstructure:"factors_file" yaml:"factors_file"`
	} `mapstructure:"data" yaml:"data"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		MaxAttempts    int    `mapstructure:"max_attempts" yaml:"max_attempts"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		BatchSize      int    `mapstructure:"batch_size" yaml:"batch_size"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Insights struct {
		Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	} `mapstructure:"insights" yaml:"insights"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.carbonstmt")
	v.AddConfigPath(".carbonstmt")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CARBONSTMT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file present but unreadable: keep going with
			// defaults and env vars.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// API key always comes from the unprefixed env var.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("pipeline.high_value_threshold", 50000)

	v.SetDefault("data.rules_file", "rules.yaml")
	v.SetDefault("data.factors_file", "factors.yaml")

	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.max_attempts", 3)
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.batch_size", 40)

	v.SetDefault("insights.enabled", false)
}

func validateConfig(config *Config) error {
	switch config.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	switch config.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s", config.Log.Format)
	}

	if config.Pipeline.HighValueThreshold <= 0 {
		return fmt.Errorf("high_value_threshold must be positive, got %d", config.Pipeline.HighValueThreshold)
	}
	if config.AI.MaxAttempts < 1 {
		return fmt.Errorf("ai.max_attempts must be at least 1, got %d", config.AI.MaxAttempts)
	}
	if config.AI.BatchSize < 1 {
		return fmt.Errorf("ai.batch_size must be at least 1, got %d", config.AI.BatchSize)
	}

	return nil
}
