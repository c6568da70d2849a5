// Package config loads the oiml tool configuration from .oiml.yml
// or environment variables.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the oiml tool configuration
type Config struct {
	// SchemaPaths are extra schema directories searched before the
	// packaged schemas, in priority order
	SchemaPaths []string `mapstructure:"schema_paths"`
	// MatrixPath points at the compatibility matrix file
	MatrixPath string `mapstructure:"matrix_path"`
	// DefaultScope applies to intents that declare no scope
	DefaultScope string `mapstructure:"default_scope"`
}

// Load loads the configuration from .oiml.yml or .oiml.yaml in the
// current directory, falling back to defaults when no file exists.
// Environment variables use the OIML_ prefix (OIML_MATRIX_PATH).
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("schema_paths", []string{".oiml/schemas"})
	v.SetDefault("matrix_path", "")
	v.SetDefault("default_scope", "")

	v.SetConfigName(".oiml")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("OIML")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file - defaults apply
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
