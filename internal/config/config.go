package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type AppSubConfig struct {
	PageSize         int `mapstructure:"page_size"`
	ProjectionMonths int `mapstructure:"projection_months"` // default horizon for balance projections
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	App      AppSubConfig   `mapstructure:"app"`
}

// Load reads configuration from the given file path (e.g. "config.yaml").
// If path is empty it looks for config.yaml in the working directory.
// The returned Config is handed down explicitly; there is no package
// level singleton.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	// environment overrides, e.g. BGL_SERVER_PORT=9000
	v.SetEnvPrefix("BGL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if c.App.ProjectionMonths <= 0 {
		c.App.ProjectionMonths = 12
	}

	return &c, nil
}
