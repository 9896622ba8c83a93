package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Client ClientConfig `mapstructure:"client"`
	Log    LogConfig    `mapstructure:"log"`
}

// APIConfig describes where the catalog API lives for each platform
type APIConfig struct {
	Platform         string `mapstructure:"platform"`
	Port             int    `mapstructure:"port"`
	DeviceHost       string `mapstructure:"device_host"`
	ProductionDomain string `mapstructure:"production_domain"`
	ProductionScheme string `mapstructure:"production_scheme"`
}

// ClientConfig holds HTTP client settings
type ClientConfig struct {
	Timeout              int      `mapstructure:"timeout"`
	PageSize             int      `mapstructure:"page_size"`
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	UserAgent            string   `mapstructure:"user_agent"`
	Proxies              []string `mapstructure:"proxies"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from a YAML file with environment variable overrides.
// An empty path searches the current directory for config.yaml and falls back
// to defaults when none is found; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port must be between 1 and 65535, got %d", c.API.Port)
	}
	if c.Client.PageSize <= 0 {
		return fmt.Errorf("client.page_size must be positive, got %d", c.Client.PageSize)
	}
	if c.Client.MaxRequestsPerSecond < 0 {
		return fmt.Errorf("client.max_requests_per_second must not be negative, got %d", c.Client.MaxRequestsPerSecond)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.platform", "devtools")
	v.SetDefault("api.port", 5002)
	v.SetDefault("api.device_host", "192.168.31.229")
	v.SetDefault("api.production_domain", "my.domain.com")
	v.SetDefault("api.production_scheme", "https")

	v.SetDefault("client.timeout", 60)
	v.SetDefault("client.page_size", 10)
	v.SetDefault("client.max_requests_per_second", 0)
	v.SetDefault("client.user_agent", "coffee-beans-client/1.0")
	v.SetDefault("client.proxies", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
