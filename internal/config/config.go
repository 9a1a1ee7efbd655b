package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Logging  LoggingConfig
	Database DatabaseConfig
	Stripe   StripeConfig
}

type LoggingConfig struct {
	Level string
}

type DatabaseConfig struct {
	DSN string
}

type StripeConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// Load reads config.yaml (if present) and overlays BILLINGKIT_* env
// vars. A missing config file is fine; env-only deployments are the
// common case.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/billingkit")

	v.SetEnvPrefix("BILLINGKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("database.dsn", "")
	v.SetDefault("stripe.api_key", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
