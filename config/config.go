package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

/* Config é um pacote auxiliar. Poderia ser uma lib externa*/

const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	Port            string `mapstructure:"PORT"`
	Storage         string `mapstructure:"STORAGE"`
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int    `mapstructure:"REDIS_DB"`
	DeliveryTimeout int    `mapstructure:"DELIVERY_TIMEOUT"`
	SeedFile        string `mapstructure:"SEED_FILE"`
}

func GetConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("STORAGE", StorageMemory)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("DELIVERY_TIMEOUT", 10)
	viper.SetDefault("SEED_FILE", "")

	// A missing .env is fine: env vars and defaults cover everything.
	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	err = viper.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}

	if config.Storage != StorageRedis && config.Storage != StorageMemory {
		return nil, fmt.Errorf("invalid STORAGE %q: must be %q or %q", config.Storage, StorageRedis, StorageMemory)
	}
	if config.DeliveryTimeout <= 0 {
		return nil, fmt.Errorf("invalid DELIVERY_TIMEOUT %d: must be positive", config.DeliveryTimeout)
	}

	return &config, nil
}

// GetDeliveryTimeout returns the per-attempt delivery timeout
func (c *Config) GetDeliveryTimeout() time.Duration {
	return time.Duration(c.DeliveryTimeout) * time.Second
}
