// Package config loads hub configuration from an optional YAML file and
// environment variables. Environment variables take priority over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Listen  ListenConfig  `yaml:"listen"`
	Token   TokenConfig   `yaml:"token"`
	Storage StorageConfig `yaml:"storage"`
	Catalog CatalogConfig `yaml:"catalog"`
	Redis   RedisConfig   `yaml:"redis"`
	Env     string        `yaml:"env" env:"HUB_ENV" env-default:"development"`
}

type ListenConfig struct {
	BindIP string `yaml:"bind_ip" env:"HUB_BIND_IP" env-default:"0.0.0.0"`
	Port   int    `yaml:"port" env:"HUB_PORT" env-default:"8080"`
}

func (l ListenConfig) Addr() string {
	return fmt.Sprintf("%s:%d", l.BindIP, l.Port)
}

type TokenConfig struct {
	Secret string        `env:"HUB_TOKEN_SECRET" env-required:"true"`
	Issuer string        `yaml:"issuer" env:"HUB_TOKEN_ISSUER" env-default:"cdah-hub"`
	TTL    time.Duration `yaml:"ttl" env:"HUB_TOKEN_TTL" env-default:"24h"`
}

type StorageConfig struct {
	DBPath   string `yaml:"db_path" env:"HUB_DB_PATH" env-default:"hub.db"`
	SeedPath string `yaml:"seed_path" env:"HUB_SEED_PATH"`
}

type CatalogConfig struct {
	Dir   string `yaml:"dir" env:"HUB_CATALOG_DIR" env-default:"catalog"`
	Watch bool   `yaml:"watch" env:"HUB_CATALOG_WATCH" env-default:"true"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"HUB_REDIS_ADDR"`
	Password string `yaml:"password" env:"HUB_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"HUB_REDIS_DB" env-default:"0"`
}

const envConfigPath = "HUB_CONFIG_PATH"

// Load reads the YAML file named by HUB_CONFIG_PATH (when set), then lets
// environment variables override it.
func Load() (*Config, error) {
	cfg := &Config{}

	if path, ok := os.LookupEnv(envConfigPath); ok && path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("couldn't read config file '%s': %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("couldn't read environment: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Token.Secret == "" {
		return errors.New("HUB_TOKEN_SECRET is required")
	}
	if cfg.Token.TTL <= 0 {
		return errors.New("token ttl must be positive")
	}
	return nil
}
