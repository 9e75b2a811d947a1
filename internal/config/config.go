package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	API    APIConfig
	Auth   AuthConfig
	Social SocialConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port        string        `env:"BLOOM_PORT" env-default:"8080"`
	BaseURL     string        `env:"BLOOM_BASE_URL" env-default:"http://localhost:8080"`
	ReadTimeout time.Duration `env:"BLOOM_READ_TIMEOUT" env-default:"5s"`
	IdleTimeout time.Duration `env:"BLOOM_IDLE_TIMEOUT" env-default:"120s"`
}

type APIConfig struct {
	BaseURL string        `env:"BLOOM_API_URL" env-default:"https://api.bloom.app"`
	Timeout time.Duration `env:"BLOOM_API_TIMEOUT" env-default:"10s"`
}

type AuthConfig struct {
	DBPath     string `env:"BLOOM_SESSION_DB" env-default:"bloom.db"`
	Passphrase string `env:"BLOOM_TOKEN_PASSPHRASE"`
}

// SocialConfig holds social sign-in client identifiers. An empty value
// hides the corresponding sign-in button rather than failing startup.
type SocialConfig struct {
	GoogleClientID string `env:"BLOOM_GOOGLE_CLIENT_ID"`
	AppleClientID  string `env:"BLOOM_APPLE_CLIENT_ID"`
}

type LogConfig struct {
	Level string `env:"BLOOM_LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first if present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if cfg.Auth.Passphrase == "" {
		return Config{}, fmt.Errorf("BLOOM_TOKEN_PASSPHRASE is required")
	}
	return cfg, nil
}
