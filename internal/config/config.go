package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTP HTTPConfig
	DB   DBConfig
	Log  LogConfig
	Dev  DevConfig
}

type HTTPConfig struct {
	Port string `env:"BURROW_PORT" env-default:"8080"`
}

type DBConfig struct {
	Path string `env:"BURROW_DB_PATH" env-default:"burrow.db"`
}

type LogConfig struct {
	Level  string `env:"BURROW_LOG_LEVEL" env-default:"info"`
	Format string `env:"BURROW_LOG_FORMAT" env-default:"text"`
}

type DevConfig struct {
	// FallbackUserID is used when a request carries no X-User-ID header,
	// mirroring the app's hardcoded development user. Empty disables the
	// fallback and makes the header mandatory.
	FallbackUserID string `env:"BURROW_DEV_USER_ID" env-default:""`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}
