package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ConfigName   = "config"
	ConfigFormat = "yaml"
	EnvPrefix    = "POLIJECARE"
)

var GlobalConf *Config

func ReadConfig(configPath string) (*Config, error) {
	// A .env next to the config file (or in the working directory) feeds the
	// POLIJECARE_* overrides below. Missing files are fine.
	_ = godotenv.Load(filepath.Join(configPath, ".env"))
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName(ConfigName)
	v.SetConfigType(ConfigFormat)
	v.AddConfigPath(configPath)

	// e.g. POLIJECARE_API_BASE_URL overrides api.base_url
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Running from env vars only; api.base_url must come from somewhere.
		if os.Getenv(EnvPrefix+"_API_BASE_URL") == "" {
			return nil, fmt.Errorf("config file not found in %q and %s_API_BASE_URL is not set", configPath, EnvPrefix)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func MustReadConfig(path string) *Config {
	config, err := ReadConfig(path)
	if err != nil {
		panic(err)
	}

	GlobalConf = config

	return config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.timeout_seconds", 15)
	v.SetDefault("api.user_agent", "polijecare-web/1.0")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.timezone", "Asia/Jakarta")
	v.SetDefault("server.body_limit_mb", 10)
	v.SetDefault("server.rate_limit.max", 120)
	v.SetDefault("server.rate_limit.expiration_seconds", 60)

	v.SetDefault("redis.addr", "localhost:6379")

	v.SetDefault("authentication.paseto.mode", "local")
	v.SetDefault("authentication.paseto.issuer", "polijecare-web")
	v.SetDefault("authentication.paseto.audience", "polijecare-web")
	v.SetDefault("authentication.paseto.access_ttl_minutes", 120)
	v.SetDefault("authentication.session_ttl_minutes", 720)

	v.SetDefault("authorization.enable_audit", true)

	v.SetDefault("counseling.method", "offline")
	v.SetDefault("counseling.location", "Ruang Satgas PPKS Gedung Pusat Lt. 1")
	v.SetDefault("counseling.history_route", "/user/riwayat")
	v.SetDefault("counseling.navigate_delay_ms", 2000)
	v.SetDefault("counseling.confirm_lock_seconds", 30)
	v.SetDefault("counseling.selection_ttl_minutes", 60)

	v.SetDefault("geocoding.enabled", true)
	v.SetDefault("geocoding.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoding.user_agent", "polijecare-web/1.0")
	v.SetDefault("geocoding.country_codes", "id")
	v.SetDefault("geocoding.requests_per_second", 1.0)
	v.SetDefault("geocoding.timeout_seconds", 10)

	v.SetDefault("email.smtp.port", 587)
	v.SetDefault("email.smtp.timeout_seconds", 10)

	v.SetDefault("observability.service_name", "polijecare-web")
	v.SetDefault("observability.service_version", "dev")
	v.SetDefault("observability.tracing.sampling_rate", 1.0)
	v.SetDefault("observability.metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output.stdout", true)
}
