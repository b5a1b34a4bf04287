package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "DIAMONDAVE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App  AppConfig
	Shop ShopConfig
	CORS CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Shop.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"DIAMONDAVE_APP_ENV" default:"dev"`
	Port     string `envconfig:"DIAMONDAVE_APP_PORT" default:"8080"`
	LogLevel string `envconfig:"DIAMONDAVE_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// ShopConfig points at the shop backend web app. An empty BaseURL puts the
// storefront in demo mode: the static catalog is served and orders are
// validated but never transmitted.
type ShopConfig struct {
	BaseURL        string        `envconfig:"DIAMONDAVE_SHOP_BASE_URL"`
	RequestTimeout time.Duration `envconfig:"DIAMONDAVE_SHOP_REQUEST_TIMEOUT" default:"15s"`
}

func (s ShopConfig) Configured() bool {
	return strings.TrimSpace(s.BaseURL) != ""
}

func (s ShopConfig) validate() error {
	if !s.Configured() {
		return nil
	}
	parsed, err := url.Parse(s.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid shop base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("shop base url must be http(s), got %q", s.BaseURL)
	}
	return nil
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"DIAMONDAVE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
