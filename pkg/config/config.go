package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Environment variable names, kept as constants so tests and docs stay
// in sync with the struct tags.
const (
	EnvAppEnv             = "SALLATY_APP_ENV"
	EnvLogLevel           = "SALLATY_LOG_LEVEL"
	EnvAPIBaseURL         = "SALLATY_API_BASE_URL"
	EnvAPITimeout         = "SALLATY_API_TIMEOUT"
	EnvUnreadPollInterval = "SALLATY_UNREAD_POLL_INTERVAL"
)

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App           AppConfig
	API           APIConfig
	Notifications NotificationsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SALLATY_APP_ENV" default:"production"`
	LogLevel     string `envconfig:"SALLATY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SALLATY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type APIConfig struct {
	BaseURL string `envconfig:"SALLATY_API_BASE_URL" required:"true"`

	// Timeout of zero leaves requests open until the server answers or
	// the context is canceled; a hung call shows as a loading state.
	Timeout time.Duration `envconfig:"SALLATY_API_TIMEOUT" default:"0"`
}

func (a APIConfig) validate() error {
	if strings.TrimSpace(a.BaseURL) == "" {
		return fmt.Errorf("%s must not be blank", EnvAPIBaseURL)
	}
	return nil
}

type NotificationsConfig struct {
	UnreadPollInterval time.Duration `envconfig:"SALLATY_UNREAD_POLL_INTERVAL" default:"30s"`
}
