package carenest

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	defaultHTTPTimeout      = 10 * time.Second
	defaultDebounceInterval = 400 * time.Millisecond
)

// Config is the environment-driven client configuration (CARENEST_* vars).
type Config struct {
	BaseURL          string        `envconfig:"BASE_URL" default:"http://127.0.0.1:8000"`
	HTTPTimeout      time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	DebounceInterval time.Duration `envconfig:"DEBOUNCE_INTERVAL" default:"400ms"`
	CredentialFile   string        `envconfig:"CREDENTIAL_FILE"`
	CredentialSecret string        `envconfig:"CREDENTIAL_SECRET"`
	DefaultRole      string        `envconfig:"DEFAULT_ROLE" default:"client"`
}

// LoadConfig reads CARENEST_*-prefixed environment overrides on top of
// defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("carenest", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
