package syncqueue

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config tunes the executor. Zero values are replaced with defaults in New.
type Config struct {
	Shards         int           `envconfig:"SHARDS" default:"2"`
	QueueSize      int           `envconfig:"QUEUE_SIZE" default:"128"`
	EnqueueTimeout time.Duration `envconfig:"ENQUEUE_TIMEOUT" default:"100ms"`
	MaxAttempts    int           `envconfig:"MAX_ATTEMPTS" default:"4"`
	BaseBackoff    time.Duration `envconfig:"BASE_BACKOFF" default:"100ms"`
	MaxInterval    time.Duration `envconfig:"MAX_INTERVAL" default:"10s"`

	// ErrorHandler, when set, receives every terminal job error (after the
	// retry budget is spent or on an irrecoverable failure).
	ErrorHandler func(error) `ignored:"true"`
}

// LoadConfig reads SQ_*-prefixed environment overrides on top of defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("sq", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
