package client

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the shopper CLI configuration, read from SHOPPER_* variables.
type Config struct {
	APIURL       string        `envconfig:"API_URL" default:"http://localhost:8080/api"`
	StateDir     string        `envconfig:"STATE_DIR" default:".storefront"`
	Timeout      time.Duration `envconfig:"TIMEOUT" default:"60s"`
	MaxAttempts  int           `envconfig:"MAX_ATTEMPTS" default:"3"`
	RetryDelay   time.Duration `envconfig:"RETRY_DELAY" default:"1s"`
	WarnCooldown time.Duration `envconfig:"WARN_COOLDOWN" default:"10s"`

	// When set, APIURL is replaced by a healthy instance from Consul.
	ConsulAddr  string `envconfig:"CONSUL_ADDR"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"storefront-api"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"warn"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("shopper", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}
