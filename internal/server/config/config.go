// Package config handles configuration for the reference server,
// including defaults, a config file overlay, environment and flags.
package config

import (
	"errors"
	"os"
	"time"
)

// Config holds runtime settings for the reference server.
//
// Fields:
//   - ListenAddr: bind address of the HTTP API.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default in prod.
//   - TokenValidity: lifetime of issued access tokens.
//   - LoginRatePerMinute: login attempts allowed per client address.
type Config struct {
	ListenAddr         string        `env:"LISTEN_ADDR"`
	SecretKey          string        `env:"SECRET_KEY"`
	TokenValidity      time.Duration `env:"TOKEN_VALIDITY"`
	LoginRatePerMinute int           `env:"LOGIN_RATE_PER_MINUTE"`
	LogLevel           string        `env:"LOG_LEVEL"`
}

const EnvPrefix = "SESSIONKEEPER_SERVER_"

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":5000"
	c.SecretKey = "secretKey"
	c.TokenValidity = time.Hour
	c.LoginRatePerMinute = 30
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then an optional config
// file, the environment and finally command-line flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], ".env")
}

func load(args []string, dotenv string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, dotenv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.ListenAddr == "" {
		errs = append(errs, errors.New("listen address is empty"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is empty"))
	}
	if c.TokenValidity <= 0 {
		errs = append(errs, errors.New("token validity must be positive"))
	}
	if c.LoginRatePerMinute <= 0 {
		errs = append(errs, errors.New("login rate must be positive"))
	}
	return errors.Join(errs...)
}
