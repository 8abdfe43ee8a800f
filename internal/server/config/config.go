// Package config handles configuration for the server component:
// defaults, a JSON or TOML file overlay, environment variables and
// command-line flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the task tracker server. It is built
// once at startup and handed to every component that needs a value from it.
//
// Fields:
//   - Address: bind address of the HTTP endpoint.
//   - DatabaseDSN: postgres:// DSN (pgx) or a SQLite file/DSN (modernc).
//   - SecretKey: HMAC secret for signing access tokens (HS256). Required.
//   - AccessTokenValidityDuration: access token lifetime.
//   - BcryptCost: work factor for password hashing.
//   - CORSOrigins: origins allowed to call the API from a browser.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	Address                     string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	BcryptCost                  int
	CORSOrigins                 []string
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults. There is no
// default secret: it must come from a file, SECRET_KEY or -s.
func (c *Config) LoadDefaults() {
	c.Address = ":8000"
	c.DatabaseDSN = "file:tasks.db"
	c.SecretKey = ""
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.BcryptCost = bcrypt.DefaultCost
	c.CORSOrigins = []string{"http://127.0.0.1:5173"}
	c.LogLevel = "info"
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is required"))
	}
	if c.AccessTokenValidityDuration <= 0 {
		errs = append(errs, fmt.Errorf("access token validity must be positive, got %s", c.AccessTokenValidityDuration))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt cost must be within [%d, %d], got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database DSN is required"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file, the environment and finally command-line
// flags. The result is validated.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
