package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/tasktracker/internal/flagx"
)

// FileConfig mirrors Config for unmarshalling from a JSON or TOML file.
// Only keys present in the file override the current values.
type FileConfig struct {
	Address                     string   `json:"address" toml:"address"`
	DatabaseDSN                 string   `json:"database_dsn" toml:"database_dsn"`
	SecretKey                   string   `json:"secret_key" toml:"secret_key"`
	AccessTokenValidityDuration Duration `json:"access_token_validity_duration" toml:"access_token_validity_duration"`
	BcryptCost                  int      `json:"bcrypt_cost" toml:"bcrypt_cost"`
	CORSOrigins                 []string `json:"cors_origins" toml:"cors_origins"`
	LogLevel                    string   `json:"log_level" toml:"log_level"`
}

// parseFile loads the file named by -c/-config into config. The format is
// chosen by extension: .toml is TOML, anything else JSON. Without the flag
// nothing happens.
func parseFile(config *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fc := &FileConfig{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, fc)
	} else {
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	fc.apply(config)
	return nil
}

func (fc *FileConfig) apply(config *Config) {
	if fc.Address != "" {
		config.Address = fc.Address
	}
	if fc.DatabaseDSN != "" {
		config.DatabaseDSN = fc.DatabaseDSN
	}
	if fc.SecretKey != "" {
		config.SecretKey = fc.SecretKey
	}
	if fc.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	}
	if fc.BcryptCost != 0 {
		config.BcryptCost = fc.BcryptCost
	}
	if fc.CORSOrigins != nil {
		config.CORSOrigins = fc.CORSOrigins
	}
	if fc.LogLevel != "" {
		config.LogLevel = fc.LogLevel
	}
}
