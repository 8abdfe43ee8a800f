package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/tasktracker/internal/flagx"
)

// FileConfig mirrors Config for unmarshalling. The timeout is a Go
// duration string such as "10s".
type FileConfig struct {
	ServerURL      string `json:"server_url" toml:"server_url"`
	RequestTimeout string `json:"request_timeout" toml:"request_timeout"`
}

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

	if fc.ServerURL != "" {
		config.ServerURL = fc.ServerURL
	}
	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
		config.RequestTimeout = d
	}
	return nil
}
