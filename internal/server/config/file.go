package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/sessionkeeper/internal/flagx"
	"github.com/dmitrijs2005/sessionkeeper/internal/timex"
)

// FileConfig is the on-disk shape of the config, JSON or TOML. Absent keys
// leave the current values alone.
type FileConfig struct {
	ListenAddr         *string         `json:"listen_addr" toml:"listen_addr"`
	SecretKey          *string         `json:"secret_key" toml:"secret_key"`
	TokenValidity      *timex.Duration `json:"token_validity" toml:"token_validity"`
	LoginRatePerMinute *int            `json:"login_rate_per_minute" toml:"login_rate_per_minute"`
	LogLevel           *string         `json:"log_level" toml:"log_level"`
}

func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc FileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &fc)
	} else {
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.ListenAddr != nil {
		cfg.ListenAddr = *fc.ListenAddr
	}
	if fc.SecretKey != nil {
		cfg.SecretKey = *fc.SecretKey
	}
	if fc.TokenValidity != nil {
		cfg.TokenValidity = fc.TokenValidity.Duration
	}
	if fc.LoginRatePerMinute != nil {
		cfg.LoginRatePerMinute = *fc.LoginRatePerMinute
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	return nil
}
