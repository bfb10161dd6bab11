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

// FileConfig is the on-disk shape of the config. Durations use
// timex.Duration so a file may say "3s" or an integer number of nanoseconds.
// Absent keys leave the current values alone.
type FileConfig struct {
	APIBaseURL     *string         `json:"api_base_url" toml:"api_base_url"`
	DBPath         *string         `json:"db_path" toml:"db_path"`
	RequestTimeout *timex.Duration `json:"request_timeout" toml:"request_timeout"`
	LogLevel       *string         `json:"log_level" toml:"log_level"`
}

// parseFile overlays cfg with the file given by -c or -config. Files ending
// in .toml are read as TOML, everything else as JSON.
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

	if fc.APIBaseURL != nil {
		cfg.APIBaseURL = *fc.APIBaseURL
	}
	if fc.DBPath != nil {
		cfg.DBPath = *fc.DBPath
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	return nil
}
