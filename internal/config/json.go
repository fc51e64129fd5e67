package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/chuilabs/chui/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the timeout can be given either as a string like "10s"
// or as integer nanoseconds.
type jsonConfig struct {
	ServerEndpointURL string         `json:"server_endpoint_url"`
	DataDir           string         `json:"data_dir"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
}

// applyJSON overlays cfg with values from the JSON file at path. An empty
// path means no file was requested. Only fields present in the file
// override the current values.
func applyJSON(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.ServerEndpointURL != "" {
		cfg.ServerEndpointURL = jc.ServerEndpointURL
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	return nil
}
