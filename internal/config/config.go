package config

import "time"

// Config holds runtime settings for the chui client.
//
// Fields:
//   - ServerEndpointURL: base URL of the identity-service endpoint.
//   - DataDir: directory for the ledger, profile cache and session token.
//     Empty means "resolve the per-user default (~/.chui) at startup".
//   - RequestTimeout: per-request timeout applied to the HTTP client.
type Config struct {
	ServerEndpointURL string
	DataDir           string
	RequestTimeout    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = "http://127.0.0.1:8787"
	c.DataDir = ""
	c.RequestTimeout = 10 * time.Second
}

// Load constructs a Config from defaults overlaid with the JSON file at
// jsonPath (skipped when empty). Command-line flag overrides are applied by
// the CLI layer on top of the returned value.
func Load(jsonPath string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := applyJSON(cfg, jsonPath); err != nil {
		return nil, err
	}
	return cfg, nil
}
