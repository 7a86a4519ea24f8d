// Package config handles configuration for the CLI client: defaults,
// optional JSON overlay, and command-line flags.
package config

// Config holds runtime settings for the StudyMate CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - SessionFile: path of the session file; empty means the per-user default.
type Config struct {
	ServerBaseURL string
	SessionFile   string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.SessionFile = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
