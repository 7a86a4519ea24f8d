package config

import (
	"encoding/json"
	"os"

	"studymate/internal/flagx"
)

// JsonConfig is the DTO used exclusively for JSON unmarshalling. Values are
// copied into the runtime Config afterwards.
type JsonConfig struct {
	ServerBaseURL string `json:"server_base_url"`
	SessionFile   string `json:"session_file"`
}

// parseJson overlays cfg with values from the JSON file named by the -c or
// -config flag. When no file is named the function is a no-op. Read or
// unmarshal errors panic; the intended order is defaults, JSON, flags.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.SessionFile != "" {
		cfg.SessionFile = jc.SessionFile
	}
}
