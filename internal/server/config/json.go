package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/bankd/internal/flagx"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. Duration fields are plain integers (minutes/seconds) so a
// config file stays editable without duration-literal syntax.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files; after unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr           string `json:"endpoint_addr"`
	DatabaseDSN            string `json:"database_dsn"`
	SecretKey              string `json:"secret_key"`
	SessionValidityMinutes int    `json:"session_validity_minutes"`
	SessionEarlyExpirySecs int    `json:"session_early_expiry_seconds"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SessionValidityMinutes > 0 {
		config.SessionValidityDuration = time.Duration(c.SessionValidityMinutes) * time.Minute
	}
	if c.SessionEarlyExpirySecs > 0 {
		config.SessionEarlyExpiryWindow = time.Duration(c.SessionEarlyExpirySecs) * time.Second
	}
}
