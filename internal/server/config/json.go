package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/flagx"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "5s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr      string         `json:"endpoint_addr"`
	DatabaseDSN       string         `json:"database_dsn"`
	ShutdownTimeout   timex.Duration `json:"shutdown_timeout"`
	SigningKeys       []SigningKey   `json:"signing_keys"`
	VaultRegion       string         `json:"vault_region"`
	VaultBaseEndpoint string         `json:"vault_base_endpoint"`
	VaultAccessKey    string         `json:"vault_access_key"`
	VaultSecretKey    string         `json:"vault_secret_key"`
	S3Container       string         `json:"s3_container"`
	S3Region          string         `json:"s3_region"`
	S3BaseEndpoint    string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path is taken from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. An unreadable or malformed file
// panics, since the process cannot run with a half-applied configuration.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.ShutdownTimeout = time.Duration(c.ShutdownTimeout.Duration)
	config.SigningKeys = c.SigningKeys
	config.VaultRegion = c.VaultRegion
	config.VaultBaseEndpoint = c.VaultBaseEndpoint
	config.VaultAccessKey = c.VaultAccessKey
	config.VaultSecretKey = c.VaultSecretKey
	config.S3Container = c.S3Container
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
