package ops

import (
	"encoding/json"
	"os"
)

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	Equity   VenueConfig    `json:"equity"`
	Crypto   VenueConfig    `json:"crypto"`
	Notary   NotaryConfig   `json:"notary"`
	Database DatabaseConfig `json:"database"`
	Facts    FactsConfig    `json:"facts"`
}

// VenueConfig holds one venue's endpoint and credentials. A venue
// without credentials is left unconstructed at startup.
type VenueConfig struct {
	BaseURL string `json:"baseUrl"`
	Key     string `json:"key"`
	Secret  string `json:"secret"`
}

func (c VenueConfig) Configured() bool {
	return c.Key != "" && c.Secret != ""
}

// NotaryConfig holds the external ledger gateway settings.
type NotaryConfig struct {
	BaseURL string `json:"baseUrl"`
	Key     string `json:"key"`
	Account string `json:"account"`
}

func (c NotaryConfig) Configured() bool {
	return c.Account != ""
}

// DatabaseConfig holds the audit database connection. Without it the
// verification log falls back to an in-memory store.
type DatabaseConfig struct {
	ConnString string `json:"connString"`
	Host       string `json:"host"`
	Port       int    `json:"port"`
	User       string `json:"user"`
	Password   string `json:"password"`
	Database   string `json:"database"`
	SSLMode    string `json:"sslMode"`
}

func (c DatabaseConfig) Configured() bool {
	return c.ConnString != "" || c.Database != ""
}

// FactsConfig points at an optional authored facts file layered over
// the built-in seed.
type FactsConfig struct {
	Path string `json:"path"`
}

// Load reads a JSON config file.
func Load(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, err
	}
	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when no config file is given:
// no venues, no notary, in-memory audit store.
func Default() FileConfig {
	return FileConfig{}
}
