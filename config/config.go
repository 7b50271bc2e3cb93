// Package config provides YAML-file-plus-environment-variable
// configuration loading for a process embedding PKSTL: logging level and
// format, and the session settings (serializer, compression, max frame
// size, required remote identity) that the process maps onto
// pkstl.Options and its With* options.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration structure for a PKSTL-embedding
// process.
type Config struct {
	Environment string        `yaml:"environment" json:"environment"`
	Logging     LoggingConfig `yaml:"logging" json:"logging"`
	Session     SessionConfig `yaml:"session" json:"session"`
}

// LoggingConfig controls the internal/logger.StructuredLogger the
// process wires into PKSTL via pkstl.WithLogger.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format"` // json, pretty
	Output string `yaml:"output" json:"output"` // stdout, stderr, file path
}

// SessionConfig holds the session settings a deployment typically wants
// to set from a config file rather than hard-code: the user-data
// envelope's serializer/compression choice, the max accepted frame size,
// and an optional pinned remote identity (hex-encoded Ed25519 public key).
type SessionConfig struct {
	Serializer             string `yaml:"serializer" json:"serializer"`     // none, binary, cbor, json
	Compression            string `yaml:"compression" json:"compression"`   // off, deflate
	MaxFrameSizeBytes      uint64 `yaml:"max_frame_size_bytes" json:"max_frame_size_bytes"`
	RequireRemotePubkeyHex string `yaml:"require_remote_pubkey_hex,omitempty" json:"require_remote_pubkey_hex,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file, trying YAML
// first and falling back to JSON on parse failure (the teacher's own
// dual-format convention).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("config: parse file (tried YAML and JSON): %w", err)
		}
	}

	setDefaults(cfg)
	return cfg, nil
}

// SaveToFile saves configuration to path, choosing the format by file
// extension.
func SaveToFile(cfg *Config, path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".json") {
		data, err = json.MarshalIndent(cfg, "", "  ")
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write file: %w", err)
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
	if cfg.Session.Serializer == "" {
		cfg.Session.Serializer = "none"
	}
	if cfg.Session.Compression == "" {
		cfg.Session.Compression = "off"
	}
	if cfg.Session.MaxFrameSizeBytes == 0 {
		cfg.Session.MaxFrameSizeBytes = 40 << 20
	}
}
