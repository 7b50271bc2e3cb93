package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoaderOptions configures the configuration loader.
type LoaderOptions struct {
	// ConfigDir is the directory containing config files (default: ./config)
	ConfigDir string
	// Environment overrides automatic environment detection
	Environment string
	// SkipEnvSubstitution disables environment variable substitution
	SkipEnvSubstitution bool
	// SkipValidation disables configuration validation
	SkipValidation bool
}

// DefaultLoaderOptions returns default loader options.
func DefaultLoaderOptions() LoaderOptions {
	return LoaderOptions{ConfigDir: "config"}
}

// candidatePaths lists the files Load tries, in priority order: an
// environment-specific file, then two progressively more generic names.
func candidatePaths(dir, env string) []string {
	return []string{
		filepath.Join(dir, env+".yaml"),
		filepath.Join(dir, "default.yaml"),
		filepath.Join(dir, "config.yaml"),
	}
}

// Load reads the first candidate file that exists, applies field
// defaults, environment-variable substitution and the override layer,
// then validates the result. If no candidate file exists it proceeds
// with an empty Config plus defaults rather than failing.
func Load(opts ...LoaderOptions) (*Config, error) {
	options := DefaultLoaderOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	env := options.Environment
	if env == "" {
		env = GetEnvironment()
	}

	cfg := &Config{}
	for _, path := range candidatePaths(options.ConfigDir, env) {
		loaded, err := loadConfigFile(path)
		if err != nil {
			continue
		}
		cfg = loaded
		break
	}

	if cfg.Environment == "" {
		cfg.Environment = env
	}
	setDefaults(cfg)

	if !options.SkipEnvSubstitution {
		SubstituteEnvVarsInConfig(cfg)
	}
	applyEnvironmentOverrides(cfg)

	if !options.SkipValidation {
		if err := rejectInvalid(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func rejectInvalid(cfg *Config) error {
	for _, v := range ValidateConfiguration(cfg) {
		if v.Level == "error" {
			return fmt.Errorf("config: %s: %s", v.Field, v.Message)
		}
	}
	return nil
}

func loadConfigFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return LoadFromFile(path)
}

// overrides lists the process environment variables that take priority
// over anything read from a config file, and where each one lands.
var overrides = []struct {
	envVar string
	apply  func(cfg *Config, value string)
}{
	{"PKSTL_LOG_LEVEL", func(cfg *Config, v string) { cfg.Logging.Level = v }},
	{"PKSTL_LOG_FORMAT", func(cfg *Config, v string) { cfg.Logging.Format = v }},
	{"PKSTL_SERIALIZER", func(cfg *Config, v string) { cfg.Session.Serializer = v }},
	{"PKSTL_COMPRESSION", func(cfg *Config, v string) { cfg.Session.Compression = v }},
}

func applyEnvironmentOverrides(cfg *Config) {
	for _, o := range overrides {
		if v := os.Getenv(o.envVar); v != "" {
			o.apply(cfg, v)
		}
	}
}

// LoadForEnvironment loads configuration for a specific environment,
// bypassing automatic detection.
func LoadForEnvironment(environment string) (*Config, error) {
	return Load(LoaderOptions{ConfigDir: "config", Environment: environment})
}

// MustLoad loads configuration or panics on error.
func MustLoad(opts ...LoaderOptions) *Config {
	cfg, err := Load(opts...)
	if err != nil {
		panic(err)
	}
	return cfg
}
