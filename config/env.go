package config

import (
	"os"
	"regexp"
	"strings"
)

// placeholderPattern matches ${NAME} or ${NAME:fallback} inside a config
// string value.
var placeholderPattern = regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

// SubstituteEnvVars expands every ${NAME} or ${NAME:fallback} placeholder
// in input against the process environment. An unset NAME with no
// fallback expands to the empty string.
func SubstituteEnvVars(input string) string {
	matches := placeholderPattern.FindAllStringSubmatchIndex(input, -1)
	if matches == nil {
		return input
	}

	var out strings.Builder
	pos := 0
	for _, m := range matches {
		out.WriteString(input[pos:m[0]])

		name := input[m[2]:m[3]]
		fallback := ""
		if m[4] >= 0 {
			fallback = input[m[4]:m[5]]
		}

		if v, ok := os.LookupEnv(name); ok && v != "" {
			out.WriteString(v)
		} else {
			out.WriteString(fallback)
		}

		pos = m[1]
	}
	out.WriteString(input[pos:])
	return out.String()
}

// SubstituteEnvVarsInConfig runs SubstituteEnvVars over every string field
// of cfg that may carry a placeholder.
func SubstituteEnvVarsInConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	targets := []*string{
		&cfg.Logging.Level,
		&cfg.Logging.Format,
		&cfg.Logging.Output,
		&cfg.Session.Serializer,
		&cfg.Session.Compression,
		&cfg.Session.RequireRemotePubkeyHex,
	}
	for _, t := range targets {
		*t = SubstituteEnvVars(*t)
	}
}

const (
	envProduction  = "production"
	envDevelopment = "development"
	envLocal       = "local"
)

// environmentVarNames are consulted in order to name the deployment
// environment; the first one set wins.
var environmentVarNames = []string{"PKSTL_ENV", "ENVIRONMENT"}

// GetEnvironment reports the deployment environment, defaulting to
// "development" when none of environmentVarNames is set.
func GetEnvironment() string {
	for _, name := range environmentVarNames {
		if v := os.Getenv(name); v != "" {
			return strings.ToLower(v)
		}
	}
	return envDevelopment
}

// IsProduction reports whether GetEnvironment is "production".
func IsProduction() bool {
	return GetEnvironment() == envProduction
}

// IsDevelopment reports whether GetEnvironment is "development" or "local".
func IsDevelopment() bool {
	switch GetEnvironment() {
	case envDevelopment, envLocal:
		return true
	default:
		return false
	}
}
