package config

import "encoding/hex"

// ValidationError describes one configuration problem. Level is "error"
// (fails Load) or "warn" (reported by ValidateConfiguration but ignored
// by Load).
type ValidationError struct {
	Field   string
	Message string
	Level   string
}

var validSerializers = map[string]bool{"none": true, "binary": true, "cbor": true, "json": true}
var validCompressions = map[string]bool{"off": true, "deflate": true}
var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// ValidateConfiguration checks cfg for values the loader should reject
// before PKSTL ever sees them -- an unknown serializer or compression
// name, or a malformed pinned-pubkey hex string -- and warns on an unknown
// log level. MaxFrameSizeBytes is not range-checked.
func ValidateConfiguration(cfg *Config) []ValidationError {
	var errs []ValidationError

	if !validLogLevels[cfg.Logging.Level] {
		errs = append(errs, ValidationError{Field: "logging.level", Message: "must be one of debug, info, warn, error", Level: "warn"})
	}
	if !validSerializers[cfg.Session.Serializer] {
		errs = append(errs, ValidationError{Field: "session.serializer", Message: "must be one of none, binary, cbor, json", Level: "error"})
	}
	if !validCompressions[cfg.Session.Compression] {
		errs = append(errs, ValidationError{Field: "session.compression", Message: "must be one of off, deflate", Level: "error"})
	}
	if cfg.Session.RequireRemotePubkeyHex != "" {
		if b, err := hex.DecodeString(cfg.Session.RequireRemotePubkeyHex); err != nil || len(b) != 32 {
			errs = append(errs, ValidationError{Field: "session.require_remote_pubkey_hex", Message: "must be a 32-byte hex-encoded Ed25519 public key", Level: "error"})
		}
	}

	return errs
}
