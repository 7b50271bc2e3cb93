package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateConfigurationAcceptsDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	require.Empty(t, ValidateConfiguration(cfg))
}

func TestValidateConfigurationRejectsUnknownSerializer(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Session.Serializer = "xml"

	errs := ValidateConfiguration(cfg)
	require.Len(t, errs, 1)
	require.Equal(t, "session.serializer", errs[0].Field)
	require.Equal(t, "error", errs[0].Level)
}

func TestValidateConfigurationRejectsMalformedPubkeyHex(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Session.RequireRemotePubkeyHex = "not-hex"

	errs := ValidateConfiguration(cfg)
	found := false
	for _, e := range errs {
		if e.Field == "session.require_remote_pubkey_hex" {
			found = true
		}
	}
	require.True(t, found)
}

func TestValidateConfigurationWarnsOnUnknownLogLevel(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Logging.Level = "verbose"

	errs := ValidateConfiguration(cfg)
	require.Len(t, errs, 1)
	require.Equal(t, "warn", errs[0].Level)
	require.True(t, strings.Contains(errs[0].Field, "logging"))
}
