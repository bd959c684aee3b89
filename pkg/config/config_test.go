package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/stylegen-service/internal/repository"
)

func validConfig() *Config {
	return &Config{
		RenderBackend:            "proxy",
		ScrapingBeeAPIKey:        "sb-key",
		OpenAIAPIKey:             "oa-key",
		GenerationMinIntervalSec: 20,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateLocalBackendNeedsNoProxyKey(t *testing.T) {
	cfg := validConfig()
	cfg.RenderBackend = "local"
	cfg.ScrapingBeeAPIKey = ""
	require.NoError(t, cfg.Validate())
}

func TestValidateFailsWithConfigurationError(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing proxy key", func(c *Config) { c.ScrapingBeeAPIKey = "" }},
		{"missing openai key", func(c *Config) { c.OpenAIAPIKey = "" }},
		{"unknown backend", func(c *Config) { c.RenderBackend = "carrier-pigeon" }},
		{"zero min interval", func(c *Config) { c.GenerationMinIntervalSec = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, repository.ErrConfiguration)
		})
	}
}
