package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ownerHex = "0x00000000000000000000000000000000000000a1"

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("REGISTRY_OWNER", ownerHex)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, "skip", cfg.Registry.BatchPolicy)
		assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
		assert.Equal(t, 1024, cfg.Audit.AsyncBuffer)
		assert.Empty(t, cfg.Audit.KafkaBrokers)
		assert.False(t, cfg.Server.IsProduction())
	})

	t.Run("owner is required", func(t *testing.T) {
		t.Setenv("REGISTRY_OWNER", "")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("kafka brokers are comma separated", func(t *testing.T) {
		t.Setenv("REGISTRY_OWNER", ownerHex)
		t.Setenv("AUDIT_KAFKA_BROKERS", "k1:9092,k2:9092")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Audit.KafkaBrokers)
	})
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   Server{Environment: "development"},
			Auth:     Auth{JWTSigningKey: devSigningKey, TokenTTL: time.Hour},
			Registry: Registry{Owner: ownerHex, BatchPolicy: "skip"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"malformed owner", func(c *Config) { c.Registry.Owner = "0x123" }, "REGISTRY_OWNER"},
		{"zero owner", func(c *Config) { c.Registry.Owner = "0x0000000000000000000000000000000000000000" }, "zero address"},
		{"unknown batch policy", func(c *Config) { c.Registry.BatchPolicy = "retry" }, "REGISTRY_BATCH_POLICY"},
		{"dev key in production", func(c *Config) { c.Server.Environment = "production" }, "JWT_SIGNING_KEY"},
		{"zero token ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, "ACCESS_TOKEN_TTL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
