package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "SOLANA_MODE", "NFT_PROGRAM_ID", "ACTIVITY_STORE", "ALLOWED_ORIGINS", "RATE_LIMIT_RPS", "SOLANA_CLUSTER"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ModeLocal, cfg.Mode)
	assert.Equal(t, "35GtXHKY4m9q9735friqSn8G73QYFZcBf5qzRp3bwGmV", cfg.ProgramID)
	assert.Equal(t, ActivityStoreMemory, cfg.ActivityStore)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, float64(5), cfg.RateLimitRPS)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "devnet", cfg.Cluster)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SOLANA_MODE", "RPC")
	t.Setenv("SOLANA_KEYPAIR_PATH", "/tmp/id.json")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("FIREBASE_PROJECT_ID", "proj")

	cfg := Load()
	assert.Equal(t, ModeRPC, cfg.Mode)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.True(t, cfg.AuthEnabled)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := &Config{Mode: ModeRPC, ActivityStore: ActivityStoreMemory}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = &Config{Mode: ModeLocal, ActivityStore: ActivityStorePostgres}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = &Config{Mode: "mainnet", ActivityStore: ActivityStoreMemory}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = &Config{Mode: ModeLocal, ActivityStore: ActivityStoreMemory, SendGridAPIKey: "k"}
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.MailEnabled())
}
