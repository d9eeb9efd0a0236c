package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcfg "nftminter/internal/infra/config"
	solanainfra "nftminter/internal/infra/solana"
)

func setLocalEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SOLANA_MODE", "local")
	t.Setenv("ACTIVITY_STORE", "memory")
	t.Setenv("GCS_BUCKET", "")
	t.Setenv("SENDGRID_API_KEY", "")
	t.Setenv("AUTH_ENABLED", "false")
	t.Setenv("SOLANA_MINT_KEY_SECRET", "")
	t.Setenv("SOLANA_KEYPAIR_PATH", "")
	t.Setenv("LEDGER_PATH", filepath.Join(t.TempDir(), "ledger.db"))
}

func TestNewContainer_LocalMintAndTransfer(t *testing.T) {
	setLocalEnv(t)
	c, err := NewContainer(context.Background())
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.Chain.(*solanainfra.LocalExecutor)
	require.True(t, ok)
	assert.Equal(t, appcfg.ModeLocal, c.Config.Mode)

	h := c.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/mint-collection",
		strings.NewReader(`{"name":"Col","symbol":"COL","uri":"https://example.com/c.json"}`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `nftminter_operations_total{kind="mint_collection",status="succeeded"} 1`)
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	setLocalEnv(t)
	t.Setenv("SOLANA_MODE", "bogus")
	_, err := NewContainer(context.Background())
	assert.ErrorIs(t, err, appcfg.ErrInvalidConfig)
}
