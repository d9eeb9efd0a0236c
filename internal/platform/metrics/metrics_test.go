package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestCollector_Operations(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveOperation("transfer", "failed", 20*time.Millisecond)
	c.ObserveOperation("transfer", "failed", 10*time.Millisecond)
	c.ObserveOperation("mint_certification", "succeeded", time.Second)
	c.ObserveRejectedTransfer("already_transferred")

	body := scrape(t, reg)
	assert.Contains(t, body, `nftminter_operations_total{kind="transfer",status="failed"} 2`)
	assert.Contains(t, body, `nftminter_operations_total{kind="mint_certification",status="succeeded"} 1`)
	assert.Contains(t, body, `nftminter_transfer_rejected_total{reason="already_transferred"} 1`)
	assert.Contains(t, body, `nftminter_operation_duration_seconds_count{kind="transfer"} 2`)
}

func TestCollector_HTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.ObserveHTTP("/transfer-nft", 409, time.Millisecond)

	assert.Contains(t, scrape(t, reg), `nftminter_http_requests_total{route="/transfer-nft",status_code="409"} 1`)
}

func TestNewCollector_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)
	assert.Panics(t, func() { NewCollector(reg) })
}
