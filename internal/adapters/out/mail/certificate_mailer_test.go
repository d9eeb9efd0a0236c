package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usecase "nftminter/internal/application/usecase"
)

type captureClient struct {
	sent []Message
}

func (c *captureClient) Send(_ context.Context, msg Message) error {
	c.sent = append(c.sent, msg)
	return nil
}

func TestCertificateMailer_SendCertificateNotice(t *testing.T) {
	c := &captureClient{}
	m := NewCertificateMailer(c, "noreply@example.com", "Certs", "https://explorer.solana.com/", "devnet")

	err := m.SendCertificateNotice(context.Background(), usecase.CertificateNotice{
		ToEmail:       "alice@example.com",
		ToName:        "Alice",
		NFTName:       "Cert-A <1>",
		MintAddress:   "MintAddr",
		WalletAddress: "WalletAddr",
	})
	require.NoError(t, err)
	require.Len(t, c.sent, 1)

	msg := c.sent[0]
	assert.Equal(t, "alice@example.com", msg.To)
	assert.Equal(t, "Certs", msg.FromName)
	assert.Contains(t, msg.Subject, "Cert-A <1>")
	assert.Contains(t, msg.Text, "https://explorer.solana.com/address/MintAddr?cluster=devnet")
	assert.Contains(t, msg.HTML, "Cert-A &lt;1&gt;")
	assert.NotContains(t, msg.HTML, "<img")
}

func TestCertificateMailer_RequiresRecipient(t *testing.T) {
	m := NewCertificateMailer(&captureClient{}, "noreply@example.com", "", "https://explorer.solana.com", "mainnet-beta")
	assert.Error(t, m.SendCertificateNotice(context.Background(), usecase.CertificateNotice{}))
	assert.Equal(t, "https://explorer.solana.com/address/M", m.explorerURL("M"))
}

func TestSendGridClient_Validates(t *testing.T) {
	assert.Error(t, NewSendGridClient("").Send(context.Background(), Message{From: "a", To: "b"}))
	assert.Error(t, NewSendGridClient("k").Send(context.Background(), Message{To: "b"}))
	assert.Error(t, NewSendGridClient("k").Send(context.Background(), Message{From: "a"}))
}
