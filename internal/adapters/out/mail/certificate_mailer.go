// internal/adapters/out/mail/certificate_mailer.go
package mail

import (
	"context"
	"fmt"
	"html"
	"strings"

	usecase "nftminter/internal/application/usecase"
)

// CertificateMailer tells a recipient that a certification NFT was sent to their wallet.
type CertificateMailer struct {
	client     EmailClient
	from       string
	fromName   string
	explorer   string // base URL, e.g. https://explorer.solana.com
	clusterArg string // e.g. "?cluster=devnet"
}

var _ usecase.CertificateMailer = (*CertificateMailer)(nil)

func NewCertificateMailer(client EmailClient, from, fromName, explorerBaseURL, cluster string) *CertificateMailer {
	arg := ""
	if c := strings.TrimSpace(cluster); c != "" && c != "mainnet-beta" {
		arg = "?cluster=" + c
	}
	return &CertificateMailer{
		client:     client,
		from:       from,
		fromName:   fromName,
		explorer:   strings.TrimRight(explorerBaseURL, "/"),
		clusterArg: arg,
	}
}

func (m *CertificateMailer) explorerURL(mint string) string {
	return fmt.Sprintf("%s/address/%s%s", m.explorer, strings.TrimSpace(mint), m.clusterArg)
}

func (m *CertificateMailer) SendCertificateNotice(ctx context.Context, n usecase.CertificateNotice) error {
	to := strings.TrimSpace(n.ToEmail)
	if to == "" {
		return fmt.Errorf("certificate mailer: recipient email is empty")
	}
	name := strings.TrimSpace(n.ToName)
	greeting := "Hello,"
	if name != "" {
		greeting = fmt.Sprintf("Hello %s,", name)
	}
	link := m.explorerURL(n.MintAddress)

	subject := fmt.Sprintf("Your certificate \"%s\" has been issued", n.NFTName)
	text := fmt.Sprintf(`%s

The certificate "%s" has been issued to your wallet.

Wallet: %s
Token:  %s
View:   %s

This certificate can be transferred only once and is now held by you.
`, greeting, n.NFTName, n.WalletAddress, n.MintAddress, link)

	var b strings.Builder
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(greeting))
	fmt.Fprintf(&b, "<p>The certificate <strong>%s</strong> has been issued to your wallet.</p>", html.EscapeString(n.NFTName))
	if img := strings.TrimSpace(n.ImageURL); img != "" {
		fmt.Fprintf(&b, `<p><img src="%s" alt="%s" width="320"></p>`, html.EscapeString(img), html.EscapeString(n.NFTName))
	}
	fmt.Fprintf(&b, "<p>Wallet: <code>%s</code><br>Token: <code>%s</code></p>", html.EscapeString(n.WalletAddress), html.EscapeString(n.MintAddress))
	fmt.Fprintf(&b, `<p><a href="%s">View on explorer</a></p>`, html.EscapeString(link))

	return m.client.Send(ctx, Message{
		FromName: m.fromName,
		From:     m.from,
		ToName:   name,
		To:       to,
		Subject:  subject,
		Text:     text,
		HTML:     b.String(),
	})
}
