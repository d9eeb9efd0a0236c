// internal/infra/solana/keypair.go
package solana

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretspb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/blocto/solana-go-sdk/types"
)

// KeySource says where the service authority keypair comes from. The first
// non-empty source wins: Secret Manager, then file, then an ephemeral key.
type KeySource struct {
	// SecretName is a full version path:
	//	projects/<PROJECT_ID>/secrets/<SECRET_ID>/versions/latest
	SecretName     string
	Path           string
	AllowEphemeral bool
}

// LoadAuthority restores the payer/mint-authority keypair.
func LoadAuthority(ctx context.Context, src KeySource) (types.Account, error) {
	switch {
	case strings.TrimSpace(src.SecretName) != "":
		return loadFromSecretManager(ctx, strings.TrimSpace(src.SecretName))
	case strings.TrimSpace(src.Path) != "":
		return loadFromFile(strings.TrimSpace(src.Path))
	case src.AllowEphemeral:
		acc := types.NewAccount()
		log.Printf("[solana-keypair] generated ephemeral authority pubkey=%s", acc.PublicKey.ToBase58())
		return acc, nil
	default:
		return types.Account{}, ErrKeypairNotConfigured
	}
}

func loadFromSecretManager(ctx context.Context, secretName string) (types.Account, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return types.Account{}, fmt.Errorf("secretmanager.NewClient: %w", err)
	}
	defer client.Close()

	resp, err := client.AccessSecretVersion(ctx, &secretspb.AccessSecretVersionRequest{Name: secretName})
	if err != nil {
		return types.Account{}, fmt.Errorf("AccessSecretVersion: %w", err)
	}
	if resp == nil || resp.Payload == nil {
		return types.Account{}, fmt.Errorf("%w: empty secret payload", ErrInvalidKeypair)
	}

	acc, err := AccountFromKeypairJSON(resp.Payload.Data)
	if err != nil {
		return types.Account{}, err
	}
	log.Printf("[solana-keypair] loaded authority from Secret Manager: secret=%s pubkey=%s", secretName, acc.PublicKey.ToBase58())
	return acc, nil
}

func loadFromFile(path string) (types.Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Account{}, fmt.Errorf("read keypair file: %w", err)
	}
	acc, err := AccountFromKeypairJSON(data)
	if err != nil {
		return types.Account{}, err
	}
	log.Printf("[solana-keypair] loaded authority from file: pubkey=%s", acc.PublicKey.ToBase58())
	return acc, nil
}

// AccountFromKeypairJSON decodes the solana-keygen format, a JSON array of 64 integers.
func AccountFromKeypairJSON(data []byte) (types.Account, error) {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return types.Account{}, fmt.Errorf("%w: unmarshal keypair json: %v", ErrInvalidKeypair, err)
	}
	if len(ints) != ed25519.PrivateKeySize {
		return types.Account{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeypair, len(ints), ed25519.PrivateKeySize)
	}
	b := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return types.Account{}, fmt.Errorf("%w: byte out of range at %d: %d", ErrInvalidKeypair, i, v)
		}
		b[i] = byte(v)
	}
	acc, err := types.AccountFromBytes(b)
	if err != nil {
		return types.Account{}, fmt.Errorf("%w: %v", ErrInvalidKeypair, err)
	}
	return acc, nil
}

// KeypairJSON encodes acc in the solana-keygen file format.
func KeypairJSON(acc types.Account) ([]byte, error) {
	ints := make([]int, len(acc.PrivateKey))
	for i, b := range acc.PrivateKey {
		ints[i] = int(b)
	}
	return json.Marshal(ints)
}
