// internal/application/usecase/ports.go
package usecase

import (
	"context"
	"io"
	"time"

	"nftminter/internal/domain/nft"
)

// MintResult describes the accounts a successful mint produced.
type MintResult struct {
	MintAddress     string `json:"mintAddress"`
	OwnerAddress    string `json:"ownerAddress"`
	HoldingAddress  string `json:"tokenAccount"`
	MetadataAddress string `json:"metadataAddress"`
	EditionAddress  string `json:"editionAddress"`
	Signature       string `json:"signature"`
}

type TransferResult struct {
	MintAddress string `json:"mintAddress"`
	FromWallet  string `json:"fromWallet"`
	ToWallet    string `json:"toWallet"`
	FromHolding string `json:"fromTokenAccount"`
	ToHolding   string `json:"toTokenAccount"`
	Signature   string `json:"signature"`
}

// OwnedNFT is one non-empty holding of a wallet plus what its metadata says.
type OwnedNFT struct {
	MintAddress    string    `json:"mintAddress"`
	HoldingAddress string    `json:"tokenAccount"`
	Amount         uint64    `json:"amount"`
	Name           string    `json:"name,omitempty"`
	Symbol         string    `json:"symbol,omitempty"`
	URI            string    `json:"uri,omitempty"`
	Class          nft.Class `json:"class,omitempty"`
	Transferable   bool      `json:"transferable"`
}

// ChainExecutor submits program instructions signed by the service authority.
type ChainExecutor interface {
	AuthorityAddress() string
	Mint(ctx context.Context, class nft.Class, p nft.Payload) (MintResult, error)
	// Transfer moves one unit of mint from the authority to toWallet, creating
	// the destination holding when needed.
	Transfer(ctx context.Context, mintAddress, toWallet string) (TransferResult, error)
	ListOwned(ctx context.Context, wallet string) ([]OwnedNFT, error)
}

// ObjectStorage stores public objects (images, off-chain metadata JSON).
type ObjectStorage interface {
	Upload(ctx context.Context, objectName, contentType string, r io.Reader) (publicURL string, err error)
}

type CertificateNotice struct {
	ToEmail       string
	ToName        string
	NFTName       string
	MintAddress   string
	WalletAddress string
	ImageURL      string
	MetadataURI   string
}

// CertificateMailer tells a recipient that a certificate was issued to them.
type CertificateMailer interface {
	SendCertificateNotice(ctx context.Context, n CertificateNotice) error
}

// OperationRecorder observes finished operations (metrics).
type OperationRecorder interface {
	ObserveOperation(kind, status string, elapsed time.Duration)
	ObserveRejectedTransfer(reason string)
}
