package nft

import (
	"fmt"
	"strings"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/metaplex/token_metadata"
	"github.com/mr-tron/base58"
)

// ParseAddress decodes a base58 account address and requires exactly 32 bytes.
func ParseAddress(s string) (common.PublicKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return common.PublicKey{}, ErrInvalidAddress
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return common.PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(raw) != common.PublicKeyLength {
		return common.PublicKey{}, fmt.Errorf("%w: length=%d", ErrInvalidAddress, len(raw))
	}
	return common.PublicKeyFromBytes(raw), nil
}

// MetadataAddress is ["metadata", metadataProgramID, mint].
func MetadataAddress(mint common.PublicKey) (common.PublicKey, error) {
	pk, err := token_metadata.GetTokenMetaPubkey(mint)
	if err != nil {
		return common.PublicKey{}, fmt.Errorf("derive metadata address: %w", err)
	}
	return pk, nil
}

// EditionAddress is ["metadata", metadataProgramID, mint, "edition"].
func EditionAddress(mint common.PublicKey) (common.PublicKey, error) {
	pk, err := token_metadata.GetMasterEdition(mint)
	if err != nil {
		return common.PublicKey{}, fmt.Errorf("derive edition address: %w", err)
	}
	return pk, nil
}

// HoldingAddress is the associated token account of owner for mint.
func HoldingAddress(owner, mint common.PublicKey) (common.PublicKey, error) {
	pk, _, err := common.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return common.PublicKey{}, fmt.Errorf("derive holding address: %w", err)
	}
	return pk, nil
}

// Addresses groups every account derived from a (payer, mint) pair.
type Addresses struct {
	Mint     common.PublicKey
	Metadata common.PublicKey
	Edition  common.PublicKey
	Holding  common.PublicKey
}

func DeriveAddresses(owner, mint common.PublicKey) (Addresses, error) {
	meta, err := MetadataAddress(mint)
	if err != nil {
		return Addresses{}, err
	}
	edition, err := EditionAddress(mint)
	if err != nil {
		return Addresses{}, err
	}
	holding, err := HoldingAddress(owner, mint)
	if err != nil {
		return Addresses{}, err
	}
	return Addresses{Mint: mint, Metadata: meta, Edition: edition, Holding: holding}, nil
}
