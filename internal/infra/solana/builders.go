package solana

import (
	"fmt"
	"strings"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"

	usecase "nftminter/internal/application/usecase"
	"nftminter/internal/domain/nft"
	"nftminter/internal/program"
)

// transferPlan is everything needed to move one unit from the authority to a recipient.
type transferPlan struct {
	Mint        common.PublicKey
	Recipient   common.PublicKey
	FromHolding common.PublicKey
	ToHolding   common.PublicKey
	Metadata    common.PublicKey

	// Instructions: create the destination holding (idempotent), then transfer_nft.
	Instructions []types.Instruction
}

func planTransfer(programID, authority common.PublicKey, mintAddress, toWallet string) (transferPlan, error) {
	if strings.TrimSpace(mintAddress) == "" {
		return transferPlan{}, ErrMintEmpty
	}
	if strings.TrimSpace(toWallet) == "" {
		return transferPlan{}, ErrToWalletEmpty
	}
	mint, err := nft.ParseAddress(mintAddress)
	if err != nil {
		return transferPlan{}, fmt.Errorf("mint: %w", err)
	}
	recipient, err := nft.ParseAddress(toWallet)
	if err != nil {
		return transferPlan{}, fmt.Errorf("recipient: %w", err)
	}

	from, err := nft.HoldingAddress(authority, mint)
	if err != nil {
		return transferPlan{}, err
	}
	to, err := nft.HoldingAddress(recipient, mint)
	if err != nil {
		return transferPlan{}, err
	}
	meta, err := nft.MetadataAddress(mint)
	if err != nil {
		return transferPlan{}, err
	}
	create, err := program.NewCreateHoldingIdempotentInstruction(authority, recipient, mint)
	if err != nil {
		return transferPlan{}, err
	}
	return transferPlan{
		Mint:        mint,
		Recipient:   recipient,
		FromHolding: from,
		ToHolding:   to,
		Metadata:    meta,
		Instructions: []types.Instruction{
			create,
			program.NewTransferInstruction(programID, from, to, authority, meta),
		},
	}, nil
}

func (p transferPlan) result(authority common.PublicKey, sig string) usecase.TransferResult {
	return usecase.TransferResult{
		MintAddress: p.Mint.ToBase58(),
		FromWallet:  authority.ToBase58(),
		ToWallet:    p.Recipient.ToBase58(),
		FromHolding: p.FromHolding.ToBase58(),
		ToHolding:   p.ToHolding.ToBase58(),
		Signature:   sig,
	}
}

func mintResult(owner, mint common.PublicKey, sig string) (usecase.MintResult, error) {
	addrs, err := nft.DeriveAddresses(owner, mint)
	if err != nil {
		return usecase.MintResult{}, err
	}
	return usecase.MintResult{
		MintAddress:     mint.ToBase58(),
		OwnerAddress:    owner.ToBase58(),
		HoldingAddress:  addrs.Holding.ToBase58(),
		MetadataAddress: addrs.Metadata.ToBase58(),
		EditionAddress:  addrs.Edition.ToBase58(),
		Signature:       sig,
	}, nil
}

// ownedFrom fills an OwnedNFT from a holding and, when present, its metadata record.
func ownedFrom(holding, mint common.PublicKey, amount uint64, rec *nft.Metadata) usecase.OwnedNFT {
	out := usecase.OwnedNFT{
		MintAddress:    mint.ToBase58(),
		HoldingAddress: holding.ToBase58(),
		Amount:         amount,
		Transferable:   true,
	}
	if rec == nil {
		return out
	}
	p := rec.Payload()
	out.Name = strings.TrimRight(p.Name, "\x00")
	out.Symbol = strings.TrimRight(p.Symbol, "\x00")
	out.URI = strings.TrimRight(p.URI, "\x00")
	out.Class = rec.Class()
	out.Transferable = rec.Transferable()
	return out
}
