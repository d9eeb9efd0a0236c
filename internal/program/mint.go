package program

import (
	"fmt"

	"github.com/blocto/solana-go-sdk/types"

	"nftminter/internal/domain/ledger"
	"nftminter/internal/domain/nft"
)

// MintCertificationNFT mints one unit carrying a single-use counter.
func (p *Program) MintCertificationNFT(acc ledger.Accounts, metas []types.AccountMeta, metadata nft.Payload) error {
	logf("minting certification nft")
	if err := p.mint(acc, metas, nft.ClassCertification, metadata); err != nil {
		return fmt.Errorf("%s: %w", MintCertificationNFT, err)
	}
	logf("certification nft minted")
	return nil
}

// MintCollectionNFT mints one unit with no uses counter.
func (p *Program) MintCollectionNFT(acc ledger.Accounts, metas []types.AccountMeta, name, symbol, uri string) error {
	logf("minting collection nft")
	if err := p.mint(acc, metas, nft.ClassCollection, nft.Payload{Name: name, Symbol: symbol, URI: uri}); err != nil {
		return fmt.Errorf("%s: %w", MintCollectionNFT, err)
	}
	logf("collection nft minted")
	return nil
}

func (p *Program) mint(acc ledger.Accounts, metas []types.AccountMeta, class nft.Class, payload nft.Payload) error {
	a, err := parseCreateToken(acc, metas)
	if err != nil {
		return err
	}

	// init: decimals 0, mint and freeze authority = payer.
	payer := a.Payer
	if err := p.Tokens.InitializeMint(acc, a.Payer, a.Mint, 0, a.Payer, &payer); err != nil {
		return fmt.Errorf("initialize mint: %w", err)
	}
	// init_if_needed
	if _, err := p.Tokens.CreateHolding(acc, a.Payer, a.Payer, a.Mint); err != nil {
		return fmt.Errorf("create holding: %w", err)
	}

	if err := p.Tokens.MintTo(acc, a.Mint, a.Holding, a.Payer, 1); err != nil {
		return fmt.Errorf("mint to: %w", err)
	}

	logf("creating metadata account mint=%s", maskShort(a.Mint))
	err = p.Metadata.CreateMetadata(acc, ledger.CreateMetadataInput{
		Metadata:        a.Metadata,
		Mint:            a.Mint,
		MintAuthority:   a.Payer,
		Payer:           a.Payer,
		UpdateAuthority: a.Payer,
		Data:            nft.NewDataV2(class, payload),
		IsMutable:       true,
	})
	if err != nil {
		return fmt.Errorf("create metadata: %w", err)
	}

	logf("creating master edition account mint=%s", maskShort(a.Mint))
	err = p.Metadata.CreateMasterEdition(acc, ledger.CreateMasterEditionInput{
		Edition:         a.Edition,
		Mint:            a.Mint,
		UpdateAuthority: a.Payer,
		MintAuthority:   a.Payer,
		Payer:           a.Payer,
		Metadata:        a.Metadata,
		MaxSupply:       nil,
	})
	if err != nil {
		return fmt.Errorf("create master edition: %w", err)
	}
	return nil
}
