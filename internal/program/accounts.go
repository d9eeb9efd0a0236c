package program

import (
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"

	"nftminter/internal/domain/ledger"
	"nftminter/internal/domain/nft"
)

// createTokenAccounts is the account list of both mint entry points, in order.
type createTokenAccounts struct {
	Payer                  common.PublicKey
	Metadata               common.PublicKey
	Edition                common.PublicKey
	Mint                   common.PublicKey
	Holding                common.PublicKey
	TokenProgram           common.PublicKey
	TokenMetadataProgram   common.PublicKey
	AssociatedTokenProgram common.PublicKey
	SystemProgram          common.PublicKey
	Rent                   common.PublicKey
}

func parseCreateToken(acc ledger.Accounts, metas []types.AccountMeta) (createTokenAccounts, error) {
	if len(metas) < 10 {
		return createTokenAccounts{}, fmt.Errorf("%w: want 10, got %d", ErrAccountNotEnoughKeys, len(metas))
	}
	a := createTokenAccounts{
		Payer:                  metas[0].PubKey,
		Metadata:               metas[1].PubKey,
		Edition:                metas[2].PubKey,
		Mint:                   metas[3].PubKey,
		Holding:                metas[4].PubKey,
		TokenProgram:           metas[5].PubKey,
		TokenMetadataProgram:   metas[6].PubKey,
		AssociatedTokenProgram: metas[7].PubKey,
		SystemProgram:          metas[8].PubKey,
		Rent:                   metas[9].PubKey,
	}

	if err := requireSigner(acc, "payer", a.Payer); err != nil {
		return a, err
	}
	// The mint is a fresh keypair account, so it signs its own creation.
	if err := requireSigner(acc, "mint_account", a.Mint); err != nil {
		return a, err
	}
	for _, w := range []struct {
		name string
		key  common.PublicKey
	}{
		{"payer", a.Payer},
		{"metadata_account", a.Metadata},
		{"edition_account", a.Edition},
		{"mint_account", a.Mint},
		{"associated_token_account", a.Holding},
	} {
		if err := requireWritable(acc, w.name, w.key); err != nil {
			return a, err
		}
	}
	if err := requireProgram("token_program", a.TokenProgram, common.TokenProgramID); err != nil {
		return a, err
	}
	if err := requireProgram("token_metadata_program", a.TokenMetadataProgram, common.MetaplexTokenMetaProgramID); err != nil {
		return a, err
	}
	if err := requireProgram("associated_token_program", a.AssociatedTokenProgram, common.SPLAssociatedTokenAccountProgramID); err != nil {
		return a, err
	}
	if err := requireProgram("system_program", a.SystemProgram, common.SystemProgramID); err != nil {
		return a, err
	}
	if a.Rent != common.SysVarRentPubkey {
		return a, fmt.Errorf("%w: rent", ErrConstraintAddress)
	}

	derived, err := nft.DeriveAddresses(a.Payer, a.Mint)
	if err != nil {
		return a, err
	}
	if derived.Metadata != a.Metadata {
		return a, fmt.Errorf("%w: metadata_account", ErrConstraintSeeds)
	}
	if derived.Edition != a.Edition {
		return a, fmt.Errorf("%w: edition_account", ErrConstraintSeeds)
	}
	if derived.Holding != a.Holding {
		return a, fmt.Errorf("%w: associated_token_account", ErrConstraintAssociated)
	}
	return a, nil
}

// transferAccounts is the account list of transfer_nft, in order.
type transferAccounts struct {
	From         common.PublicKey
	To           common.PublicKey
	Authority    common.PublicKey
	Metadata     common.PublicKey
	TokenProgram common.PublicKey
}

func parseTransfer(acc ledger.Accounts, metas []types.AccountMeta) (transferAccounts, error) {
	if len(metas) < 5 {
		return transferAccounts{}, fmt.Errorf("%w: want 5, got %d", ErrAccountNotEnoughKeys, len(metas))
	}
	a := transferAccounts{
		From:         metas[0].PubKey,
		To:           metas[1].PubKey,
		Authority:    metas[2].PubKey,
		Metadata:     metas[3].PubKey,
		TokenProgram: metas[4].PubKey,
	}
	if err := requireSigner(acc, "authority", a.Authority); err != nil {
		return a, err
	}
	for _, w := range []struct {
		name string
		key  common.PublicKey
	}{
		{"from", a.From},
		{"to", a.To},
		{"authority", a.Authority},
		{"metadata", a.Metadata},
	} {
		if err := requireWritable(acc, w.name, w.key); err != nil {
			return a, err
		}
	}
	if err := requireProgram("token_program", a.TokenProgram, common.TokenProgramID); err != nil {
		return a, err
	}
	return a, nil
}

func requireSigner(acc ledger.Accounts, name string, key common.PublicKey) error {
	if !acc.IsSigner(key) {
		return fmt.Errorf("%w: %s", ErrAccountNotSigner, name)
	}
	return nil
}

func requireWritable(acc ledger.Accounts, name string, key common.PublicKey) error {
	if !acc.IsWritable(key) {
		return fmt.Errorf("%w: %s", ErrConstraintMut, name)
	}
	return nil
}

func requireProgram(name string, got, want common.PublicKey) error {
	if got != want {
		return fmt.Errorf("%w: %s", ErrInvalidProgramID, name)
	}
	return nil
}
