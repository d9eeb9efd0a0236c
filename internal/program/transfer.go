package program

import (
	"fmt"

	"github.com/blocto/solana-go-sdk/types"

	"nftminter/internal/domain/ledger"
	"nftminter/internal/domain/nft"
)

// TransferNFT moves one unit from the source holding to the destination.
// A certification may move once: its single use is consumed on the way out.
func (p *Program) TransferNFT(acc ledger.Accounts, metas []types.AccountMeta) error {
	logf("starting nft transfer")
	if err := p.transfer(acc, metas); err != nil {
		return fmt.Errorf("%s: %w", TransferNFT, err)
	}
	logf("nft transferred")
	return nil
}

func (p *Program) transfer(acc ledger.Accounts, metas []types.AccountMeta) error {
	a, err := parseTransfer(acc, metas)
	if err != nil {
		return err
	}
	// A move onto the same holding would burn the single use without moving anything.
	if a.From == a.To {
		return ErrSelfTransfer
	}

	src, err := p.Tokens.Holding(acc, a.From)
	if err != nil {
		return fmt.Errorf("load source: %w", err)
	}
	want, err := nft.MetadataAddress(src.Mint)
	if err != nil {
		return err
	}
	if want != a.Metadata {
		return ErrMetadataMismatch
	}

	rec, err := p.Metadata.Read(acc, a.Metadata)
	if err != nil {
		return fmt.Errorf("read metadata: %w", err)
	}
	if !rec.Transferable() {
		return ErrAlreadyTransferred
	}

	// Only Single uses are consumed here; this program never mints Burn or Multiple records.
	if rec.Uses != nil && rec.Uses.UseMethod == nft.UseMethodSingle {
		err := p.Metadata.Utilize(acc, ledger.UtilizeInput{
			Metadata: a.Metadata,
			Holding:  a.From,
			Mint:     src.Mint,
			Owner:    a.Authority,
			Count:    1,
		})
		if err != nil {
			return fmt.Errorf("consume use: %w", err)
		}
	}

	if err := p.Tokens.Transfer(acc, a.From, a.To, a.Authority, 1); err != nil {
		return fmt.Errorf("transfer: %w", err)
	}
	return nil
}
