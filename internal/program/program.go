// internal/program/program.go
package program

import (
	"context"
	"log"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"

	"nftminter/internal/domain/ledger"
	"nftminter/internal/runtime"
)

// Program is the NFT minter. It holds no state of its own; everything it
// reads or writes goes through the transaction's accounts and the two
// collaborator programs.
type Program struct {
	Tokens   ledger.TokenLedger
	Metadata ledger.MetadataStore
}

var _ runtime.Program = (*Program)(nil)

func New(tokens ledger.TokenLedger, metadata ledger.MetadataStore) *Program {
	return &Program{Tokens: tokens, Metadata: metadata}
}

// Execute dispatches on the 8-byte instruction discriminator.
func (p *Program) Execute(ctx context.Context, acc ledger.Accounts, ix types.Instruction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch {
	case matches(ix.Data, discMintCertification):
		payload, err := decodeMintArgs(ix.Data[8:])
		if err != nil {
			return err
		}
		return p.MintCertificationNFT(acc, ix.Accounts, payload)
	case matches(ix.Data, discMintCollection):
		payload, err := decodeMintArgs(ix.Data[8:])
		if err != nil {
			return err
		}
		return p.MintCollectionNFT(acc, ix.Accounts, payload.Name, payload.Symbol, payload.URI)
	case matches(ix.Data, discTransfer):
		return p.TransferNFT(acc, ix.Accounts)
	default:
		return ErrInstructionFallbackNotFound
	}
}

func maskShort(pk common.PublicKey) string {
	s := pk.ToBase58()
	if len(s) <= 10 {
		return s
	}
	return s[:4] + "..." + s[len(s)-4:]
}

func logf(format string, args ...any) {
	log.Printf("[nft_program] "+format, args...)
}

