package tokenledger

import (
	"context"
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"

	"nftminter/internal/domain/ledger"
)

const (
	AssociatedCreate           byte = 0
	AssociatedCreateIdempotent byte = 1
)

// AssociatedProgram is the associated-token-account program, backed by Ledger.
// Accounts: payer, holding, owner, mint, system program, token program.
type AssociatedProgram struct {
	Ledger Ledger
}

func (p AssociatedProgram) Execute(_ context.Context, acc ledger.Accounts, ix types.Instruction) error {
	if len(ix.Accounts) < 4 {
		return fmt.Errorf("%w: want at least 4 accounts, got %d", ErrInvalidInstruction, len(ix.Accounts))
	}
	mode := AssociatedCreate
	if len(ix.Data) > 0 {
		mode = ix.Data[0]
	}
	payer := ix.Accounts[0].PubKey
	holding := ix.Accounts[1].PubKey
	owner := ix.Accounts[2].PubKey
	mint := ix.Accounts[3].PubKey

	want, _, err := common.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return err
	}
	if want != holding {
		return fmt.Errorf("%w: got %s want %s", ErrInvalidAddress, holding.ToBase58(), want.ToBase58())
	}

	switch mode {
	case AssociatedCreate:
		if acc.Exists(holding) {
			return fmt.Errorf("%w: %s", ErrAlreadyInitialized, holding.ToBase58())
		}
	case AssociatedCreateIdempotent:
	default:
		return fmt.Errorf("%w: mode %d", ErrInvalidInstruction, mode)
	}
	_, err = p.Ledger.CreateHolding(acc, payer, owner, mint)
	return err
}
