// internal/infra/solana/local_executor.go
package solana

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"

	usecase "nftminter/internal/application/usecase"
	"nftminter/internal/domain/ledger"
	"nftminter/internal/domain/nft"
	"nftminter/internal/infra/metadatastore"
	"nftminter/internal/infra/tokenledger"
	"nftminter/internal/program"
	"nftminter/internal/runtime"
)

// LocalExecutor runs the program inside an in-process bank.
type LocalExecutor struct {
	Bank      *runtime.Bank
	Authority types.Account
	ProgramID common.PublicKey
}

var _ usecase.ChainExecutor = (*LocalExecutor)(nil)

// NewLocalBank wires a bank with the minter program and the associated-account program.
func NewLocalBank(store runtime.Store, programID common.PublicKey) *runtime.Bank {
	bank := runtime.NewBank(store)
	tokens := tokenledger.New()
	bank.Register(programID, program.New(tokens, metadatastore.New(tokens)))
	bank.Register(common.SPLAssociatedTokenAccountProgramID, tokenledger.AssociatedProgram{Ledger: tokens})
	return bank
}

func NewLocalExecutor(bank *runtime.Bank, authority types.Account, programID common.PublicKey) *LocalExecutor {
	return &LocalExecutor{Bank: bank, Authority: authority, ProgramID: programID}
}

func (e *LocalExecutor) AuthorityAddress() string {
	return e.Authority.PublicKey.ToBase58()
}

func (e *LocalExecutor) Mint(ctx context.Context, class nft.Class, p nft.Payload) (usecase.MintResult, error) {
	if e == nil || e.Bank == nil {
		return usecase.MintResult{}, ErrExecutorNotConfigured
	}
	mint := types.NewAccount()
	ix, err := program.NewMintInstruction(e.ProgramID, class, e.Authority.PublicKey, mint.PublicKey, p)
	if err != nil {
		return usecase.MintResult{}, err
	}

	log.Printf("[local_executor] mint start class=%s mint=%s payer=%s", class, maskShort(mint.PublicKey.ToBase58()), maskShort(e.AuthorityAddress()))
	sig, err := e.submit(ctx, []types.Instruction{ix}, e.Authority, mint)
	if err != nil {
		return usecase.MintResult{}, err
	}
	log.Printf("[local_executor] mint done tx=%s mint=%s", maskShort(sig), maskShort(mint.PublicKey.ToBase58()))
	return mintResult(e.Authority.PublicKey, mint.PublicKey, sig)
}

func (e *LocalExecutor) Transfer(ctx context.Context, mintAddress, toWallet string) (usecase.TransferResult, error) {
	if e == nil || e.Bank == nil {
		return usecase.TransferResult{}, ErrExecutorNotConfigured
	}
	plan, err := planTransfer(e.ProgramID, e.Authority.PublicKey, mintAddress, toWallet)
	if err != nil {
		return usecase.TransferResult{}, err
	}
	if _, err := e.Bank.Account(plan.FromHolding); err != nil {
		return usecase.TransferResult{}, fmt.Errorf("%w: %v", ErrSourceHoldingAbsent, err)
	}

	log.Printf("[local_executor] transfer start mint=%s to=%s", maskShort(mintAddress), maskShort(toWallet))
	sig, err := e.submit(ctx, plan.Instructions, e.Authority)
	if err != nil {
		return usecase.TransferResult{}, err
	}
	log.Printf("[local_executor] transfer done tx=%s mint=%s", maskShort(sig), maskShort(mintAddress))
	return plan.result(e.Authority.PublicKey, sig), nil
}

func (e *LocalExecutor) ListOwned(ctx context.Context, wallet string) ([]usecase.OwnedNFT, error) {
	if e == nil || e.Bank == nil {
		return nil, ErrExecutorNotConfigured
	}
	owner, err := nft.ParseAddress(wallet)
	if err != nil {
		return nil, err
	}

	type found struct {
		key common.PublicKey
		st  ledger.HoldingState
	}
	var holdings []found
	err = e.Bank.Range(common.TokenProgramID, func(key common.PublicKey, acc ledger.Account) bool {
		st, err := tokenledger.DecodeHolding(acc.Data)
		if err != nil || st.Owner != owner || st.Amount == 0 {
			return true
		}
		holdings = append(holdings, found{key: key, st: st})
		return ctx.Err() == nil
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Slice(holdings, func(i, j int) bool {
		return bytes.Compare(holdings[i].st.Mint[:], holdings[j].st.Mint[:]) < 0
	})

	out := make([]usecase.OwnedNFT, 0, len(holdings))
	for _, h := range holdings {
		var rec *nft.Metadata
		if addr, err := nft.MetadataAddress(h.st.Mint); err == nil {
			if acc, err := e.Bank.Account(addr); err == nil {
				if m, err := nft.DecodeMetadata(acc.Data); err == nil {
					rec = &m
				}
			}
		}
		out = append(out, ownedFrom(h.key, h.st.Mint, h.st.Amount, rec))
	}
	return out, nil
}

// Airdrop funds an account in the local bank.
func (e *LocalExecutor) Airdrop(ctx context.Context, to common.PublicKey, lamports uint64) error {
	return e.Bank.Airdrop(ctx, to, lamports)
}

func (e *LocalExecutor) submit(ctx context.Context, ixs []types.Instruction, signers ...types.Account) (string, error) {
	tx, err := runtime.NewTransaction(ixs, signers...)
	if err != nil {
		return "", err
	}
	if err := e.Bank.Process(ctx, tx); err != nil {
		return "", err
	}
	return base58.Encode(tx.ID()), nil
}
