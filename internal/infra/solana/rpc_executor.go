// internal/infra/solana/rpc_executor.go
package solana

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"

	usecase "nftminter/internal/application/usecase"
	"nftminter/internal/domain/nft"
	"nftminter/internal/program"
)

// RPCExecutor signs with the service authority and submits to a cluster.
type RPCExecutor struct {
	RPC       *client.Client
	Reader    TokenAccountsReader
	Authority types.Account
	ProgramID common.PublicKey
}

var _ usecase.ChainExecutor = (*RPCExecutor)(nil)

func NewRPCExecutor(rpcURL string, authority types.Account, programID common.PublicKey) *RPCExecutor {
	return &RPCExecutor{
		RPC:       client.NewClient(rpcURL),
		Reader:    NewJSONRPCClient(rpcURL),
		Authority: authority,
		ProgramID: programID,
	}
}

func (e *RPCExecutor) AuthorityAddress() string {
	return e.Authority.PublicKey.ToBase58()
}

func (e *RPCExecutor) Mint(ctx context.Context, class nft.Class, p nft.Payload) (usecase.MintResult, error) {
	if e == nil || e.RPC == nil {
		return usecase.MintResult{}, ErrExecutorNotConfigured
	}
	mint := types.NewAccount()
	ix, err := program.NewMintInstruction(e.ProgramID, class, e.Authority.PublicKey, mint.PublicKey, p)
	if err != nil {
		return usecase.MintResult{}, err
	}

	log.Printf("[rpc_executor] mint start class=%s mint=%s payer=%s", class, maskShort(mint.PublicKey.ToBase58()), maskShort(e.AuthorityAddress()))
	sig, err := e.submit(ctx, []types.Instruction{ix}, e.Authority, mint)
	if err != nil {
		return usecase.MintResult{}, err
	}
	log.Printf("[rpc_executor] submitted tx=%s mint=%s", maskShort(sig), maskShort(mint.PublicKey.ToBase58()))
	return mintResult(e.Authority.PublicKey, mint.PublicKey, sig)
}

func (e *RPCExecutor) Transfer(ctx context.Context, mintAddress, toWallet string) (usecase.TransferResult, error) {
	if e == nil || e.RPC == nil {
		return usecase.TransferResult{}, ErrExecutorNotConfigured
	}
	plan, err := planTransfer(e.ProgramID, e.Authority.PublicKey, mintAddress, toWallet)
	if err != nil {
		return usecase.TransferResult{}, err
	}
	exists, err := e.accountExists(ctx, plan.FromHolding)
	if err != nil {
		return usecase.TransferResult{}, fmt.Errorf("rpc_executor: check source holding: %w", err)
	}
	if !exists {
		return usecase.TransferResult{}, ErrSourceHoldingAbsent
	}

	log.Printf("[rpc_executor] transfer start mint=%s to=%s", maskShort(mintAddress), maskShort(toWallet))
	sig, err := e.submit(ctx, plan.Instructions, e.Authority)
	if err != nil {
		return usecase.TransferResult{}, err
	}
	log.Printf("[rpc_executor] submitted tx=%s mint=%s toATA=%s", maskShort(sig), maskShort(mintAddress), maskShort(plan.ToHolding.ToBase58()))
	return plan.result(e.Authority.PublicKey, sig), nil
}

func (e *RPCExecutor) ListOwned(ctx context.Context, wallet string) ([]usecase.OwnedNFT, error) {
	if e == nil || e.Reader == nil {
		return nil, ErrExecutorNotConfigured
	}
	if _, err := nft.ParseAddress(wallet); err != nil {
		return nil, err
	}
	res, err := e.Reader.GetTokenAccountsByOwner(ctx, wallet, common.TokenProgramID.ToBase58())
	if err != nil {
		return nil, err
	}

	out := make([]usecase.OwnedNFT, 0, len(res.Value))
	for _, v := range res.Value {
		info := v.Account.Data.Parsed.Info
		amount, err := strconv.ParseUint(strings.TrimSpace(info.TokenAmount.Amount), 10, 64)
		if err != nil || amount == 0 || info.TokenAmount.Decimals != 0 {
			continue
		}
		mint, err := nft.ParseAddress(info.Mint)
		if err != nil {
			continue
		}
		holding, err := nft.ParseAddress(v.Pubkey)
		if err != nil {
			continue
		}
		rec, err := e.readMetadata(ctx, mint)
		if err != nil {
			log.Printf("[rpc_executor] metadata read failed mint=%s err=%v", maskShort(info.Mint), err)
		}
		out = append(out, ownedFrom(holding, mint, amount, rec))
	}
	return out, nil
}

func (e *RPCExecutor) readMetadata(ctx context.Context, mint common.PublicKey) (*nft.Metadata, error) {
	addr, err := nft.MetadataAddress(mint)
	if err != nil {
		return nil, err
	}
	info, err := e.RPC.GetAccountInfo(ctx, addr.ToBase58())
	if err != nil {
		return nil, err
	}
	if len(info.Data) == 0 {
		return nil, nil
	}
	rec, err := nft.DecodeMetadata(info.Data)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (e *RPCExecutor) submit(ctx context.Context, ixs []types.Instruction, signers ...types.Account) (string, error) {
	latest, err := e.RPC.GetLatestBlockhash(ctx)
	if err != nil {
		return "", fmt.Errorf("rpc_executor: GetLatestBlockhash: %w", err)
	}
	tx, err := types.NewTransaction(types.NewTransactionParam{
		Message: types.NewMessage(types.NewMessageParam{
			FeePayer:        e.Authority.PublicKey,
			RecentBlockhash: latest.Blockhash,
			Instructions:    ixs,
		}),
		Signers: signers,
	})
	if err != nil {
		return "", fmt.Errorf("rpc_executor: NewTransaction: %w", err)
	}
	sig, err := e.RPC.SendTransaction(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("rpc_executor: SendTransaction: %w", mapProgramError(err))
	}
	return sig, nil
}

func (e *RPCExecutor) accountExists(ctx context.Context, addr common.PublicKey) (bool, error) {
	info, err := e.RPC.GetAccountInfo(ctx, addr.ToBase58())
	if err == nil {
		return len(info.Data) > 0 || info.Lamports > 0, nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "not found") ||
		strings.Contains(msg, "could not find account") ||
		strings.Contains(msg, "account does not exist") {
		return false, nil
	}
	return false, err
}
