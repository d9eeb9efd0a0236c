// internal/infra/tokenledger/ledger.go
package tokenledger

import (
	"fmt"
	"math"

	"github.com/blocto/solana-go-sdk/common"

	"nftminter/internal/domain/ledger"
)

// Account sizes match the token program so rent charges line up with a cluster.
const (
	MintSpace    uint64 = 82
	HoldingSpace uint64 = 165
)

// Ledger is an in-process token program. State lives in accounts owned by
// common.TokenProgramID, so it is committed with the caller's transaction.
type Ledger struct{}

var _ ledger.TokenLedger = Ledger{}

func New() Ledger { return Ledger{} }

// InitializeMint creates the mint account. An existing address fails in Create.
func (Ledger) InitializeMint(acc ledger.Accounts, payer, mint common.PublicKey, decimals uint8, authority common.PublicKey, freeze *common.PublicKey) error {
	if err := acc.Create(payer, mint, common.TokenProgramID, MintSpace); err != nil {
		return fmt.Errorf("create mint: %w", err)
	}
	auth := authority
	st := ledger.MintState{
		MintAuthority:   &auth,
		Decimals:        decimals,
		FreezeAuthority: freeze,
	}
	return storeMint(acc, mint, st)
}

func (l Ledger) CreateHolding(acc ledger.Accounts, payer, owner, mint common.PublicKey) (common.PublicKey, error) {
	addr, _, err := common.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return common.PublicKey{}, fmt.Errorf("derive holding: %w", err)
	}
	if acc.Exists(addr) {
		st, err := l.Holding(acc, addr)
		if err != nil {
			return common.PublicKey{}, err
		}
		if st.Mint != mint {
			return common.PublicKey{}, fmt.Errorf("%w: holding %s", ErrMintMismatch, addr.ToBase58())
		}
		if st.Owner != owner {
			return common.PublicKey{}, fmt.Errorf("%w: holding %s", ErrOwnerMismatch, addr.ToBase58())
		}
		return addr, nil
	}
	if _, err := l.Mint(acc, mint); err != nil {
		return common.PublicKey{}, err
	}
	if err := acc.Create(payer, addr, common.TokenProgramID, HoldingSpace); err != nil {
		return common.PublicKey{}, fmt.Errorf("create holding: %w", err)
	}
	if err := storeHolding(acc, addr, ledger.HoldingState{Mint: mint, Owner: owner}); err != nil {
		return common.PublicKey{}, err
	}
	return addr, nil
}

func (l Ledger) MintTo(acc ledger.Accounts, mint, dest, authority common.PublicKey, amount uint64) error {
	ms, err := l.Mint(acc, mint)
	if err != nil {
		return err
	}
	if ms.MintAuthority == nil {
		return fmt.Errorf("%w: %s", ErrFixedSupply, mint.ToBase58())
	}
	if *ms.MintAuthority != authority {
		return fmt.Errorf("%w: mint authority", ErrAuthorityMismatch)
	}
	if !acc.IsSigner(authority) {
		return ErrMissingSigner
	}
	hs, err := l.Holding(acc, dest)
	if err != nil {
		return err
	}
	if hs.Mint != mint {
		return fmt.Errorf("%w: holding %s", ErrMintMismatch, dest.ToBase58())
	}
	if hs.Frozen {
		return ErrFrozen
	}
	if ms.Supply > math.MaxUint64-amount || hs.Amount > math.MaxUint64-amount {
		return ErrOverflow
	}
	ms.Supply += amount
	hs.Amount += amount
	if err := storeMint(acc, mint, ms); err != nil {
		return err
	}
	return storeHolding(acc, dest, hs)
}

func (l Ledger) Transfer(acc ledger.Accounts, from, to, authority common.PublicKey, amount uint64) error {
	src, err := l.Holding(acc, from)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	dst, err := l.Holding(acc, to)
	if err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	if src.Mint != dst.Mint {
		return ErrMintMismatch
	}
	if src.Owner != authority {
		return fmt.Errorf("%w: owner", ErrAuthorityMismatch)
	}
	if !acc.IsSigner(authority) {
		return ErrMissingSigner
	}
	if src.Frozen || dst.Frozen {
		return ErrFrozen
	}
	if src.Amount < amount {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientBalance, src.Amount, amount)
	}
	if from == to {
		return nil
	}
	if dst.Amount > math.MaxUint64-amount {
		return ErrOverflow
	}
	src.Amount -= amount
	dst.Amount += amount
	if err := storeHolding(acc, from, src); err != nil {
		return err
	}
	return storeHolding(acc, to, dst)
}

func (l Ledger) SetAuthority(acc ledger.Accounts, mint common.PublicKey, kind ledger.AuthorityType, current common.PublicKey, next *common.PublicKey) error {
	ms, err := l.Mint(acc, mint)
	if err != nil {
		return err
	}
	slot := &ms.MintAuthority
	if kind == ledger.AuthorityFreezeAccount {
		slot = &ms.FreezeAuthority
	}
	if *slot == nil {
		return fmt.Errorf("%w: authority already revoked", ErrFixedSupply)
	}
	if **slot != current {
		return ErrAuthorityMismatch
	}
	if !acc.IsSigner(current) {
		return ErrMissingSigner
	}
	if next != nil {
		n := *next
		next = &n
	}
	*slot = next
	return storeMint(acc, mint, ms)
}

func (Ledger) Mint(acc ledger.Accounts, key common.PublicKey) (ledger.MintState, error) {
	a, err := acc.Load(key)
	if err != nil {
		return ledger.MintState{}, err
	}
	if a.Owner != common.TokenProgramID {
		return ledger.MintState{}, fmt.Errorf("%w: %s", ErrInvalidOwner, key.ToBase58())
	}
	return DecodeMint(a.Data)
}

func (Ledger) Holding(acc ledger.Accounts, key common.PublicKey) (ledger.HoldingState, error) {
	a, err := acc.Load(key)
	if err != nil {
		return ledger.HoldingState{}, err
	}
	if a.Owner != common.TokenProgramID {
		return ledger.HoldingState{}, fmt.Errorf("%w: %s", ErrInvalidOwner, key.ToBase58())
	}
	return DecodeHolding(a.Data)
}

func storeMint(acc ledger.Accounts, key common.PublicKey, st ledger.MintState) error {
	data, err := EncodeMint(st)
	if err != nil {
		return fmt.Errorf("encode mint: %w", err)
	}
	return storeData(acc, key, data)
}

func storeHolding(acc ledger.Accounts, key common.PublicKey, st ledger.HoldingState) error {
	data, err := EncodeHolding(st)
	if err != nil {
		return fmt.Errorf("encode holding: %w", err)
	}
	return storeData(acc, key, data)
}

func storeData(acc ledger.Accounts, key common.PublicKey, data []byte) error {
	a, err := acc.Load(key)
	if err != nil {
		return err
	}
	a.Data = data
	return acc.Store(key, a)
}
