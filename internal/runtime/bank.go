package runtime

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"sync"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"

	"nftminter/internal/domain/ledger"
)

// Program executes one instruction against the accounts of its transaction.
type Program interface {
	Execute(ctx context.Context, accts ledger.Accounts, ix types.Instruction) error
}

// ProgramFunc adapts a function to Program.
type ProgramFunc func(ctx context.Context, accts ledger.Accounts, ix types.Instruction) error

func (f ProgramFunc) Execute(ctx context.Context, accts ledger.Accounts, ix types.Instruction) error {
	return f(ctx, accts, ix)
}

// Bank is an in-process ledger: it verifies signatures, serializes writers per
// account and applies each transaction atomically.
type Bank struct {
	store Store
	locks *lockTable

	mu       sync.RWMutex
	programs map[common.PublicKey]Program
}

func NewBank(store Store) *Bank {
	return &Bank{
		store:    store,
		locks:    newLockTable(),
		programs: make(map[common.PublicKey]Program),
	}
}

func (b *Bank) Register(id common.PublicKey, p Program) {
	b.mu.Lock()
	b.programs[id] = p
	b.mu.Unlock()
}

func (b *Bank) program(id common.PublicKey) (Program, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p, ok := b.programs[id]
	return p, ok
}

// Process runs every instruction of tx in order. Either all of their writes
// are committed or none are.
func (b *Bank) Process(ctx context.Context, tx *Transaction) error {
	if tx == nil || len(tx.Message.Instructions) == 0 {
		return ErrEmptyTransaction
	}
	raw, err := tx.Message.Serialize()
	if err != nil {
		return err
	}
	signers := tx.Message.signerKeys()
	for _, k := range signers {
		sig, ok := tx.Signatures[k]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingSignature, k.ToBase58())
		}
		if !ed25519.Verify(ed25519.PublicKey(k.Bytes()), raw, sig) {
			return fmt.Errorf("%w: %s", ErrInvalidSignature, k.ToBase58())
		}
	}

	writable := tx.Message.writableKeys()
	b.locks.acquire(writable)
	defer b.locks.release(writable)

	if err := ctx.Err(); err != nil {
		return err
	}
	seen, err := b.store.HasSignature(tx.ID())
	if err != nil {
		return err
	}
	if seen {
		return ErrAlreadyProcessed
	}

	overlay := newTx(b.store, signers, writable)
	for i, ix := range tx.Message.Instructions {
		p, ok := b.program(ix.ProgramID)
		if !ok {
			return fmt.Errorf("instruction %d: %w: %s", i, ErrUnknownProgram, ix.ProgramID.ToBase58())
		}
		if err := p.Execute(ctx, overlay, ix); err != nil {
			return fmt.Errorf("instruction %d: %w", i, err)
		}
	}
	return b.store.Commit(Batch{Accounts: overlay.writes, Signature: tx.ID()})
}

// Account returns the committed state at key.
func (b *Bank) Account(key common.PublicKey) (ledger.Account, error) {
	acc, ok, err := b.store.Get(key)
	if err != nil {
		return ledger.Account{}, err
	}
	if !ok {
		return ledger.Account{}, fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, key.ToBase58())
	}
	return acc, nil
}

// Airdrop credits lamports to key, creating a system-owned account if needed.
func (b *Bank) Airdrop(ctx context.Context, key common.PublicKey, lamports uint64) error {
	keys := []common.PublicKey{key}
	b.locks.acquire(keys)
	defer b.locks.release(keys)

	if err := ctx.Err(); err != nil {
		return err
	}
	acc, ok, err := b.store.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		acc = ledger.Account{Owner: common.SystemProgramID}
	}
	acc.Lamports += lamports
	return b.store.Commit(Batch{Accounts: map[common.PublicKey]ledger.Account{key: acc}})
}

// Range visits committed accounts owned by owner.
func (b *Bank) Range(owner common.PublicKey, fn func(common.PublicKey, ledger.Account) bool) error {
	return b.store.Range(owner, fn)
}

func (b *Bank) Close() error { return b.store.Close() }
