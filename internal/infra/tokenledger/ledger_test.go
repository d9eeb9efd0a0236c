package tokenledger

import (
	"context"
	"errors"
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nftminter/internal/domain/ledger"
)

var errExists = errors.New("exists")

// memAccounts treats every account as writable and a fixed set as signers.
// Only the payer starts with an account; other signers are keys not yet created.
type memAccounts struct {
	accounts map[common.PublicKey]ledger.Account
	signers  map[common.PublicKey]bool
}

func newMemAccounts(payer common.PublicKey, signers ...common.PublicKey) *memAccounts {
	m := &memAccounts{accounts: map[common.PublicKey]ledger.Account{}, signers: map[common.PublicKey]bool{payer: true}}
	m.accounts[payer] = ledger.Account{Owner: common.SystemProgramID, Lamports: 1_000_000_000}
	for _, s := range signers {
		m.signers[s] = true
	}
	return m
}

func (m *memAccounts) Load(key common.PublicKey) (ledger.Account, error) {
	a, ok := m.accounts[key]
	if !ok {
		return ledger.Account{}, ledger.ErrAccountNotFound
	}
	return a.Clone(), nil
}

func (m *memAccounts) Exists(key common.PublicKey) bool {
	_, ok := m.accounts[key]
	return ok
}

func (m *memAccounts) Store(key common.PublicKey, acc ledger.Account) error {
	m.accounts[key] = acc.Clone()
	return nil
}

func (m *memAccounts) Create(payer, key, owner common.PublicKey, space uint64) error {
	if m.Exists(key) {
		return errExists
	}
	p := m.accounts[payer]
	p.Lamports -= space
	m.accounts[payer] = p
	m.accounts[key] = ledger.Account{Owner: owner, Lamports: space, Data: make([]byte, space)}
	return nil
}

func (m *memAccounts) IsSigner(key common.PublicKey) bool   { return m.signers[key] }
func (m *memAccounts) IsWritable(key common.PublicKey) bool { return true }

func setupMint(t *testing.T) (*memAccounts, Ledger, types.Account, common.PublicKey) {
	t.Helper()
	payer := types.NewAccount()
	mint := types.NewAccount()
	acc := newMemAccounts(payer.PublicKey, mint.PublicKey)
	l := New()
	freeze := payer.PublicKey
	require.NoError(t, l.InitializeMint(acc, payer.PublicKey, mint.PublicKey, 0, payer.PublicKey, &freeze))
	return acc, l, payer, mint.PublicKey
}

func TestNewMemAccounts_OnlyPayerExists(t *testing.T) {
	payer := types.NewAccount().PublicKey
	mint := types.NewAccount().PublicKey
	acc := newMemAccounts(payer, mint)
	assert.True(t, acc.Exists(payer))
	assert.False(t, acc.Exists(mint))
	assert.True(t, acc.IsSigner(mint))
}

func TestLedger_MintAndTransfer(t *testing.T) {
	acc, l, payer, mint := setupMint(t)
	bob := types.NewAccount().PublicKey

	from, err := l.CreateHolding(acc, payer.PublicKey, payer.PublicKey, mint)
	require.NoError(t, err)
	require.NoError(t, l.MintTo(acc, mint, from, payer.PublicKey, 1))

	to, err := l.CreateHolding(acc, payer.PublicKey, bob, mint)
	require.NoError(t, err)
	require.NoError(t, l.Transfer(acc, from, to, payer.PublicKey, 1))

	src, err := l.Holding(acc, from)
	require.NoError(t, err)
	dst, err := l.Holding(acc, to)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), src.Amount)
	assert.Equal(t, uint64(1), dst.Amount)
	assert.Equal(t, bob, dst.Owner)

	ms, err := l.Mint(acc, mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), ms.Supply)
}

func TestLedger_InitializeMintTwiceFails(t *testing.T) {
	acc, l, payer, mint := setupMint(t)
	err := l.InitializeMint(acc, payer.PublicKey, mint, 0, payer.PublicKey, nil)
	assert.ErrorIs(t, err, errExists)
}

func TestLedger_CreateHoldingIdempotent(t *testing.T) {
	acc, l, payer, mint := setupMint(t)
	first, err := l.CreateHolding(acc, payer.PublicKey, payer.PublicKey, mint)
	require.NoError(t, err)
	lamports := acc.accounts[payer.PublicKey].Lamports

	second, err := l.CreateHolding(acc, payer.PublicKey, payer.PublicKey, mint)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, lamports, acc.accounts[payer.PublicKey].Lamports)
}

func TestLedger_MintToAuthority(t *testing.T) {
	acc, l, payer, mint := setupMint(t)
	holding, err := l.CreateHolding(acc, payer.PublicKey, payer.PublicKey, mint)
	require.NoError(t, err)

	other := types.NewAccount().PublicKey
	assert.ErrorIs(t, l.MintTo(acc, mint, holding, other, 1), ErrAuthorityMismatch)

	delete(acc.signers, payer.PublicKey)
	assert.ErrorIs(t, l.MintTo(acc, mint, holding, payer.PublicKey, 1), ErrMissingSigner)
}

func TestLedger_RevokedAuthorityFixesSupply(t *testing.T) {
	acc, l, payer, mint := setupMint(t)
	holding, err := l.CreateHolding(acc, payer.PublicKey, payer.PublicKey, mint)
	require.NoError(t, err)
	require.NoError(t, l.MintTo(acc, mint, holding, payer.PublicKey, 1))

	require.NoError(t, l.SetAuthority(acc, mint, ledger.AuthorityMintTokens, payer.PublicKey, nil))
	assert.ErrorIs(t, l.MintTo(acc, mint, holding, payer.PublicKey, 1), ErrFixedSupply)
	assert.ErrorIs(t, l.SetAuthority(acc, mint, ledger.AuthorityMintTokens, payer.PublicKey, nil), ErrFixedSupply)
}

func TestLedger_TransferRejections(t *testing.T) {
	acc, l, payer, mint := setupMint(t)
	bob := types.NewAccount().PublicKey
	from, err := l.CreateHolding(acc, payer.PublicKey, payer.PublicKey, mint)
	require.NoError(t, err)
	to, err := l.CreateHolding(acc, payer.PublicKey, bob, mint)
	require.NoError(t, err)

	assert.ErrorIs(t, l.Transfer(acc, from, to, payer.PublicKey, 1), ErrInsufficientBalance)
	assert.ErrorIs(t, l.Transfer(acc, from, to, bob, 0), ErrAuthorityMismatch)

	otherMint := types.NewAccount()
	acc.signers[otherMint.PublicKey] = true
	require.NoError(t, l.InitializeMint(acc, payer.PublicKey, otherMint.PublicKey, 0, payer.PublicKey, nil))
	foreign, err := l.CreateHolding(acc, payer.PublicKey, bob, otherMint.PublicKey)
	require.NoError(t, err)
	assert.ErrorIs(t, l.Transfer(acc, from, foreign, payer.PublicKey, 0), ErrMintMismatch)
}

func TestLedger_HoldingRequiresTokenOwner(t *testing.T) {
	acc, l, payer, _ := setupMint(t)
	_, err := l.Holding(acc, payer.PublicKey)
	assert.ErrorIs(t, err, ErrInvalidOwner)
}

func TestAssociatedProgram(t *testing.T) {
	acc, l, payer, mint := setupMint(t)
	p := AssociatedProgram{Ledger: l}
	holding, _, err := common.FindAssociatedTokenAddress(payer.PublicKey, mint)
	require.NoError(t, err)

	ix := func(mode byte, addr common.PublicKey) types.Instruction {
		return types.Instruction{
			ProgramID: common.SPLAssociatedTokenAccountProgramID,
			Accounts: []types.AccountMeta{
				{PubKey: payer.PublicKey, IsSigner: true, IsWritable: true},
				{PubKey: addr, IsWritable: true},
				{PubKey: payer.PublicKey},
				{PubKey: mint},
			},
			Data: []byte{mode},
		}
	}
	ctx := context.Background()

	require.NoError(t, p.Execute(ctx, acc, ix(AssociatedCreate, holding)))
	assert.ErrorIs(t, p.Execute(ctx, acc, ix(AssociatedCreate, holding)), ErrAlreadyInitialized)
	assert.NoError(t, p.Execute(ctx, acc, ix(AssociatedCreateIdempotent, holding)))
	assert.ErrorIs(t, p.Execute(ctx, acc, ix(AssociatedCreateIdempotent, types.NewAccount().PublicKey)), ErrInvalidAddress)
	assert.ErrorIs(t, p.Execute(ctx, acc, ix(9, holding)), ErrInvalidInstruction)
}
