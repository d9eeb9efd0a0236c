package runtime

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nftminter/internal/domain/ledger"
)

var counterProgramID = types.NewAccount().PublicKey

var errBoom = errors.New("boom")

// counterProgram increments the first byte of account 0; data {0xff} fails after writing.
func counterProgram() Program {
	return ProgramFunc(func(_ context.Context, acc ledger.Accounts, ix types.Instruction) error {
		key := ix.Accounts[0].PubKey
		a, err := acc.Load(key)
		if errors.Is(err, ledger.ErrAccountNotFound) {
			if err := acc.Create(ix.Accounts[1].PubKey, key, counterProgramID, 1); err != nil {
				return err
			}
			a, err = acc.Load(key)
		}
		if err != nil {
			return err
		}
		a.Data[0]++
		if err := acc.Store(key, a); err != nil {
			return err
		}
		if len(ix.Data) > 0 && ix.Data[0] == 0xff {
			return errBoom
		}
		return nil
	})
}

func counterIx(counter, payer common.PublicKey, fail bool) types.Instruction {
	ix := types.Instruction{
		ProgramID: counterProgramID,
		Accounts: []types.AccountMeta{
			{PubKey: counter, IsWritable: true},
			{PubKey: payer, IsSigner: true, IsWritable: true},
		},
	}
	if fail {
		ix.Data = []byte{0xff}
	}
	return ix
}

func newTestBank(t *testing.T, store Store) (*Bank, types.Account) {
	t.Helper()
	b := NewBank(store)
	b.Register(counterProgramID, counterProgram())
	payer := types.NewAccount()
	require.NoError(t, b.Airdrop(context.Background(), payer.PublicKey, 10_000_000))
	return b, payer
}

func tempBoltStore(t *testing.T) *BoltStore {
	t.Helper()
	s, err := OpenBoltStore(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"bolt":   tempBoltStore(t),
	}
}

func TestBank_ProcessCommits(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			b, payer := newTestBank(t, store)
			counter := types.NewAccount().PublicKey

			tx, err := NewTransaction([]types.Instruction{counterIx(counter, payer.PublicKey, false)}, payer)
			require.NoError(t, err)
			require.NoError(t, b.Process(context.Background(), tx))

			acc, err := b.Account(counter)
			require.NoError(t, err)
			assert.Equal(t, []byte{1}, acc.Data)
			assert.Equal(t, counterProgramID, acc.Owner)
			assert.Equal(t, RentExemptMinimum(1), acc.Lamports)

			p, err := b.Account(payer.PublicKey)
			require.NoError(t, err)
			assert.Equal(t, uint64(10_000_000)-RentExemptMinimum(1), p.Lamports)
		})
	}
}

func TestBank_FailedInstructionDiscardsAll(t *testing.T) {
	b, payer := newTestBank(t, NewMemoryStore())
	counter := types.NewAccount().PublicKey

	tx, err := NewTransaction([]types.Instruction{
		counterIx(counter, payer.PublicKey, false),
		counterIx(counter, payer.PublicKey, true),
	}, payer)
	require.NoError(t, err)
	err = b.Process(context.Background(), tx)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "instruction 1")

	_, err = b.Account(counter)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
	p, err := b.Account(payer.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000_000), p.Lamports)
}

func TestBank_RejectsReplay(t *testing.T) {
	b, payer := newTestBank(t, NewMemoryStore())
	tx, err := NewTransaction([]types.Instruction{counterIx(types.NewAccount().PublicKey, payer.PublicKey, false)}, payer)
	require.NoError(t, err)
	require.NoError(t, b.Process(context.Background(), tx))
	assert.ErrorIs(t, b.Process(context.Background(), tx), ErrAlreadyProcessed)
}

func TestBank_Signatures(t *testing.T) {
	b, payer := newTestBank(t, NewMemoryStore())
	other := types.NewAccount()
	ix := counterIx(types.NewAccount().PublicKey, payer.PublicKey, false)
	ix.Accounts = append(ix.Accounts, types.AccountMeta{PubKey: other.PublicKey, IsSigner: true})

	tx, err := NewTransaction([]types.Instruction{ix}, payer)
	require.NoError(t, err)
	assert.ErrorIs(t, b.Process(context.Background(), tx), ErrMissingSignature)

	tx, err = NewTransaction([]types.Instruction{ix}, payer, other)
	require.NoError(t, err)
	tx.Signatures[other.PublicKey] = payer.Sign([]byte("not the message"))
	assert.ErrorIs(t, b.Process(context.Background(), tx), ErrInvalidSignature)
}

func TestBank_ReadonlyAndUnknownProgram(t *testing.T) {
	b, payer := newTestBank(t, NewMemoryStore())

	ix := counterIx(types.NewAccount().PublicKey, payer.PublicKey, false)
	ix.Accounts[0].IsWritable = false
	tx, err := NewTransaction([]types.Instruction{ix}, payer)
	require.NoError(t, err)
	assert.ErrorIs(t, b.Process(context.Background(), tx), ErrReadonlyAccount)

	ix = counterIx(types.NewAccount().PublicKey, payer.PublicKey, false)
	ix.ProgramID = types.NewAccount().PublicKey
	tx, err = NewTransaction([]types.Instruction{ix}, payer)
	require.NoError(t, err)
	assert.ErrorIs(t, b.Process(context.Background(), tx), ErrUnknownProgram)
}

func TestBank_CreateRequiresFunds(t *testing.T) {
	b := NewBank(NewMemoryStore())
	b.Register(counterProgramID, counterProgram())
	poor := types.NewAccount()
	require.NoError(t, b.Airdrop(context.Background(), poor.PublicKey, 10))

	tx, err := NewTransaction([]types.Instruction{counterIx(types.NewAccount().PublicKey, poor.PublicKey, false)}, poor)
	require.NoError(t, err)
	assert.ErrorIs(t, b.Process(context.Background(), tx), ErrInsufficientFunds)
}

func TestBank_ConcurrentWritersSerialize(t *testing.T) {
	b, payer := newTestBank(t, NewMemoryStore())
	counter := types.NewAccount().PublicKey
	tx, err := NewTransaction([]types.Instruction{counterIx(counter, payer.PublicKey, false)}, payer)
	require.NoError(t, err)
	require.NoError(t, b.Process(context.Background(), tx))

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := NewTransaction([]types.Instruction{counterIx(counter, payer.PublicKey, false)}, payer)
			if err != nil {
				errs <- err
				return
			}
			errs <- b.Process(context.Background(), tx)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	acc, err := b.Account(counter)
	require.NoError(t, err)
	assert.Equal(t, byte(n+1), acc.Data[0])
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	key := types.NewAccount().PublicKey
	owner := types.NewAccount().PublicKey
	require.NoError(t, s.Commit(Batch{
		Accounts:  map[common.PublicKey]ledger.Account{key: {Owner: owner, Lamports: 7, Data: []byte{1, 2, 3}}},
		Signature: []byte("sig"),
	}))
	require.NoError(t, s.Close())

	s, err = OpenBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	acc, ok, err := s.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(7), acc.Lamports)
	assert.Equal(t, []byte{1, 2, 3}, acc.Data)

	seen, err := s.HasSignature([]byte("sig"))
	require.NoError(t, err)
	assert.True(t, seen)

	var found []common.PublicKey
	require.NoError(t, s.Range(owner, func(k common.PublicKey, _ ledger.Account) bool {
		found = append(found, k)
		return true
	}))
	assert.Equal(t, []common.PublicKey{key}, found)
}

func TestRentExemptMinimum(t *testing.T) {
	assert.Equal(t, uint64(890880), RentExemptMinimum(0))
	assert.Equal(t, uint64(2039280), RentExemptMinimum(165))
}
