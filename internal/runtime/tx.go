package runtime

import (
	"fmt"

	"github.com/blocto/solana-go-sdk/common"

	"nftminter/internal/domain/ledger"
)

// Tx is a copy-on-write overlay over a Store for one transaction.
type Tx struct {
	store    Store
	signers  map[common.PublicKey]struct{}
	writable map[common.PublicKey]struct{}
	writes   map[common.PublicKey]ledger.Account
}

var _ ledger.Accounts = (*Tx)(nil)

func newTx(store Store, signers, writable []common.PublicKey) *Tx {
	t := &Tx{
		store:    store,
		signers:  make(map[common.PublicKey]struct{}, len(signers)),
		writable: make(map[common.PublicKey]struct{}, len(writable)),
		writes:   make(map[common.PublicKey]ledger.Account),
	}
	for _, k := range signers {
		t.signers[k] = struct{}{}
	}
	for _, k := range writable {
		t.writable[k] = struct{}{}
	}
	return t
}

func (t *Tx) Load(key common.PublicKey) (ledger.Account, error) {
	if acc, ok := t.writes[key]; ok {
		return acc.Clone(), nil
	}
	acc, ok, err := t.store.Get(key)
	if err != nil {
		return ledger.Account{}, err
	}
	if !ok {
		return ledger.Account{}, fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, key.ToBase58())
	}
	return acc, nil
}

func (t *Tx) Exists(key common.PublicKey) bool {
	_, err := t.Load(key)
	return err == nil
}

func (t *Tx) Store(key common.PublicKey, acc ledger.Account) error {
	if !t.IsWritable(key) {
		return fmt.Errorf("%w: %s", ErrReadonlyAccount, key.ToBase58())
	}
	t.writes[key] = acc.Clone()
	return nil
}

// Create is the system create-account facility.
func (t *Tx) Create(payer, key, owner common.PublicKey, space uint64) error {
	if !t.IsSigner(payer) {
		return fmt.Errorf("%w: %s", ErrNotSigner, payer.ToBase58())
	}
	if t.Exists(key) {
		return fmt.Errorf("%w: %s", ErrAccountInUse, key.ToBase58())
	}
	if !t.IsWritable(key) {
		return fmt.Errorf("%w: %s", ErrReadonlyAccount, key.ToBase58())
	}
	from, err := t.Load(payer)
	if err != nil {
		return fmt.Errorf("%w: payer %s has no balance", ErrInsufficientFunds, payer.ToBase58())
	}
	rent := RentExemptMinimum(space)
	if from.Lamports < rent {
		return fmt.Errorf("%w: need %d lamports, have %d", ErrInsufficientFunds, rent, from.Lamports)
	}
	from.Lamports -= rent
	if err := t.Store(payer, from); err != nil {
		return err
	}
	return t.Store(key, ledger.Account{Owner: owner, Lamports: rent, Data: make([]byte, space)})
}

func (t *Tx) IsSigner(key common.PublicKey) bool {
	_, ok := t.signers[key]
	return ok
}

func (t *Tx) IsWritable(key common.PublicKey) bool {
	_, ok := t.writable[key]
	return ok
}
