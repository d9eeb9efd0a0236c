package runtime

import (
	"github.com/blocto/solana-go-sdk/common"

	"nftminter/internal/domain/ledger"
)

// Batch is the unit a transaction commits: every touched account plus the
// signature that identifies the transaction.
type Batch struct {
	Accounts  map[common.PublicKey]ledger.Account
	Signature []byte
}

// Store persists account state. Commit must apply a batch atomically.
type Store interface {
	Get(key common.PublicKey) (ledger.Account, bool, error)
	Commit(b Batch) error
	HasSignature(sig []byte) (bool, error)
	// Range visits accounts owned by owner until fn returns false.
	Range(owner common.PublicKey, fn func(key common.PublicKey, acc ledger.Account) bool) error
	Close() error
}
