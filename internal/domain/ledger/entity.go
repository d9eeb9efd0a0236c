// internal/domain/ledger/entity.go
package ledger

import (
	"errors"

	"github.com/blocto/solana-go-sdk/common"
)

var (
	ErrAccountNotFound = errors.New("ledger: account not found")
	ErrInvalidState    = errors.New("ledger: invalid account state")
)

// Account is the raw state stored at one address.
type Account struct {
	Owner    common.PublicKey
	Lamports uint64
	Data     []byte
}

// Clone returns a copy that shares no memory with a.
func (a Account) Clone() Account {
	out := a
	if a.Data != nil {
		out.Data = append([]byte(nil), a.Data...)
	}
	return out
}

// Accounts is the view an executing program has of the accounts of its transaction.
// Implementations decide signer and writable status from the signed message.
type Accounts interface {
	Load(key common.PublicKey) (Account, error)
	Exists(key common.PublicKey) bool
	// Store replaces the account at key. Only writable accounts may be stored.
	Store(key common.PublicKey, acc Account) error
	// Create allocates space bytes at key owned by owner and funds it rent-exempt from payer.
	Create(payer, key, owner common.PublicKey, space uint64) error
	IsSigner(key common.PublicKey) bool
	IsWritable(key common.PublicKey) bool
}

// AccountType tags token ledger states.
type AccountType uint8

const (
	AccountTypeUninitialized AccountType = iota
	AccountTypeMint
	AccountTypeHolding
)

// MintState is the token-unit account: supply and authorities.
type MintState struct {
	AccountType     AccountType
	MintAuthority   *common.PublicKey
	Supply          uint64
	Decimals        uint8
	FreezeAuthority *common.PublicKey
}

// HoldingState is a balance of one mint for one owner.
type HoldingState struct {
	AccountType AccountType
	Mint        common.PublicKey
	Owner       common.PublicKey
	Amount      uint64
	Frozen      bool
}

type AuthorityType uint8

const (
	AuthorityMintTokens AuthorityType = iota
	AuthorityFreezeAccount
)
