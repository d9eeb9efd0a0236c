package tokenledger

import (
	"fmt"

	"github.com/near/borsh-go"

	"nftminter/internal/domain/ledger"
)

// DecodeMint parses mint account data. Zeroed data is reported as not initialized.
func DecodeMint(data []byte) (ledger.MintState, error) {
	var st ledger.MintState
	if len(data) == 0 || ledger.AccountType(data[0]) == ledger.AccountTypeUninitialized {
		return st, ErrNotInitialized
	}
	if ledger.AccountType(data[0]) != ledger.AccountTypeMint {
		return st, fmt.Errorf("%w: not a mint", ledger.ErrInvalidState)
	}
	if err := borsh.Deserialize(&st, data); err != nil {
		return ledger.MintState{}, fmt.Errorf("%w: %v", ledger.ErrInvalidState, err)
	}
	return st, nil
}

func EncodeMint(st ledger.MintState) ([]byte, error) {
	st.AccountType = ledger.AccountTypeMint
	return borsh.Serialize(st)
}

// DecodeHolding parses holding account data.
func DecodeHolding(data []byte) (ledger.HoldingState, error) {
	var st ledger.HoldingState
	if len(data) == 0 || ledger.AccountType(data[0]) == ledger.AccountTypeUninitialized {
		return st, ErrNotInitialized
	}
	if ledger.AccountType(data[0]) != ledger.AccountTypeHolding {
		return st, fmt.Errorf("%w: not a holding", ledger.ErrInvalidState)
	}
	if err := borsh.Deserialize(&st, data); err != nil {
		return ledger.HoldingState{}, fmt.Errorf("%w: %v", ledger.ErrInvalidState, err)
	}
	return st, nil
}

func EncodeHolding(st ledger.HoldingState) ([]byte, error) {
	st.AccountType = ledger.AccountTypeHolding
	return borsh.Serialize(st)
}
