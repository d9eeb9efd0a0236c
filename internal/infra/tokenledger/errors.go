package tokenledger

import "errors"

var (
	ErrInsufficientBalance = errors.New("tokenledger: insufficient balance")
	ErrAuthorityMismatch   = errors.New("tokenledger: authority mismatch")
	ErrMissingSigner       = errors.New("tokenledger: authority did not sign")
	ErrMintMismatch        = errors.New("tokenledger: mint mismatch")
	ErrOwnerMismatch       = errors.New("tokenledger: owner mismatch")
	ErrAlreadyInitialized  = errors.New("tokenledger: account already initialized")
	ErrNotInitialized      = errors.New("tokenledger: account not initialized")
	ErrFixedSupply         = errors.New("tokenledger: fixed supply")
	ErrFrozen              = errors.New("tokenledger: account frozen")
	ErrOverflow            = errors.New("tokenledger: amount overflow")
	ErrInvalidOwner        = errors.New("tokenledger: account not owned by token program")
	ErrInvalidAddress      = errors.New("tokenledger: invalid associated address")
	ErrInvalidInstruction  = errors.New("tokenledger: invalid instruction")
)
