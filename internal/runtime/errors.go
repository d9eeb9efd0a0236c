package runtime

import "errors"

var (
	ErrEmptyTransaction  = errors.New("runtime: transaction has no instructions")
	ErrMissingSignature  = errors.New("runtime: missing signature")
	ErrInvalidSignature  = errors.New("runtime: invalid signature")
	ErrAlreadyProcessed  = errors.New("runtime: transaction already processed")
	ErrReadonlyAccount   = errors.New("runtime: account is not writable")
	ErrAccountInUse      = errors.New("runtime: account already in use")
	ErrInsufficientFunds = errors.New("runtime: insufficient funds")
	ErrUnknownProgram    = errors.New("runtime: unknown program")
	ErrNotSigner         = errors.New("runtime: payer did not sign")
	ErrStoreClosed       = errors.New("runtime: store closed")
)
