package metadatastore

import "errors"

var (
	ErrNameTooLong          = errors.New("metadatastore: name too long")
	ErrSymbolTooLong        = errors.New("metadatastore: symbol too long")
	ErrURITooLong           = errors.New("metadatastore: uri too long")
	ErrInvalidBasisPoints   = errors.New("metadatastore: seller fee basis points out of range")
	ErrInvalidUseMethod     = errors.New("metadatastore: invalid use method")
	ErrInvalidMetadataKey   = errors.New("metadatastore: metadata address does not match mint")
	ErrInvalidEditionKey    = errors.New("metadatastore: edition address does not match mint")
	ErrInvalidOwner         = errors.New("metadatastore: account not owned by metadata program")
	ErrMintMismatch         = errors.New("metadatastore: mint mismatch")
	ErrMintAuthority        = errors.New("metadatastore: invalid mint authority")
	ErrUpdateAuthority      = errors.New("metadatastore: invalid update authority")
	ErrZeroDecimalsRequired = errors.New("metadatastore: editions must have zero decimals")
	ErrSupplyTooLarge       = errors.New("metadatastore: editions must have at most one token")
	ErrUnusableAsset        = errors.New("metadatastore: asset has no uses")
	ErrNotEnoughUses        = errors.New("metadatastore: not enough uses")
	ErrOwnerMismatch        = errors.New("metadatastore: holding not owned by signer")
	ErrMissingSigner        = errors.New("metadatastore: required signer missing")
)
