package nft

import "errors"

var (
	ErrInvalidName    = errors.New("nft: invalid name")
	ErrInvalidSymbol  = errors.New("nft: invalid symbol")
	ErrInvalidURI     = errors.New("nft: invalid uri")
	ErrInvalidClass   = errors.New("nft: invalid class")
	ErrInvalidAddress = errors.New("nft: invalid address")

	// ErrInvalidRecord is returned when stored bytes do not decode into the expected layout.
	ErrInvalidRecord = errors.New("nft: invalid record")
)
