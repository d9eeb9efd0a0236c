package usecase

import "errors"

var (
	// ErrInvalidInput wraps every request validation failure.
	ErrInvalidInput          = errors.New("usecase: invalid input")
	ErrImageRequired         = errors.New("usecase: imageUrl is required when uri is not given")
	ErrStorageNotConfigured  = errors.New("usecase: object storage not configured")
	ErrUnsupportedMediaType  = errors.New("usecase: unsupported image content type")
	ErrChainNotConfigured    = errors.New("usecase: chain executor not configured")
	ErrRecipientTransferFail = errors.New("usecase: minted but transfer to recipient failed")
)
