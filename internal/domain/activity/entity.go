// internal/domain/activity/entity.go
package activity

import (
	"errors"
	"strings"
	"time"
)

/*
Activity is the audit trail of one mint or transfer attempt: what was asked,
which accounts were involved, and how it ended (signature or error type).
Support staff use it to answer "did this certificate go out, and to whom".
*/

type Kind string

const (
	KindMintCertification Kind = "mint_certification"
	KindMintCollection    Kind = "mint_collection"
	KindTransfer          Kind = "transfer"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

type ErrorType string

const (
	ErrorTypeUnknown            ErrorType = "unknown"
	ErrorTypeInvalid            ErrorType = "invalid"
	ErrorTypeAlreadyTransferred ErrorType = "already_transferred"
	ErrorTypeMetadataMismatch   ErrorType = "metadata_mismatch"
	ErrorTypeInsufficientFunds  ErrorType = "insufficient_funds"
	ErrorTypeUploadFailed       ErrorType = "upload_failed"
	ErrorTypeMintFailed         ErrorType = "mint_failed"
	ErrorTypeTransferFailed     ErrorType = "transfer_failed"
)

var (
	ErrInvalidID        = errors.New("activity: invalid id")
	ErrInvalidKind      = errors.New("activity: invalid kind")
	ErrInvalidStatus    = errors.New("activity: invalid status")
	ErrInvalidCreatedAt = errors.New("activity: invalid createdAt")
	ErrEmptySignature   = errors.New("activity: signature is empty")
	ErrNotFound         = errors.New("activity: not found")
)

type Activity struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`

	MintAddress string `json:"mintAddress,omitempty"`
	FromWallet  string `json:"fromWallet,omitempty"`
	ToWallet    string `json:"toWallet,omitempty"`
	Name        string `json:"name,omitempty"`
	URI         string `json:"uri,omitempty"`

	Signature *string `json:"signature,omitempty"`

	Status    Status     `json:"status"`
	ErrorType *ErrorType `json:"errorType,omitempty"`
	ErrorMsg  *string    `json:"errorMsg,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// NewPending starts an activity record before anything is submitted.
func NewPending(id string, kind Kind, createdAt time.Time) (Activity, error) {
	a := Activity{
		ID:        strings.TrimSpace(id),
		Kind:      kind,
		Status:    StatusPending,
		CreatedAt: createdAt.UTC(),
	}
	if err := a.validate(); err != nil {
		return Activity{}, err
	}
	return a, nil
}

func (a *Activity) MarkSucceeded(sig string, at time.Time) error {
	if a == nil {
		return nil
	}
	sig = strings.TrimSpace(sig)
	if sig == "" {
		return ErrEmptySignature
	}
	a.Status = StatusSucceeded
	a.Signature = &sig
	a.ErrorType = nil
	a.ErrorMsg = nil
	u := at.UTC()
	a.UpdatedAt = &u
	return nil
}

func (a *Activity) MarkFailed(errType ErrorType, msg string, at time.Time) {
	if a == nil {
		return
	}
	if strings.TrimSpace(string(errType)) == "" {
		errType = ErrorTypeUnknown
	}
	a.Status = StatusFailed
	a.ErrorType = &errType
	if m := strings.TrimSpace(msg); m != "" {
		a.ErrorMsg = &m
	} else {
		a.ErrorMsg = nil
	}
	u := at.UTC()
	a.UpdatedAt = &u
}

func (a Activity) validate() error {
	if a.ID == "" {
		return ErrInvalidID
	}
	switch a.Kind {
	case KindMintCertification, KindMintCollection, KindTransfer:
	default:
		return ErrInvalidKind
	}
	switch a.Status {
	case StatusPending, StatusSucceeded, StatusFailed:
	default:
		return ErrInvalidStatus
	}
	if a.CreatedAt.IsZero() {
		return ErrInvalidCreatedAt
	}
	return nil
}
