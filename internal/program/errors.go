package program

import (
	"errors"
	"fmt"
)

// Error is a program error with a stable numeric code, reported by clusters as
// "custom program error: 0x<code>".
type Error struct {
	Code uint32
	Name string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Name, e.Code, e.Msg)
}

const customErrorOffset = 6000

var (
	ErrAlreadyTransferred = &Error{
		Code: customErrorOffset,
		Name: "AlreadyTransferred",
		Msg:  "This certification NFT has already been transferred and cannot be transferred again",
	}
	ErrMetadataMismatch = &Error{
		Code: customErrorOffset + 1,
		Name: "MetadataMismatch",
		Msg:  "Metadata account does not belong to the source token's mint",
	}
	ErrSelfTransfer = &Error{
		Code: customErrorOffset + 2,
		Name: "SelfTransfer",
		Msg:  "Source and destination token accounts are the same",
	}
)

// Framework errors raised while validating accounts and instruction data.
var (
	ErrInstructionFallbackNotFound  = &Error{Code: 101, Name: "InstructionFallbackNotFound", Msg: "Fallback functions are not supported"}
	ErrInstructionDidNotDeserialize = &Error{Code: 102, Name: "InstructionDidNotDeserialize", Msg: "The program could not deserialize the given instruction"}
	ErrConstraintMut                = &Error{Code: 2000, Name: "ConstraintMut", Msg: "A mut constraint was violated"}
	ErrConstraintSeeds              = &Error{Code: 2006, Name: "ConstraintSeeds", Msg: "A seeds constraint was violated"}
	ErrConstraintAssociated         = &Error{Code: 2009, Name: "ConstraintAssociated", Msg: "An associated constraint was violated"}
	ErrConstraintAddress            = &Error{Code: 2012, Name: "ConstraintAddress", Msg: "An address constraint was violated"}
	ErrAccountNotEnoughKeys         = &Error{Code: 3005, Name: "AccountNotEnoughKeys", Msg: "Not enough account keys given to the instruction"}
	ErrInvalidProgramID             = &Error{Code: 3008, Name: "InvalidProgramId", Msg: "Program ID was not as expected"}
	ErrAccountNotSigner             = &Error{Code: 3010, Name: "AccountNotSigner", Msg: "The given account did not sign"}
)

var known = []*Error{
	ErrAlreadyTransferred, ErrMetadataMismatch, ErrSelfTransfer,
	ErrInstructionFallbackNotFound, ErrInstructionDidNotDeserialize,
	ErrConstraintMut, ErrConstraintSeeds, ErrConstraintAssociated, ErrConstraintAddress,
	ErrAccountNotEnoughKeys, ErrInvalidProgramID, ErrAccountNotSigner,
}

// ErrorFromCode maps a reported code back to its sentinel.
func ErrorFromCode(code uint32) (*Error, bool) {
	for _, e := range known {
		if e.Code == code {
			return e, true
		}
	}
	return nil, false
}

// CodeOf returns the program error code carried by err, if any.
func CodeOf(err error) (uint32, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code, true
	}
	return 0, false
}
