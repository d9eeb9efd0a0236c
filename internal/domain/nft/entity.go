// internal/domain/nft/entity.go
package nft

import (
	"strings"

	"github.com/blocto/solana-go-sdk/common"
)

// Class distinguishes the two kinds of token this program mints.
type Class string

const (
	// ClassCertification tokens carry a single-use "uses" counter and may move once.
	ClassCertification Class = "certification"
	// ClassCollection tokens carry no uses counter and transfer freely.
	ClassCollection Class = "collection"
)

func (c Class) Valid() bool {
	return c == ClassCertification || c == ClassCollection
}

// Payload is the descriptive data supplied by the caller at mint time.
type Payload struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	URI    string `json:"uri"`
}

// Normalize trims surrounding whitespace from every field.
func (p Payload) Normalize() Payload {
	return Payload{
		Name:   strings.TrimSpace(p.Name),
		Symbol: strings.TrimSpace(p.Symbol),
		URI:    strings.TrimSpace(p.URI),
	}
}

// Validate only checks presence; length limits belong to the metadata program.
func (p Payload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(p.Symbol) == "" {
		return ErrInvalidSymbol
	}
	if strings.TrimSpace(p.URI) == "" {
		return ErrInvalidURI
	}
	return nil
}

// UseMethod mirrors the metadata program's enum (Burn, Multiple, Single).
type UseMethod uint8

const (
	UseMethodBurn UseMethod = iota
	UseMethodMultiple
	UseMethodSingle
)

func (m UseMethod) String() string {
	switch m {
	case UseMethodBurn:
		return "burn"
	case UseMethodMultiple:
		return "multiple"
	case UseMethodSingle:
		return "single"
	default:
		return "unknown"
	}
}

// Uses is a consumable usage budget attached to a token.
type Uses struct {
	UseMethod UseMethod
	Remaining uint64
	Total     uint64
}

// Consumed reports whether the budget is exhausted. A nil budget is never consumed.
func (u *Uses) Consumed() bool {
	return u != nil && u.Remaining == 0
}

// UsesFor returns the uses descriptor a freshly minted token of class c carries.
func UsesFor(c Class) *Uses {
	if c != ClassCertification {
		return nil
	}
	return &Uses{UseMethod: UseMethodSingle, Remaining: 1, Total: 1}
}

type Creator struct {
	Address  common.PublicKey
	Verified bool
	Share    uint8
}

type Collection struct {
	Verified bool
	Key      common.PublicKey
}

// DataV2 is the create-time payload handed to the metadata program.
type DataV2 struct {
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Creators             *[]Creator
	Collection           *Collection
	Uses                 *Uses
}

// NewDataV2 builds the record payload for class c: no royalties, no creators, no collection.
func NewDataV2(c Class, p Payload) DataV2 {
	return DataV2{
		Name:                 p.Name,
		Symbol:               p.Symbol,
		URI:                  p.URI,
		SellerFeeBasisPoints: 0,
		Creators:             nil,
		Collection:           nil,
		Uses:                 UsesFor(c),
	}
}

// Record keys as written by the metadata program.
const (
	KeyMetadataV1      uint8 = 4
	KeyMasterEditionV2 uint8 = 6
)

// Data is the descriptive part of a stored metadata record.
type Data struct {
	Name                 string
	Symbol               string
	Uri                  string
	SellerFeeBasisPoints uint16
	Creators             *[]Creator
}

// Metadata is the stored metadata record. Field order is the serialized layout.
type Metadata struct {
	Key                 uint8
	UpdateAuthority     common.PublicKey
	Mint                common.PublicKey
	Data                Data
	PrimarySaleHappened bool
	IsMutable           bool
	EditionNonce        *uint8
	TokenStandard       *uint8
	Collection          *Collection
	Uses                *Uses
}

// Class infers the token class from the presence of a uses counter.
func (m Metadata) Class() Class {
	if m.Uses != nil {
		return ClassCertification
	}
	return ClassCollection
}

// Transferable is false once a uses counter has been fully consumed.
func (m Metadata) Transferable() bool {
	return !m.Uses.Consumed()
}

func (m Metadata) Payload() Payload {
	return Payload{Name: m.Data.Name, Symbol: m.Data.Symbol, URI: m.Data.Uri}
}

// MasterEdition marks a mint as the single authoritative edition.
type MasterEdition struct {
	Key       uint8
	Supply    uint64
	MaxSupply *uint64
}
