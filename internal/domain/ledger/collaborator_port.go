// internal/domain/ledger/collaborator_port.go
package ledger

import (
	"github.com/blocto/solana-go-sdk/common"

	"nftminter/internal/domain/nft"
)

// TokenLedger is the token program as seen by callers in the same transaction.
type TokenLedger interface {
	InitializeMint(acc Accounts, payer, mint common.PublicKey, decimals uint8, authority common.PublicKey, freeze *common.PublicKey) error
	// CreateHolding derives and creates owner's holding for mint. Existing holdings are returned as-is.
	CreateHolding(acc Accounts, payer, owner, mint common.PublicKey) (common.PublicKey, error)
	MintTo(acc Accounts, mint, dest, authority common.PublicKey, amount uint64) error
	Transfer(acc Accounts, from, to, authority common.PublicKey, amount uint64) error
	SetAuthority(acc Accounts, mint common.PublicKey, kind AuthorityType, current common.PublicKey, next *common.PublicKey) error

	Mint(acc Accounts, key common.PublicKey) (MintState, error)
	Holding(acc Accounts, key common.PublicKey) (HoldingState, error)
}

type CreateMetadataInput struct {
	Metadata        common.PublicKey
	Mint            common.PublicKey
	MintAuthority   common.PublicKey
	Payer           common.PublicKey
	UpdateAuthority common.PublicKey
	Data            nft.DataV2
	IsMutable       bool
}

type CreateMasterEditionInput struct {
	Edition         common.PublicKey
	Mint            common.PublicKey
	UpdateAuthority common.PublicKey
	MintAuthority   common.PublicKey
	Payer           common.PublicKey
	Metadata        common.PublicKey
	MaxSupply       *uint64
}

type UtilizeInput struct {
	Metadata common.PublicKey
	Holding  common.PublicKey
	Mint     common.PublicKey
	Owner    common.PublicKey
	Count    uint64
}

// MetadataStore is the metadata program as seen by callers in the same transaction.
type MetadataStore interface {
	CreateMetadata(acc Accounts, in CreateMetadataInput) error
	CreateMasterEdition(acc Accounts, in CreateMasterEditionInput) error
	Read(acc Accounts, metadata common.PublicKey) (nft.Metadata, error)
	Utilize(acc Accounts, in UtilizeInput) error
}
