package program

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/near/borsh-go"

	"nftminter/internal/domain/nft"
)

// DefaultProgramID is the deployed address of the minter program.
const DefaultProgramID = "35GtXHKY4m9q9735friqSn8G73QYFZcBf5qzRp3bwGmV"

var ProgramID = common.PublicKeyFromString(DefaultProgramID)

const (
	MintCertificationNFT = "mint_certification_nft"
	MintCollectionNFT    = "mint_collection_nft"
	TransferNFT          = "transfer_nft"
)

// Discriminator is the first 8 bytes of sha256("global:<name>").
func Discriminator(name string) [8]byte {
	sum := sha256.Sum256([]byte("global:" + name))
	var d [8]byte
	copy(d[:], sum[:8])
	return d
}

var (
	discMintCertification = Discriminator(MintCertificationNFT)
	discMintCollection    = Discriminator(MintCollectionNFT)
	discTransfer          = Discriminator(TransferNFT)
)

// mintArgs covers both mint entry points: the certification struct argument and
// the three collection scalars serialize to the same bytes.
type mintArgs struct {
	Name   string
	Symbol string
	Uri    string
}

// EncodeMint builds instruction data for one of the two mint entry points.
func EncodeMint(class nft.Class, p nft.Payload) ([]byte, error) {
	var disc [8]byte
	switch class {
	case nft.ClassCertification:
		disc = discMintCertification
	case nft.ClassCollection:
		disc = discMintCollection
	default:
		return nil, nft.ErrInvalidClass
	}
	args, err := borsh.Serialize(mintArgs{Name: p.Name, Symbol: p.Symbol, Uri: p.URI})
	if err != nil {
		return nil, fmt.Errorf("encode mint args: %w", err)
	}
	return append(disc[:], args...), nil
}

func EncodeTransfer() []byte {
	d := discTransfer
	return d[:]
}

func decodeMintArgs(data []byte) (nft.Payload, error) {
	var a mintArgs
	if err := borsh.Deserialize(&a, data); err != nil {
		return nft.Payload{}, fmt.Errorf("%w: %v", ErrInstructionDidNotDeserialize, err)
	}
	return nft.Payload{Name: a.Name, Symbol: a.Symbol, URI: a.Uri}, nil
}

func matches(data []byte, disc [8]byte) bool {
	return len(data) >= 8 && bytes.Equal(data[:8], disc[:])
}

// NewMintInstruction builds a mint instruction for payer and a fresh mint keypair.
func NewMintInstruction(programID common.PublicKey, class nft.Class, payer, mint common.PublicKey, p nft.Payload) (types.Instruction, error) {
	data, err := EncodeMint(class, p)
	if err != nil {
		return types.Instruction{}, err
	}
	addrs, err := nft.DeriveAddresses(payer, mint)
	if err != nil {
		return types.Instruction{}, err
	}
	return types.Instruction{
		ProgramID: programID,
		Accounts: []types.AccountMeta{
			{PubKey: payer, IsSigner: true, IsWritable: true},
			{PubKey: addrs.Metadata, IsSigner: false, IsWritable: true},
			{PubKey: addrs.Edition, IsSigner: false, IsWritable: true},
			{PubKey: mint, IsSigner: true, IsWritable: true},
			{PubKey: addrs.Holding, IsSigner: false, IsWritable: true},
			{PubKey: common.TokenProgramID, IsSigner: false, IsWritable: false},
			{PubKey: common.MetaplexTokenMetaProgramID, IsSigner: false, IsWritable: false},
			{PubKey: common.SPLAssociatedTokenAccountProgramID, IsSigner: false, IsWritable: false},
			{PubKey: common.SystemProgramID, IsSigner: false, IsWritable: false},
			{PubKey: common.SysVarRentPubkey, IsSigner: false, IsWritable: false},
		},
		Data: data,
	}, nil
}

// NewTransferInstruction builds transfer_nft. metadata must be the record of the source holding's mint.
func NewTransferInstruction(programID, from, to, authority, metadata common.PublicKey) types.Instruction {
	return types.Instruction{
		ProgramID: programID,
		Accounts: []types.AccountMeta{
			{PubKey: from, IsSigner: false, IsWritable: true},
			{PubKey: to, IsSigner: false, IsWritable: true},
			{PubKey: authority, IsSigner: true, IsWritable: true},
			{PubKey: metadata, IsSigner: false, IsWritable: true},
			{PubKey: common.TokenProgramID, IsSigner: false, IsWritable: false},
		},
		Data: EncodeTransfer(),
	}
}

// NewCreateHoldingIdempotentInstruction creates owner's holding for mint unless it exists.
func NewCreateHoldingIdempotentInstruction(payer, owner, mint common.PublicKey) (types.Instruction, error) {
	holding, err := nft.HoldingAddress(owner, mint)
	if err != nil {
		return types.Instruction{}, err
	}
	return types.Instruction{
		ProgramID: common.SPLAssociatedTokenAccountProgramID,
		Accounts: []types.AccountMeta{
			{PubKey: payer, IsSigner: true, IsWritable: true},
			{PubKey: holding, IsSigner: false, IsWritable: true},
			{PubKey: owner, IsSigner: false, IsWritable: false},
			{PubKey: mint, IsSigner: false, IsWritable: false},
			{PubKey: common.SystemProgramID, IsSigner: false, IsWritable: false},
			{PubKey: common.TokenProgramID, IsSigner: false, IsWritable: false},
		},
		Data: []byte{1},
	}, nil
}
