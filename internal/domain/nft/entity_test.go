package nft

import (
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsesFor(t *testing.T) {
	u := UsesFor(ClassCertification)
	require.NotNil(t, u)
	assert.Equal(t, Uses{UseMethod: UseMethodSingle, Remaining: 1, Total: 1}, *u)
	assert.Nil(t, UsesFor(ClassCollection))
}

func TestMetadata_Transferable(t *testing.T) {
	assert.True(t, Metadata{}.Transferable())
	assert.True(t, Metadata{Uses: &Uses{UseMethod: UseMethodSingle, Remaining: 1, Total: 1}}.Transferable())
	assert.False(t, Metadata{Uses: &Uses{UseMethod: UseMethodSingle, Remaining: 0, Total: 1}}.Transferable())
}

func TestPayload_Validate(t *testing.T) {
	assert.NoError(t, Payload{Name: "Cert-A", Symbol: "CRT", URI: "ipfs://x"}.Validate())
	assert.ErrorIs(t, Payload{Symbol: "CRT", URI: "ipfs://x"}.Validate(), ErrInvalidName)
	assert.ErrorIs(t, Payload{Name: "n", Symbol: "  ", URI: "ipfs://x"}.Validate(), ErrInvalidSymbol)
	assert.ErrorIs(t, Payload{Name: "n", Symbol: "s"}.Validate(), ErrInvalidURI)

	assert.Equal(t, Payload{Name: "a", Symbol: "b", URI: "c"}, Payload{Name: " a ", Symbol: "b\n", URI: "\tc"}.Normalize())
}

func TestMetadataCodec(t *testing.T) {
	mint := common.PublicKeyFromString("So11111111111111111111111111111111111111112")
	in := Metadata{
		Key:             KeyMetadataV1,
		UpdateAuthority: common.SystemProgramID,
		Mint:            mint,
		Data:            Data{Name: "Cert-A", Symbol: "CRT", Uri: "ipfs://x"},
		IsMutable:       true,
		Uses:            UsesFor(ClassCertification),
	}
	raw, err := EncodeMetadata(in)
	require.NoError(t, err)

	// key, update authority, mint, then the name length prefix.
	assert.Equal(t, KeyMetadataV1, raw[0])
	assert.Equal(t, mint.Bytes(), raw[33:65])
	assert.Equal(t, []byte{6, 0, 0, 0}, raw[65:69])

	out, err := DecodeMetadata(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, ClassCertification, out.Class())

	_, err = DecodeMetadata(nil)
	assert.ErrorIs(t, err, ErrInvalidRecord)

	raw[0] = KeyMasterEditionV2
	_, err = DecodeMetadata(raw)
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestParseAddress(t *testing.T) {
	pk, err := ParseAddress(" 35GtXHKY4m9q9735friqSn8G73QYFZcBf5qzRp3bwGmV ")
	require.NoError(t, err)
	assert.Equal(t, "35GtXHKY4m9q9735friqSn8G73QYFZcBf5qzRp3bwGmV", pk.ToBase58())

	for _, bad := range []string{"", "0OIl", "abc"} {
		_, err := ParseAddress(bad)
		assert.ErrorIs(t, err, ErrInvalidAddress, bad)
	}
}

func TestDeriveAddresses(t *testing.T) {
	owner := common.PublicKeyFromString("35GtXHKY4m9q9735friqSn8G73QYFZcBf5qzRp3bwGmV")
	mint := common.PublicKeyFromString("So11111111111111111111111111111111111111112")

	addrs, err := DeriveAddresses(owner, mint)
	require.NoError(t, err)

	meta, _, err := common.FindProgramAddress(
		[][]byte{[]byte("metadata"), common.MetaplexTokenMetaProgramID.Bytes(), mint.Bytes()},
		common.MetaplexTokenMetaProgramID,
	)
	require.NoError(t, err)
	assert.Equal(t, meta, addrs.Metadata)

	edition, _, err := common.FindProgramAddress(
		[][]byte{[]byte("metadata"), common.MetaplexTokenMetaProgramID.Bytes(), mint.Bytes(), []byte("edition")},
		common.MetaplexTokenMetaProgramID,
	)
	require.NoError(t, err)
	assert.Equal(t, edition, addrs.Edition)
	assert.NotEqual(t, addrs.Metadata, addrs.Holding)
}
