package metadatastore

import (
	"errors"
	"strings"
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nftminter/internal/domain/ledger"
	"nftminter/internal/domain/nft"
	"nftminter/internal/infra/tokenledger"
)

type memAccounts struct {
	accounts map[common.PublicKey]ledger.Account
	signers  map[common.PublicKey]bool
}

func (m *memAccounts) Load(key common.PublicKey) (ledger.Account, error) {
	a, ok := m.accounts[key]
	if !ok {
		return ledger.Account{}, ledger.ErrAccountNotFound
	}
	return a.Clone(), nil
}

func (m *memAccounts) Exists(key common.PublicKey) bool {
	_, ok := m.accounts[key]
	return ok
}

func (m *memAccounts) Store(key common.PublicKey, acc ledger.Account) error {
	m.accounts[key] = acc.Clone()
	return nil
}

func (m *memAccounts) Create(_, key, owner common.PublicKey, space uint64) error {
	if m.Exists(key) {
		return errors.New("exists")
	}
	m.accounts[key] = ledger.Account{Owner: owner, Data: make([]byte, space)}
	return nil
}

func (m *memAccounts) IsSigner(key common.PublicKey) bool   { return m.signers[key] }
func (m *memAccounts) IsWritable(key common.PublicKey) bool { return true }

type fixture struct {
	acc     *memAccounts
	tokens  tokenledger.Ledger
	store   *Store
	payer   common.PublicKey
	mint    common.PublicKey
	holding common.PublicKey
	addrs   nft.Addresses
}

func newFixture(t *testing.T, decimals uint8) *fixture {
	t.Helper()
	payer := types.NewAccount().PublicKey
	mint := types.NewAccount().PublicKey
	acc := &memAccounts{
		accounts: map[common.PublicKey]ledger.Account{payer: {Owner: common.SystemProgramID, Lamports: 1}},
		signers:  map[common.PublicKey]bool{payer: true, mint: true},
	}
	tokens := tokenledger.New()
	require.NoError(t, tokens.InitializeMint(acc, payer, mint, decimals, payer, &payer))
	holding, err := tokens.CreateHolding(acc, payer, payer, mint)
	require.NoError(t, err)
	require.NoError(t, tokens.MintTo(acc, mint, holding, payer, 1))
	addrs, err := nft.DeriveAddresses(payer, mint)
	require.NoError(t, err)
	return &fixture{acc: acc, tokens: tokens, store: New(tokens), payer: payer, mint: mint, holding: holding, addrs: addrs}
}

func (f *fixture) metadataInput(class nft.Class, p nft.Payload) ledger.CreateMetadataInput {
	return ledger.CreateMetadataInput{
		Metadata:        f.addrs.Metadata,
		Mint:            f.mint,
		MintAuthority:   f.payer,
		Payer:           f.payer,
		UpdateAuthority: f.payer,
		Data:            nft.NewDataV2(class, p),
		IsMutable:       true,
	}
}

func (f *fixture) editionInput() ledger.CreateMasterEditionInput {
	return ledger.CreateMasterEditionInput{
		Edition:         f.addrs.Edition,
		Mint:            f.mint,
		UpdateAuthority: f.payer,
		MintAuthority:   f.payer,
		Payer:           f.payer,
		Metadata:        f.addrs.Metadata,
	}
}

var certPayload = nft.Payload{Name: "Cert-A", Symbol: "CRT", URI: "ipfs://x"}

func TestCreateMetadata_Limits(t *testing.T) {
	cases := []struct {
		name    string
		payload nft.Payload
		want    error
	}{
		{"name", nft.Payload{Name: strings.Repeat("a", MaxNameLength+1), Symbol: "S", URI: "u"}, ErrNameTooLong},
		{"symbol", nft.Payload{Name: "n", Symbol: strings.Repeat("s", MaxSymbolLength+1), URI: "u"}, ErrSymbolTooLong},
		{"uri", nft.Payload{Name: "n", Symbol: "s", URI: strings.Repeat("u", MaxURILength+1)}, ErrURITooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, 0)
			err := f.store.CreateMetadata(f.acc, f.metadataInput(nft.ClassCollection, tc.payload))
			assert.ErrorIs(t, err, tc.want)
			assert.False(t, f.acc.Exists(f.addrs.Metadata))
		})
	}

	t.Run("at limits", func(t *testing.T) {
		f := newFixture(t, 0)
		p := nft.Payload{
			Name:   strings.Repeat("a", MaxNameLength),
			Symbol: strings.Repeat("s", MaxSymbolLength),
			URI:    strings.Repeat("u", MaxURILength),
		}
		require.NoError(t, f.store.CreateMetadata(f.acc, f.metadataInput(nft.ClassCollection, p)))
	})
}

func TestCreateMetadata_RejectsWrongAddressAndAuthority(t *testing.T) {
	f := newFixture(t, 0)
	in := f.metadataInput(nft.ClassCertification, certPayload)
	in.Metadata = types.NewAccount().PublicKey
	assert.ErrorIs(t, f.store.CreateMetadata(f.acc, in), ErrInvalidMetadataKey)

	in = f.metadataInput(nft.ClassCertification, certPayload)
	in.MintAuthority = types.NewAccount().PublicKey
	assert.ErrorIs(t, f.store.CreateMetadata(f.acc, in), ErrMintAuthority)
}

func TestCreateMasterEdition_TakesMintAuthority(t *testing.T) {
	f := newFixture(t, 0)
	require.NoError(t, f.store.CreateMetadata(f.acc, f.metadataInput(nft.ClassCertification, certPayload)))
	require.NoError(t, f.store.CreateMasterEdition(f.acc, f.editionInput()))

	ms, err := f.tokens.Mint(f.acc, f.mint)
	require.NoError(t, err)
	require.NotNil(t, ms.MintAuthority)
	assert.Equal(t, f.addrs.Edition, *ms.MintAuthority)
	assert.ErrorIs(t, f.tokens.MintTo(f.acc, f.mint, f.holding, f.payer, 1), tokenledger.ErrAuthorityMismatch)

	rec, err := f.store.Read(f.acc, f.addrs.Metadata)
	require.NoError(t, err)
	require.NotNil(t, rec.TokenStandard)
	assert.Equal(t, uint8(0), *rec.TokenStandard)
}

func TestCreateMasterEdition_RequiresZeroDecimals(t *testing.T) {
	f := newFixture(t, 2)
	require.NoError(t, f.store.CreateMetadata(f.acc, f.metadataInput(nft.ClassCollection, certPayload)))
	assert.ErrorIs(t, f.store.CreateMasterEdition(f.acc, f.editionInput()), ErrZeroDecimalsRequired)
}

func TestUtilize(t *testing.T) {
	f := newFixture(t, 0)
	require.NoError(t, f.store.CreateMetadata(f.acc, f.metadataInput(nft.ClassCertification, certPayload)))

	in := ledger.UtilizeInput{Metadata: f.addrs.Metadata, Holding: f.holding, Mint: f.mint, Owner: f.payer, Count: 1}
	require.NoError(t, f.store.Utilize(f.acc, in))

	rec, err := f.store.Read(f.acc, f.addrs.Metadata)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), rec.Uses.Remaining)
	assert.Equal(t, uint64(1), rec.Uses.Total)
	assert.False(t, rec.Transferable())

	assert.ErrorIs(t, f.store.Utilize(f.acc, in), ErrNotEnoughUses)
}

func TestUtilize_NoUses(t *testing.T) {
	f := newFixture(t, 0)
	require.NoError(t, f.store.CreateMetadata(f.acc, f.metadataInput(nft.ClassCollection, certPayload)))
	in := ledger.UtilizeInput{Metadata: f.addrs.Metadata, Holding: f.holding, Mint: f.mint, Owner: f.payer, Count: 1}
	assert.ErrorIs(t, f.store.Utilize(f.acc, in), ErrUnusableAsset)
}

func TestUtilize_OwnerMustHold(t *testing.T) {
	f := newFixture(t, 0)
	require.NoError(t, f.store.CreateMetadata(f.acc, f.metadataInput(nft.ClassCertification, certPayload)))
	stranger := types.NewAccount().PublicKey
	f.acc.signers[stranger] = true
	in := ledger.UtilizeInput{Metadata: f.addrs.Metadata, Holding: f.holding, Mint: f.mint, Owner: stranger, Count: 1}
	assert.ErrorIs(t, f.store.Utilize(f.acc, in), ErrOwnerMismatch)
}

func TestRead_RejectsForeignOwner(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.store.Read(f.acc, f.mint)
	assert.ErrorIs(t, err, ErrInvalidOwner)
}
