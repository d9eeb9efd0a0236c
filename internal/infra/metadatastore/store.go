// internal/infra/metadatastore/store.go
package metadatastore

import (
	"fmt"

	"github.com/blocto/solana-go-sdk/common"

	"nftminter/internal/domain/ledger"
	"nftminter/internal/domain/nft"
)

const (
	MaxNameLength   = 32
	MaxSymbolLength = 10
	MaxURILength    = 200
	MaxBasisPoints  = 10000

	MetadataSpace uint64 = 679
	EditionSpace  uint64 = 282
)

const tokenStandardNonFungible uint8 = 0

// Store is an in-process metadata program. Records are owned by
// common.MetaplexTokenMetaProgramID and use the same serialized layout.
type Store struct {
	Tokens ledger.TokenLedger
}

var _ ledger.MetadataStore = (*Store)(nil)

func New(tokens ledger.TokenLedger) *Store {
	return &Store{Tokens: tokens}
}

func (s *Store) CreateMetadata(acc ledger.Accounts, in ledger.CreateMetadataInput) error {
	want, err := nft.MetadataAddress(in.Mint)
	if err != nil {
		return err
	}
	if want != in.Metadata {
		return fmt.Errorf("%w: got %s want %s", ErrInvalidMetadataKey, in.Metadata.ToBase58(), want.ToBase58())
	}
	if err := validateData(in.Data); err != nil {
		return err
	}
	ms, err := s.Tokens.Mint(acc, in.Mint)
	if err != nil {
		return fmt.Errorf("metadata mint: %w", err)
	}
	if ms.MintAuthority == nil || *ms.MintAuthority != in.MintAuthority {
		return ErrMintAuthority
	}
	if !acc.IsSigner(in.MintAuthority) {
		return fmt.Errorf("%w: mint authority", ErrMissingSigner)
	}

	rec := nft.Metadata{
		Key:             nft.KeyMetadataV1,
		UpdateAuthority: in.UpdateAuthority,
		Mint:            in.Mint,
		Data: nft.Data{
			Name:                 in.Data.Name,
			Symbol:               in.Data.Symbol,
			Uri:                  in.Data.URI,
			SellerFeeBasisPoints: in.Data.SellerFeeBasisPoints,
			Creators:             in.Data.Creators,
		},
		PrimarySaleHappened: false,
		IsMutable:           in.IsMutable,
		Collection:          in.Data.Collection,
		Uses:                in.Data.Uses,
	}
	if err := acc.Create(in.Payer, in.Metadata, common.MetaplexTokenMetaProgramID, MetadataSpace); err != nil {
		return fmt.Errorf("create metadata account: %w", err)
	}
	return s.storeMetadata(acc, in.Metadata, rec)
}

func (s *Store) CreateMasterEdition(acc ledger.Accounts, in ledger.CreateMasterEditionInput) error {
	want, err := nft.EditionAddress(in.Mint)
	if err != nil {
		return err
	}
	if want != in.Edition {
		return fmt.Errorf("%w: got %s want %s", ErrInvalidEditionKey, in.Edition.ToBase58(), want.ToBase58())
	}
	rec, err := s.Read(acc, in.Metadata)
	if err != nil {
		return err
	}
	if rec.Mint != in.Mint {
		return ErrMintMismatch
	}
	if rec.UpdateAuthority != in.UpdateAuthority {
		return ErrUpdateAuthority
	}
	if !acc.IsSigner(in.UpdateAuthority) {
		return fmt.Errorf("%w: update authority", ErrMissingSigner)
	}

	ms, err := s.Tokens.Mint(acc, in.Mint)
	if err != nil {
		return fmt.Errorf("edition mint: %w", err)
	}
	if ms.Decimals != 0 {
		return ErrZeroDecimalsRequired
	}
	if ms.Supply > 1 {
		return ErrSupplyTooLarge
	}
	if ms.MintAuthority == nil || *ms.MintAuthority != in.MintAuthority {
		return ErrMintAuthority
	}

	ed := nft.MasterEdition{Key: nft.KeyMasterEditionV2, Supply: 0, MaxSupply: in.MaxSupply}
	data, err := nft.EncodeMasterEdition(ed)
	if err != nil {
		return err
	}
	if err := acc.Create(in.Payer, in.Edition, common.MetaplexTokenMetaProgramID, EditionSpace); err != nil {
		return fmt.Errorf("create edition account: %w", err)
	}
	edAcc, err := acc.Load(in.Edition)
	if err != nil {
		return err
	}
	edAcc.Data = data
	if err := acc.Store(in.Edition, edAcc); err != nil {
		return err
	}

	// The edition becomes the only mint/freeze authority, which caps supply.
	edition := in.Edition
	if err := s.Tokens.SetAuthority(acc, in.Mint, ledger.AuthorityMintTokens, in.MintAuthority, &edition); err != nil {
		return fmt.Errorf("move mint authority: %w", err)
	}
	if ms.FreezeAuthority != nil && *ms.FreezeAuthority == in.MintAuthority {
		if err := s.Tokens.SetAuthority(acc, in.Mint, ledger.AuthorityFreezeAccount, in.MintAuthority, &edition); err != nil {
			return fmt.Errorf("move freeze authority: %w", err)
		}
	}

	standard := tokenStandardNonFungible
	rec.TokenStandard = &standard
	return s.storeMetadata(acc, in.Metadata, rec)
}

func (s *Store) Read(acc ledger.Accounts, metadata common.PublicKey) (nft.Metadata, error) {
	a, err := acc.Load(metadata)
	if err != nil {
		return nft.Metadata{}, err
	}
	if a.Owner != common.MetaplexTokenMetaProgramID {
		return nft.Metadata{}, fmt.Errorf("%w: %s", ErrInvalidOwner, metadata.ToBase58())
	}
	return nft.DecodeMetadata(a.Data)
}

// Utilize consumes Count uses. The owner must sign and hold at least one unit.
func (s *Store) Utilize(acc ledger.Accounts, in ledger.UtilizeInput) error {
	want, err := nft.MetadataAddress(in.Mint)
	if err != nil {
		return err
	}
	if want != in.Metadata {
		return ErrInvalidMetadataKey
	}
	rec, err := s.Read(acc, in.Metadata)
	if err != nil {
		return err
	}
	if rec.Mint != in.Mint {
		return ErrMintMismatch
	}
	if rec.Uses == nil {
		return ErrUnusableAsset
	}
	count := in.Count
	if count == 0 {
		count = 1
	}
	if rec.Uses.Remaining < count {
		return fmt.Errorf("%w: remaining %d, requested %d", ErrNotEnoughUses, rec.Uses.Remaining, count)
	}

	hs, err := s.Tokens.Holding(acc, in.Holding)
	if err != nil {
		return fmt.Errorf("utilize holding: %w", err)
	}
	if hs.Mint != in.Mint {
		return ErrMintMismatch
	}
	if hs.Owner != in.Owner || hs.Amount == 0 {
		return ErrOwnerMismatch
	}
	if !acc.IsSigner(in.Owner) {
		return fmt.Errorf("%w: owner", ErrMissingSigner)
	}

	rec.Uses.Remaining -= count
	return s.storeMetadata(acc, in.Metadata, rec)
}

func (s *Store) storeMetadata(acc ledger.Accounts, key common.PublicKey, rec nft.Metadata) error {
	data, err := nft.EncodeMetadata(rec)
	if err != nil {
		return err
	}
	a, err := acc.Load(key)
	if err != nil {
		return err
	}
	a.Data = data
	return acc.Store(key, a)
}

func validateData(d nft.DataV2) error {
	if len(d.Name) > MaxNameLength {
		return fmt.Errorf("%w: %d bytes", ErrNameTooLong, len(d.Name))
	}
	if len(d.Symbol) > MaxSymbolLength {
		return fmt.Errorf("%w: %d bytes", ErrSymbolTooLong, len(d.Symbol))
	}
	if len(d.URI) > MaxURILength {
		return fmt.Errorf("%w: %d bytes", ErrURITooLong, len(d.URI))
	}
	if d.SellerFeeBasisPoints > MaxBasisPoints {
		return ErrInvalidBasisPoints
	}
	if u := d.Uses; u != nil {
		if u.Remaining > u.Total {
			return ErrInvalidUseMethod
		}
		if u.UseMethod == nft.UseMethodSingle && u.Total != 1 {
			return ErrInvalidUseMethod
		}
		if u.UseMethod > nft.UseMethodSingle {
			return ErrInvalidUseMethod
		}
	}
	return nil
}
