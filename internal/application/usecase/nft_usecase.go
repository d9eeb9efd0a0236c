// internal/application/usecase/nft_usecase.go
package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"nftminter/internal/domain/activity"
	"nftminter/internal/domain/nft"
	"nftminter/internal/program"
	"nftminter/internal/runtime"
)

const (
	DefaultCertificationName        = "Preservation Certificate"
	DefaultCertificationSymbol      = "CPNFT"
	DefaultCertificationDescription = "Environmental Preservation Certificate"
)

type MintCertificationInput struct {
	Name        string      `json:"name"`
	Symbol      string      `json:"symbol"`
	Description string      `json:"description"`
	ImageURL    string      `json:"imageUrl"`
	URI         string      `json:"uri"` // when set, no off-chain document is built
	Attributes  []Attribute `json:"attributes"`

	RecipientAddress string `json:"recipientAddress"`
	RecipientEmail   string `json:"recipientEmail"`
	RecipientName    string `json:"recipientName"`
}

type MintCertificationResult struct {
	MintResult
	MetadataURI string          `json:"metadataUrl"`
	Transfer    *TransferResult `json:"transfer,omitempty"`
	Notified    bool            `json:"notified"`
	ActivityID  string          `json:"activityId"`
}

// NFTUsecase orchestrates minting, transfers, uploads and the activity trail.
// storage, mailer, activities and recorder are optional.
type NFTUsecase struct {
	chain      ChainExecutor
	storage    ObjectStorage
	mailer     CertificateMailer
	activities activity.RepositoryPort
	recorder   OperationRecorder

	now   func() time.Time
	newID func() string
}

func NewNFTUsecase(
	chain ChainExecutor,
	storage ObjectStorage,
	mailer CertificateMailer,
	activities activity.RepositoryPort,
	recorder OperationRecorder,
) *NFTUsecase {
	return &NFTUsecase{
		chain:      chain,
		storage:    storage,
		mailer:     mailer,
		activities: activities,
		recorder:   recorder,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// ============================================================
// Mint
// ============================================================

func (u *NFTUsecase) MintCertification(ctx context.Context, in MintCertificationInput) (MintCertificationResult, error) {
	if u == nil || u.chain == nil {
		return MintCertificationResult{}, ErrChainNotConfigured
	}
	start := u.now()

	name := firstNonEmpty(in.Name, DefaultCertificationName)
	symbol := firstNonEmpty(in.Symbol, DefaultCertificationSymbol)
	description := firstNonEmpty(in.Description, DefaultCertificationDescription)
	recipient := strings.TrimSpace(in.RecipientAddress)

	act := u.begin(activity.KindMintCertification, name)
	act.ToWallet = recipient
	act.FromWallet = u.chain.AuthorityAddress()

	if recipient != "" {
		if _, err := nft.ParseAddress(recipient); err != nil {
			return MintCertificationResult{}, u.fail(ctx, &act, start, invalid(err))
		}
	}

	uri := strings.TrimSpace(in.URI)
	if uri == "" {
		doc, err := BuildOffchainMetadata(name, symbol, description, in.ImageURL, in.Attributes)
		if err != nil {
			return MintCertificationResult{}, u.fail(ctx, &act, start, invalid(err))
		}
		uri, err = u.upload(ctx, "metadata/"+u.newID()+".json", "application/json", bytes.NewReader(doc))
		if err != nil {
			return MintCertificationResult{}, u.failAs(ctx, &act, start, activity.ErrorTypeUploadFailed, err)
		}
	}
	act.URI = uri

	p := nft.Payload{Name: name, Symbol: symbol, URI: uri}.Normalize()
	if err := p.Validate(); err != nil {
		return MintCertificationResult{}, u.fail(ctx, &act, start, invalid(err))
	}

	minted, err := u.chain.Mint(ctx, nft.ClassCertification, p)
	if err != nil {
		return MintCertificationResult{}, u.failAs(ctx, &act, start, activity.ErrorTypeMintFailed, err)
	}
	act.MintAddress = minted.MintAddress
	u.succeed(ctx, &act, start, minted.Signature)

	out := MintCertificationResult{MintResult: minted, MetadataURI: uri, ActivityID: act.ID}
	log.Printf("[nft_usecase] certification minted mint=%s uri=%s", maskShort(minted.MintAddress), uri)

	if recipient == "" {
		return out, nil
	}

	tr, err := u.Transfer(ctx, minted.MintAddress, recipient)
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrRecipientTransferFail, err)
	}
	out.Transfer = &tr

	if email := strings.TrimSpace(in.RecipientEmail); email != "" && u.mailer != nil {
		notice := CertificateNotice{
			ToEmail:       email,
			ToName:        strings.TrimSpace(in.RecipientName),
			NFTName:       name,
			MintAddress:   minted.MintAddress,
			WalletAddress: recipient,
			ImageURL:      strings.TrimSpace(in.ImageURL),
			MetadataURI:   uri,
		}
		if err := u.mailer.SendCertificateNotice(ctx, notice); err != nil {
			// logged only; the certificate is already on chain
			log.Printf("[nft_usecase] certificate notice failed mint=%s err=%v", maskShort(minted.MintAddress), err)
		} else {
			out.Notified = true
		}
	}
	return out, nil
}

func (u *NFTUsecase) MintCollection(ctx context.Context, p nft.Payload) (MintResult, error) {
	if u == nil || u.chain == nil {
		return MintResult{}, ErrChainNotConfigured
	}
	start := u.now()
	p = p.Normalize()

	act := u.begin(activity.KindMintCollection, p.Name)
	act.FromWallet = u.chain.AuthorityAddress()
	act.URI = p.URI

	if err := p.Validate(); err != nil {
		return MintResult{}, u.fail(ctx, &act, start, invalid(err))
	}

	minted, err := u.chain.Mint(ctx, nft.ClassCollection, p)
	if err != nil {
		return MintResult{}, u.failAs(ctx, &act, start, activity.ErrorTypeMintFailed, err)
	}
	act.MintAddress = minted.MintAddress
	u.succeed(ctx, &act, start, minted.Signature)
	return minted, nil
}

// ============================================================
// Transfer / queries
// ============================================================

func (u *NFTUsecase) Transfer(ctx context.Context, mintAddress, toWallet string) (TransferResult, error) {
	if u == nil || u.chain == nil {
		return TransferResult{}, ErrChainNotConfigured
	}
	start := u.now()
	mintAddress = strings.TrimSpace(mintAddress)
	toWallet = strings.TrimSpace(toWallet)

	act := u.begin(activity.KindTransfer, "")
	act.MintAddress = mintAddress
	act.FromWallet = u.chain.AuthorityAddress()
	act.ToWallet = toWallet

	if _, err := nft.ParseAddress(mintAddress); err != nil {
		return TransferResult{}, u.fail(ctx, &act, start, invalid(fmt.Errorf("mintAddress: %w", err)))
	}
	if _, err := nft.ParseAddress(toWallet); err != nil {
		return TransferResult{}, u.fail(ctx, &act, start, invalid(fmt.Errorf("recipientAddress: %w", err)))
	}

	res, err := u.chain.Transfer(ctx, mintAddress, toWallet)
	if err != nil {
		errType := classify(err, activity.ErrorTypeTransferFailed)
		if u.recorder != nil {
			u.recorder.ObserveRejectedTransfer(string(errType))
		}
		return TransferResult{}, u.failAs(ctx, &act, start, errType, err)
	}
	u.succeed(ctx, &act, start, res.Signature)
	return res, nil
}

func (u *NFTUsecase) ListByOwner(ctx context.Context, wallet string) ([]OwnedNFT, error) {
	if u == nil || u.chain == nil {
		return nil, ErrChainNotConfigured
	}
	wallet = strings.TrimSpace(wallet)
	if _, err := nft.ParseAddress(wallet); err != nil {
		return nil, invalid(fmt.Errorf("wallet: %w", err))
	}
	return u.chain.ListOwned(ctx, wallet)
}

// UploadImage stores an image under images/<uuid><ext> and returns its public URL.
func (u *NFTUsecase) UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(ct, "image/") {
		return "", invalid(ErrUnsupportedMediaType)
	}
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	return u.upload(ctx, "images/"+u.newID()+ext, ct, r)
}

func (u *NFTUsecase) ListActivities(ctx context.Context, filter activity.Filter, limit int) ([]activity.Activity, error) {
	if u == nil || u.activities == nil {
		return []activity.Activity{}, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	list, err := u.activities.List(ctx, filter, limit)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []activity.Activity{}
	}
	return list, nil
}

// ============================================================
// helpers
// ============================================================

func (u *NFTUsecase) upload(ctx context.Context, object, contentType string, r io.Reader) (string, error) {
	if u == nil || u.storage == nil {
		return "", ErrStorageNotConfigured
	}
	url, err := u.storage.Upload(ctx, object, contentType, r)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", object, err)
	}
	return url, nil
}

func (u *NFTUsecase) begin(kind activity.Kind, name string) activity.Activity {
	// id and kind are always valid here
	a, _ := activity.NewPending(u.newID(), kind, u.now())
	a.Name = strings.TrimSpace(name)
	return a
}

func (u *NFTUsecase) succeed(ctx context.Context, a *activity.Activity, start time.Time, sig string) {
	if err := a.MarkSucceeded(sig, u.now()); err != nil {
		log.Printf("[nft_usecase] activity %s: %v", a.ID, err)
	}
	u.finish(ctx, a, start)
}

// fail records err with the error type inferred from it.
func (u *NFTUsecase) fail(ctx context.Context, a *activity.Activity, start time.Time, err error) error {
	return u.failAs(ctx, a, start, activity.ErrorTypeUnknown, err)
}

func (u *NFTUsecase) failAs(ctx context.Context, a *activity.Activity, start time.Time, fallback activity.ErrorType, err error) error {
	a.MarkFailed(classify(err, fallback), err.Error(), u.now())
	u.finish(ctx, a, start)
	return err
}

func (u *NFTUsecase) finish(ctx context.Context, a *activity.Activity, start time.Time) {
	if u.recorder != nil {
		u.recorder.ObserveOperation(string(a.Kind), string(a.Status), u.now().Sub(start))
	}
	if u.activities == nil {
		return
	}
	if err := u.activities.Save(ctx, *a); err != nil {
		log.Printf("[nft_usecase] save activity %s failed: %v", a.ID, err)
	}
}

// classify maps err to an activity error type, falling back when nothing specific matches.
func classify(err error, fallback activity.ErrorType) activity.ErrorType {
	switch {
	case err == nil:
		return fallback
	case errors.Is(err, program.ErrAlreadyTransferred):
		return activity.ErrorTypeAlreadyTransferred
	case errors.Is(err, program.ErrMetadataMismatch):
		return activity.ErrorTypeMetadataMismatch
	case errors.Is(err, runtime.ErrInsufficientFunds):
		return activity.ErrorTypeInsufficientFunds
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, program.ErrSelfTransfer):
		return activity.ErrorTypeInvalid
	case errors.Is(err, ErrStorageNotConfigured):
		return activity.ErrorTypeUploadFailed
	}
	return fallback
}

func invalid(err error) error {
	if errors.Is(err, ErrInvalidInput) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

func firstNonEmpty(v, def string) string {
	if t := strings.TrimSpace(v); t != "" {
		return t
	}
	return def
}

func maskShort(s string) string {
	t := strings.TrimSpace(s)
	if len(t) <= 10 {
		return t
	}
	return t[:4] + "***" + t[len(t)-4:]
}
