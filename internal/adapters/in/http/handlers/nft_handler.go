// internal/adapters/in/http/handlers/nft_handler.go
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	usecase "nftminter/internal/application/usecase"
	"nftminter/internal/domain/activity"
	"nftminter/internal/domain/nft"
)

// NFTService is the subset of usecase.NFTUsecase the handler drives.
type NFTService interface {
	MintCertification(ctx context.Context, in usecase.MintCertificationInput) (usecase.MintCertificationResult, error)
	MintCollection(ctx context.Context, p nft.Payload) (usecase.MintResult, error)
	Transfer(ctx context.Context, mintAddress, toWallet string) (usecase.TransferResult, error)
	ListByOwner(ctx context.Context, wallet string) ([]usecase.OwnedNFT, error)
	UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
	ListActivities(ctx context.Context, filter activity.Filter, limit int) ([]activity.Activity, error)
}

var _ NFTService = (*usecase.NFTUsecase)(nil)

type NFTHandler struct {
	uc             NFTService
	maxUploadBytes int64
}

func NewNFTHandler(uc NFTService, maxUploadBytes int64) *NFTHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &NFTHandler{uc: uc, maxUploadBytes: maxUploadBytes}
}

// POST /upload-image (multipart field "image")
func (h *NFTHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "image too large", err)
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart body", err)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no image sent", err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	url, err := h.uc.UploadImage(r.Context(), header.Filename, contentType, file)
	if err != nil {
		writeUsecaseError(w, r, "image upload failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "imageUrl": url})
}

// POST /mint-certification
func (h *NFTHandler) MintCertification(w http.ResponseWriter, r *http.Request) {
	var in usecase.MintCertificationInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", err)
		return
	}
	res, err := h.uc.MintCertification(r.Context(), in)
	if err != nil {
		writeUsecaseError(w, r, "certification mint failed", err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		usecase.MintCertificationResult
	}{true, res})
}

type mintCollectionRequest struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	URI    string `json:"uri"`
}

// POST /mint-collection
func (h *NFTHandler) MintCollection(w http.ResponseWriter, r *http.Request) {
	var req mintCollectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", err)
		return
	}
	res, err := h.uc.MintCollection(r.Context(), nft.Payload{Name: req.Name, Symbol: req.Symbol, URI: req.URI})
	if err != nil {
		writeUsecaseError(w, r, "collection mint failed", err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		usecase.MintResult
	}{true, res})
}

type transferRequest struct {
	MintAddress      string `json:"mintAddress"`
	RecipientAddress string `json:"recipientAddress"`
}

// POST /transfer-nft
func (h *NFTHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", err)
		return
	}
	res, err := h.uc.Transfer(r.Context(), req.MintAddress, req.RecipientAddress)
	if err != nil {
		writeUsecaseError(w, r, "transfer failed", err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		usecase.TransferResult
	}{true, res})
}

// GET /nfts?wallet=
func (h *NFTHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	wallet := strings.TrimSpace(r.URL.Query().Get("wallet"))
	if wallet == "" {
		writeError(w, http.StatusBadRequest, "wallet is required", nil)
		return
	}
	items, err := h.uc.ListByOwner(r.Context(), wallet)
	if err != nil {
		writeUsecaseError(w, r, "list nfts failed", err)
		return
	}
	if items == nil {
		items = []usecase.OwnedNFT{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"wallet": wallet, "nfts": items})
}

// GET /activities?mintAddress=&wallet=&kind=&status=&limit=
func (h *NFTHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	f := activity.Filter{
		MintAddress: queryPtr(r, "mintAddress"),
		Wallet:      queryPtr(r, "wallet"),
	}
	if k := queryPtr(r, "kind"); k != nil {
		kind := activity.Kind(*k)
		f.Kind = &kind
	}
	if s := queryPtr(r, "status"); s != nil {
		st := activity.Status(*s)
		f.Status = &st
	}
	limit := parseIntDefault(r.URL.Query().Get("limit"), 50)

	items, err := h.uc.ListActivities(r.Context(), f, limit)
	if err != nil {
		writeUsecaseError(w, r, "list activities failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"activities": items})
}
