// internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	usecase "nftminter/internal/application/usecase"
	"nftminter/internal/program"
)

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	body := errorBody{Error: msg}
	if err != nil {
		body.Details = err.Error()
	}
	writeJSON(w, status, body)
}

// statusFor maps usecase/program errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, program.ErrAlreadyTransferred):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, program.ErrMetadataMismatch),
		errors.Is(err, program.ErrSelfTransfer):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeUsecaseError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status := statusFor(err)
	if status >= 500 {
		log.Printf("[nft_handler] %s %s failed: %v", r.Method, r.URL.Path, err)
	}
	if errors.Is(err, program.ErrAlreadyTransferred) {
		msg = program.ErrAlreadyTransferred.Name
	}
	writeError(w, status, msg, err)
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func parseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func queryPtr(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	return &v
}
