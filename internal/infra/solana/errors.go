package solana

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"nftminter/internal/program"
)

var (
	ErrExecutorNotConfigured = errors.New("solana: executor not configured")
	ErrMintEmpty             = errors.New("solana: mintAddress is empty")
	ErrToWalletEmpty         = errors.New("solana: toWalletAddress is empty")
	ErrSourceHoldingAbsent   = errors.New("solana: source token account not found")
	ErrKeypairNotConfigured  = errors.New("solana: keypair source not configured")
	ErrInvalidKeypair        = errors.New("solana: invalid keypair bytes")
)

var customErrorPattern = regexp.MustCompile(`custom program error: 0x([0-9a-fA-F]+)`)

// mapProgramError attaches the program sentinel to a cluster error that
// reports "custom program error: 0x<code>", so callers can use errors.Is.
func mapProgramError(err error) error {
	if err == nil {
		return nil
	}
	m := customErrorPattern.FindStringSubmatch(err.Error())
	if len(m) != 2 {
		return err
	}
	code, perr := strconv.ParseUint(m[1], 16, 32)
	if perr != nil {
		return err
	}
	if pe, ok := program.ErrorFromCode(uint32(code)); ok {
		return errors.Join(pe, err)
	}
	return err
}

func maskShort(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return ""
	}
	if len(t) <= 10 {
		return t
	}
	return t[:4] + "***" + t[len(t)-4:]
}
