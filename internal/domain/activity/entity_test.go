package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPending(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("JST", 9*3600))
	a, err := NewPending(" a1 ", KindTransfer, now)
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, StatusPending, a.Status)
	assert.Equal(t, time.UTC, a.CreatedAt.Location())

	_, err = NewPending("", KindTransfer, now)
	assert.ErrorIs(t, err, ErrInvalidID)
	_, err = NewPending("a1", Kind("burn"), now)
	assert.ErrorIs(t, err, ErrInvalidKind)
	_, err = NewPending("a1", KindTransfer, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidCreatedAt)
}

func TestMarkSucceededAndFailed(t *testing.T) {
	now := time.Now()
	a, err := NewPending("a1", KindMintCertification, now)
	require.NoError(t, err)

	a.MarkFailed("", "  ", now)
	assert.Equal(t, StatusFailed, a.Status)
	require.NotNil(t, a.ErrorType)
	assert.Equal(t, ErrorTypeUnknown, *a.ErrorType)
	assert.Nil(t, a.ErrorMsg)

	assert.ErrorIs(t, a.MarkSucceeded(" ", now), ErrEmptySignature)
	require.NoError(t, a.MarkSucceeded("5sig", now))
	assert.Equal(t, StatusSucceeded, a.Status)
	assert.Nil(t, a.ErrorType)
	assert.Equal(t, "5sig", *a.Signature)
}

func TestFilterMatches(t *testing.T) {
	a := Activity{Kind: KindTransfer, MintAddress: "m", FromWallet: "f", ToWallet: "t", Status: StatusSucceeded}
	mint, other, wallet := "m", "x", "t"
	kind := KindMintCollection

	assert.True(t, Filter{}.Matches(a))
	assert.True(t, Filter{MintAddress: &mint, Wallet: &wallet}.Matches(a))
	assert.False(t, Filter{MintAddress: &other}.Matches(a))
	assert.False(t, Filter{Kind: &kind}.Matches(a))
}
