package firestore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nftminter/internal/domain/activity"
)

func TestActivityDocMapping(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.FixedZone("JST", 9*3600))
	a, err := activity.NewPending("id-1", activity.KindTransfer, at)
	require.NoError(t, err)
	a.MintAddress = "Mint"
	a.ToWallet = "Bob"
	a.MarkFailed(activity.ErrorTypeAlreadyTransferred, "AlreadyTransferred", at.Add(time.Second))

	d := toActivityDoc(a)
	assert.Equal(t, "transfer", d.Kind)
	assert.Equal(t, "failed", d.Status)
	require.NotNil(t, d.ErrorType)
	assert.Equal(t, "already_transferred", *d.ErrorType)
	assert.Equal(t, time.UTC, d.CreatedAt.Location())

	back := fromActivityDoc(d)
	assert.Equal(t, a.ID, back.ID)
	assert.Equal(t, a.Status, back.Status)
	assert.Equal(t, *a.ErrorType, *back.ErrorType)
	assert.True(t, a.CreatedAt.Equal(back.CreatedAt))
	require.NotNil(t, back.UpdatedAt)
}

func TestNewClient_RequiresProject(t *testing.T) {
	_, err := NewClient(context.Background(), " ", "")
	assert.Error(t, err)
}
