package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitx-mcn/orbitx-go/internal/model"
	"github.com/orbitx-mcn/orbitx-go/internal/repository"
)

func TestAuditLogger_LogFields(t *testing.T) {
	a := NewAuditLogger(repository.NewMemoryAuditRepo(nil, nil), "Admin", zerolog.Nop())
	a.now = func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 678_000_000, time.FixedZone("BST", 6*3600))
	}
	a.newID = func() string { return "entry-1" }

	e, err := a.Log(context.Background(), model.ActionCreatorAdded, "Added new creator: A (B)")
	require.NoError(t, err)
	assert.Equal(t, model.AuditLogEntry{
		ID:        "entry-1",
		Timestamp: "2026-01-01T21:04:05.678Z",
		Action:    model.ActionCreatorAdded,
		Details:   "Added new creator: A (B)",
		User:      "Admin",
	}, *e)
}

func TestAuditLogger_NewestFirstBounded(t *testing.T) {
	ctx := context.Background()
	a := NewAuditLogger(repository.NewMemoryAuditRepo(nil, nil), "Admin", zerolog.Nop())

	for i := 0; i < MaxAuditEntries+20; i++ {
		_, err := a.Log(ctx, model.ActionCreatorUpdated, string(rune('a'+i%26)))
		require.NoError(t, err)
	}

	logs, err := a.List(ctx)
	require.NoError(t, err)
	assert.Len(t, logs, MaxAuditEntries)

	seen := map[string]bool{}
	for _, e := range logs {
		assert.False(t, seen[e.ID], "ids must be unique")
		seen[e.ID] = true
	}
}
