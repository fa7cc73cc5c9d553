package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitx-mcn/orbitx-go/internal/model"
)

func TestResyncWorker_SyncsOnlyLinkedCreators(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.svc.Update(ctx, "1", model.CreatorPatch{LinkedChannelHandle: ptr("@techflow")})
	require.NoError(t, err)
	_, err = env.svc.Update(ctx, "4", model.CreatorPatch{LinkedChannelHandle: ptr("dailyvlog")})
	require.NoError(t, err)

	w := NewResyncWorker(env.svc, time.Hour, zerolog.Nop())
	changed, failed, err := w.resyncAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)
	assert.Equal(t, 0, failed)

	c, err := env.svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "@techflow", c.LinkedChannelHandle)
	assert.Equal(t, "techflow (Official)", c.ChannelName)
	assert.NotEmpty(t, c.LastSynced)

	untouched, _ := env.svc.Get(ctx, "2")
	assert.Empty(t, untouched.LastSynced)

	logs, _ := env.audit.List(ctx)
	assert.Equal(t, model.ActionCreatorSynced, logs[0].Action)
	assert.Len(t, logs, 4)
}

func TestResyncWorker_UnchangedStatsAreNotAudited(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, _, err := env.svc.Sync(ctx, "1", "techflow")
	require.NoError(t, err)
	before, _ := env.svc.Get(ctx, "1")

	w := NewResyncWorker(env.svc, time.Hour, zerolog.Nop())
	for i := 0; i < 3; i++ {
		changed, failed, err := w.resyncAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, changed)
		assert.Equal(t, 0, failed)
	}

	after, _ := env.svc.Get(ctx, "1")
	assert.Equal(t, before, after, "lastSynced is only stamped on a real change")
	logs, _ := env.audit.List(ctx)
	assert.Len(t, logs, 1)
}

func TestResyncWorker_StopTwice(t *testing.T) {
	w := NewResyncWorker(newTestEnv(t).svc, time.Hour, zerolog.Nop())
	w.Stop()
	assert.NotPanics(t, w.Stop)
}

func TestResyncWorker_StopsOnCancel(t *testing.T) {
	env := newTestEnv(t)
	w := NewResyncWorker(env.svc, time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
