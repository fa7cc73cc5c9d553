package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitx-mcn/orbitx-go/internal/model"
	"github.com/orbitx-mcn/orbitx-go/internal/repository"
)

type testEnv struct {
	svc   *CreatorService
	audit *AuditLogger
	store *repository.FileStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repository.NewFileStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, store.EnsureDataDir())

	audit := NewAuditLogger(repository.NewMemoryAuditRepo(store.LoadLogs(), store), "Admin", zerolog.Nop())
	repo := repository.NewMemoryCreatorRepo(store.LoadCreators(), store)
	svc := NewCreatorService(repo, audit, NewFallbackLookup(nil, nil, zerolog.Nop()), zerolog.Nop())
	return &testEnv{svc: svc, audit: audit, store: store}
}

func ptr[T any](v T) *T { return &v }

func TestCreatorService_ListStartsWithSeed(t *testing.T) {
	env := newTestEnv(t)
	got, err := env.svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repository.SeedCreators(), got)
}

func TestCreatorService_CreateAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		c, err := env.svc.Create(ctx, model.CreatorPatch{Name: ptr(fmt.Sprintf("creator %d", i))})
		require.NoError(t, err)
		require.NotEmpty(t, c.ID)
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
	}
}

func TestCreatorService_CreateIgnoresClientFieldsOutsidePatch(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	c, err := env.svc.Create(ctx, model.CreatorPatch{
		Name:        ptr("Nadia"),
		ChannelName: ptr("Nadia Builds"),
		Revenue:     ptr(-10.0),
		Status:      ptr("Retired"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Nadia", c.Name)
	assert.Equal(t, -10.0, c.Revenue, "revenue is not range-checked")
	assert.Equal(t, "Retired", c.Status, "status is not restricted")

	logs, _ := env.audit.List(ctx)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActionCreatorAdded, logs[0].Action)
	assert.Equal(t, "Added new creator: Nadia (Nadia Builds)", logs[0].Details)
	assert.Equal(t, "Admin", logs[0].User)
}

func TestCreatorService_CreateRetriesDuplicateID(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ids := []string{"1", "1", "fresh"}
	env.svc.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	c, err := env.svc.Create(ctx, model.CreatorPatch{Name: ptr("Retry")})
	require.NoError(t, err)
	assert.Equal(t, "fresh", c.ID)
}

func TestCreatorService_UpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	c, err := env.svc.Create(ctx, model.CreatorPatch{Subscribers: ptr(int64(100)), Revenue: ptr(50.0)})
	require.NoError(t, err)

	found, err := env.svc.Update(ctx, c.ID, model.CreatorPatch{Revenue: ptr(75.0)})
	require.NoError(t, err)
	assert.True(t, found)

	got, err := env.svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Subscribers)
	assert.Equal(t, 75.0, got.Revenue)
	assert.Equal(t, c.ID, got.ID)
}

func TestCreatorService_UpdateMissingIsSilentNoOp(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	found, err := env.svc.Update(ctx, "ghost", model.CreatorPatch{Name: ptr("x")})
	require.NoError(t, err)
	assert.False(t, found)

	logs, _ := env.audit.List(ctx)
	assert.Empty(t, logs, "a no-op update must not be audited")
}

func TestCreatorService_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	found, err := env.svc.Delete(ctx, "2")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = env.svc.Delete(ctx, "2")
	require.NoError(t, err)
	assert.False(t, found)

	list, _ := env.svc.List(ctx)
	assert.Len(t, list, 4)

	logs, _ := env.audit.List(ctx)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActionCreatorDeleted, logs[0].Action)
	assert.Equal(t, "Deleted creator: Sarah Chen (Chen Cooks)", logs[0].Details)
}

func TestCreatorService_GetMissing(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrCreatorNotFound)
}

func TestCreatorService_AuditLogKeepsNewest100(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	for i := 0; i < 150; i++ {
		_, err := env.svc.Create(ctx, model.CreatorPatch{Name: ptr(fmt.Sprintf("c%03d", i))})
		require.NoError(t, err)
	}

	persisted := env.store.LoadLogs()
	require.Len(t, persisted, MaxAuditEntries)
	assert.Equal(t, "Added new creator: c149 ()", persisted[0].Details)
	assert.Equal(t, "Added new creator: c050 ()", persisted[99].Details)
}

func TestCreatorService_RoundTripWithoutRestart(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	var created []model.Creator
	for i := 0; i < 5; i++ {
		c, err := env.svc.Create(ctx, model.CreatorPatch{
			Name:        ptr(fmt.Sprintf("n%d", i)),
			ChannelName: ptr(fmt.Sprintf("ch%d", i)),
			Subscribers: ptr(int64(i * 1000)),
			Revenue:     ptr(float64(i) * 1.5),
			AvatarURL:   ptr("data:image/png;base64,iVBORw0KGgo="),
		})
		require.NoError(t, err)
		created = append(created, *c)
	}

	list, err := env.svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, created, list[len(list)-5:])

	// Survives a reload from disk, too.
	reloaded := repository.NewMemoryCreatorRepo(env.store.LoadCreators(), nil)
	fromDisk, _ := reloaded.List(ctx)
	assert.Equal(t, list, fromDisk)
}

func TestCreatorService_DetailsStoredVerbatim(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	name := "Robert'); DROP TABLE creators;-- \"<script>\" \n ✨"
	_, err := env.svc.Create(ctx, model.CreatorPatch{Name: ptr(name), ChannelName: ptr("%s %d")})
	require.NoError(t, err)

	logs := env.store.LoadLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, "Added new creator: "+name+" (%s %d)", logs[0].Details)
}

type failingLogSaver struct{}

func (failingLogSaver) SaveLogs([]model.AuditLogEntry) error { return errors.New("read-only fs") }

func TestCreatorService_AuditFailureLeavesStoreAhead(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryCreatorRepo(repository.SeedCreators(), nil)
	audit := NewAuditLogger(repository.NewMemoryAuditRepo(nil, failingLogSaver{}), "Admin", zerolog.Nop())
	svc := NewCreatorService(repo, audit, MockLookup{}, zerolog.Nop())

	_, err := svc.Delete(ctx, "1")
	require.Error(t, err)

	_, err = svc.Get(ctx, "1")
	assert.ErrorIs(t, err, ErrCreatorNotFound, "the delete was persisted before the audit append failed")
}

func TestCreatorService_SyncWithMockLookup(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.svc.now = func() time.Time { return time.Date(2026, 3, 7, 15, 4, 5, 0, time.Local) }

	c, info, err := env.svc.Sync(ctx, "3", "retrogaming")
	require.NoError(t, err)

	want, _ := MockLookup{}.Lookup(ctx, "retrogaming")
	assert.Equal(t, want, info)
	assert.Equal(t, model.SourceMock, info.Source)
	assert.Equal(t, "@retrogaming", c.LinkedChannelHandle)
	assert.Equal(t, "retrogaming (Official)", c.ChannelName)
	assert.Equal(t, want.SubscriberCount, c.Subscribers)
	assert.Equal(t, want.ViewCount, c.TotalViews)
	assert.Equal(t, want.VideoCount, c.VideoCount)
	assert.Equal(t, "3/7/2026, 3:04:05 PM", c.LastSynced)
	assert.Equal(t, "Mike Ross", c.Name, "sync leaves unrelated fields alone")

	logs, _ := env.audit.List(ctx)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActionCreatorSynced, logs[0].Action)
}

func TestCreatorService_SyncMissing(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.svc.Sync(context.Background(), "ghost", "anyone")
	assert.ErrorIs(t, err, ErrCreatorNotFound)
}

func TestCreatorService_ConcurrentUpdatesAreNotLost(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := env.svc.Create(ctx, model.CreatorPatch{Name: ptr(fmt.Sprintf("p%d", i))})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, env.store.LoadCreators(), 25)
	assert.Len(t, env.store.LoadLogs(), 20)
}

func TestCreatorService_SyncUnknownChannelLeavesCreator(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.svc.lookup = NewFallbackLookup(&handleLookup{}, nil, zerolog.Nop())
	before, _ := env.svc.Get(ctx, "1")

	_, _, err := env.svc.Sync(ctx, "1", "doesnotexist")
	assert.ErrorIs(t, err, ErrChannelNotFound)

	after, _ := env.svc.Get(ctx, "1")
	assert.Equal(t, before, after)
	logs, _ := env.audit.List(ctx)
	assert.Empty(t, logs)
}

func TestCreatorService_SyncSkipsLookupCache(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	rdb, mock := redismock.NewClientMock()
	info := &model.ChannelInfo{ID: "UCabc", Title: "Chen Cooks", SubscriberCount: 900001, Source: model.SourceYouTube}
	primary := &stubLookup{info: info}
	env.svc.lookup = NewFallbackLookup(primary, NewCacheServiceWithClient(rdb), zerolog.Nop())

	body, err := json.Marshal(info)
	require.NoError(t, err)
	mock.ExpectDel("orbitx:channel:chencooks").SetVal(1)
	mock.ExpectSet("orbitx:channel:chencooks", body, ChannelCacheTTL).SetVal("OK")

	c, got, err := env.svc.Sync(ctx, "2", "chencooks")
	require.NoError(t, err)
	assert.Equal(t, info, got)
	assert.Equal(t, int64(900001), c.Subscribers)
	assert.Equal(t, int32(1), primary.calls.Load())
	assert.NoError(t, mock.ExpectationsWereMet())
}
