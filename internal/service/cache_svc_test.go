package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheService_DisabledIsNoOp(t *testing.T) {
	ctx := context.Background()
	c := &CacheService{}

	data, err := c.GetChannel(ctx, "anyone")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, c.SetChannel(ctx, "anyone", map[string]int{"a": 1}))
	assert.NoError(t, c.InvalidateChannel(ctx, "anyone"))
	assert.NoError(t, c.Close())
	assert.Nil(t, c.Client())
}

func TestCacheService_GetChannel(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	c := NewCacheServiceWithClient(rdb)

	mock.ExpectGet("orbitx:channel:techflow").RedisNil()
	data, err := c.GetChannel(ctx, "TechFlow")
	require.NoError(t, err)
	assert.Nil(t, data)

	mock.ExpectGet("orbitx:channel:techflow").SetVal(`{"id":"UC1"}`)
	data, err = c.GetChannel(ctx, "techflow")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"UC1"}`, string(data))

	mock.ExpectGet("orbitx:channel:techflow").SetErr(errors.New("conn reset"))
	_, err = c.GetChannel(ctx, "techflow")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheService_SetAndInvalidate(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	c := NewCacheServiceWithClient(rdb)

	mock.ExpectSet("orbitx:channel:chencooks", []byte(`{"n":1}`), ChannelCacheTTL).SetVal("OK")
	require.NoError(t, c.SetChannel(ctx, "ChenCooks", map[string]int{"n": 1}))

	mock.ExpectDel("orbitx:channel:chencooks").SetVal(1)
	require.NoError(t, c.InvalidateChannel(ctx, "chencooks"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
