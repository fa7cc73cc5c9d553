package service

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAnalytics(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	data := GenerateAnalytics(now, AnalyticsDays, rand.New(rand.NewPCG(1, 2)))

	require.Len(t, data, AnalyticsDays)
	assert.Equal(t, "Feb 14", data[0].Date)
	assert.Equal(t, "Mar 15", data[AnalyticsDays-1].Date)

	for _, d := range data {
		assert.GreaterOrEqual(t, d.Views, int64(1_000_000))
		assert.Less(t, d.Views, int64(1_500_000))
		assert.GreaterOrEqual(t, d.Revenue, int64(20_000))
		assert.Less(t, d.Revenue, int64(25_000))
		assert.GreaterOrEqual(t, d.Subs, int64(500))
		assert.Less(t, d.Subs, int64(1_500))
	}
}

func TestAnalyticsService_StableAcrossCalls(t *testing.T) {
	svc := NewAnalyticsService(time.Now(), nil)

	first := svc.List()
	first[0].Views = -1
	assert.NotEqual(t, first, svc.List(), "List must return a copy")
	assert.Equal(t, svc.List(), svc.List())
}
