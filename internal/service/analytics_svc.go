package service

import (
	"math/rand/v2"
	"time"

	"github.com/orbitx-mcn/orbitx-go/internal/model"
)

// AnalyticsDays is the length of the generated series.
const AnalyticsDays = 30

// AnalyticsService serves a mock series generated once at construction.
type AnalyticsService struct {
	data []model.AnalyticsData
}

func NewAnalyticsService(now time.Time, rng *rand.Rand) *AnalyticsService {
	return &AnalyticsService{data: GenerateAnalytics(now, AnalyticsDays, rng)}
}

// GenerateAnalytics returns one entry per day for the days ending at now,
// oldest first.
func GenerateAnalytics(now time.Time, days int, rng *rand.Rand) []model.AnalyticsData {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(days)))
	}
	out := make([]model.AnalyticsData, 0, days)
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, -(days - 1 - i))
		out = append(out, model.AnalyticsData{
			Date:    day.Format("Jan 2"),
			Views:   rng.Int64N(500_000) + 1_000_000,
			Revenue: rng.Int64N(5_000) + 20_000,
			Subs:    rng.Int64N(1_000) + 500,
		})
	}
	return out
}

// List returns a copy of the series.
func (s *AnalyticsService) List() []model.AnalyticsData {
	out := make([]model.AnalyticsData, len(s.data))
	copy(out, s.data)
	return out
}
