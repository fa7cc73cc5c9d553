package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/orbitx-mcn/orbitx-go/internal/metrics"
	"github.com/orbitx-mcn/orbitx-go/internal/model"
	"github.com/orbitx-mcn/orbitx-go/pkg/hash"
)

// ErrChannelNotFound is returned by YouTubeLookup when no channel matches.
var ErrChannelNotFound = errors.New("channel not found")

const lookupTimeout = 10 * time.Second

// ChannelLookup resolves a channel handle (without the leading @) to its
// public statistics.
type ChannelLookup interface {
	Lookup(ctx context.Context, handle string) (*model.ChannelInfo, error)
}

// --- Mock ---

// MockLookup fabricates plausible statistics. Output is a pure function of
// the handle so repeated syncs and tests see identical numbers.
type MockLookup struct{}

func (MockLookup) Lookup(_ context.Context, handle string) (*model.ChannelInfo, error) {
	handle = strings.TrimPrefix(handle, "@")
	seed := hash.Seed(strings.ToLower(handle))
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	return &model.ChannelInfo{
		ID:              "UC" + strings.ToUpper(hash.ShortHash(strings.ToLower(handle), 9)),
		Title:           handle + " (Official)",
		CustomURL:       "@" + handle,
		ThumbnailURL:    "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(handle),
		ViewCount:       rng.Int64N(50_000_000) + 100_000,
		SubscriberCount: rng.Int64N(1_000_000) + 10_000,
		VideoCount:      rng.Int64N(500) + 10,
		Source:          model.SourceMock,
	}, nil
}

// --- YouTube Data API v3 ---

// YouTubeLookup queries the YouTube Data API v3: search for the handle to get
// a channel id, then fetch snippet and statistics for that id. When search
// returns nothing it retries with channels?forHandle=.
type YouTubeLookup struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewYouTubeLookup(apiKey, baseURL string, client *http.Client) *YouTubeLookup {
	if client == nil {
		client = &http.Client{Timeout: lookupTimeout}
	}
	return &YouTubeLookup{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type ytSearchResponse struct {
	Items []struct {
		ID struct {
			ChannelID string `json:"channelId"`
		} `json:"id"`
	} `json:"items"`
}

type ytThumbnail struct {
	URL string `json:"url"`
}

type ytChannelResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title      string `json:"title"`
			CustomURL  string `json:"customUrl"`
			Thumbnails struct {
				Default ytThumbnail `json:"default"`
				Medium  ytThumbnail `json:"medium"`
				High    ytThumbnail `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount             string `json:"viewCount"`
			SubscriberCount       string `json:"subscriberCount"`
			HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
			VideoCount            string `json:"videoCount"`
		} `json:"statistics"`
	} `json:"items"`
}

func (y *YouTubeLookup) Lookup(ctx context.Context, handle string) (*model.ChannelInfo, error) {
	handle = strings.TrimPrefix(handle, "@")

	var search ytSearchResponse
	err := y.get(ctx, "search", url.Values{
		"part": {"snippet"},
		"q":    {handle},
		"type": {"channel"},
	}, &search)
	if err != nil {
		return nil, err
	}

	params := url.Values{"part": {"snippet,statistics"}}
	if len(search.Items) > 0 && search.Items[0].ID.ChannelID != "" {
		params.Set("id", search.Items[0].ID.ChannelID)
	} else {
		params.Set("forHandle", handle)
	}

	var channels ytChannelResponse
	if err := y.get(ctx, "channels", params, &channels); err != nil {
		return nil, err
	}
	if len(channels.Items) == 0 {
		return nil, fmt.Errorf("youtube %q: %w", handle, ErrChannelNotFound)
	}

	item := channels.Items[0]
	thumb := item.Snippet.Thumbnails.High.URL
	if thumb == "" {
		thumb = item.Snippet.Thumbnails.Medium.URL
	}
	if thumb == "" {
		thumb = item.Snippet.Thumbnails.Default.URL
	}

	return &model.ChannelInfo{
		ID:                    item.ID,
		Title:                 item.Snippet.Title,
		CustomURL:             item.Snippet.CustomURL,
		ThumbnailURL:          thumb,
		ViewCount:             parseCount(item.Statistics.ViewCount),
		SubscriberCount:       parseCount(item.Statistics.SubscriberCount),
		VideoCount:            parseCount(item.Statistics.VideoCount),
		HiddenSubscriberCount: item.Statistics.HiddenSubscriberCount,
		Source:                model.SourceYouTube,
	}, nil
}

func (y *YouTubeLookup) get(ctx context.Context, resource string, params url.Values, out any) error {
	params.Set("key", y.apiKey)
	endpoint := y.baseURL + "/" + resource + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := y.client.Do(req)
	if err != nil {
		return fmt.Errorf("youtube %s: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube %s: unexpected status %s", resource, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("youtube %s: decode: %w", resource, err)
	}
	return nil
}

// parseCount reads the API's decimal-string counters; malformed values are 0.
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// --- Fallback ---

// ChannelRefresher is a ChannelLookup that can skip its cache.
type ChannelRefresher interface {
	Refresh(ctx context.Context, handle string) (*model.ChannelInfo, error)
}

// FallbackLookup fronts a real lookup with a Redis cache and a circuit
// breaker and answers from MockLookup when the real service is unavailable.
// The only error it returns is ErrChannelNotFound, when the real service
// answers that no channel matches.
type FallbackLookup struct {
	primary ChannelLookup
	mock    MockLookup
	cache   *CacheService
	breaker *gobreaker.CircuitBreaker
	logger  zerolog.Logger
}

// NewFallbackLookup wraps primary. A nil primary means mock-only operation.
func NewFallbackLookup(primary ChannelLookup, cache *CacheService, logger zerolog.Logger) *FallbackLookup {
	if cache == nil {
		cache = &CacheService{}
	}
	return &FallbackLookup{
		primary: primary,
		cache:   cache,
		breaker: newBreaker("youtube-lookup"),
		logger:  logger,
	}
}

func (f *FallbackLookup) Lookup(ctx context.Context, handle string) (*model.ChannelInfo, error) {
	handle = strings.TrimPrefix(handle, "@")
	if f.primary == nil {
		return f.mock.Lookup(ctx, handle)
	}

	if cached, err := f.cache.GetChannel(ctx, handle); err != nil {
		f.logger.Warn().Err(err).Msg("cache: channel get error")
	} else if cached != nil {
		var info model.ChannelInfo
		if err := json.Unmarshal(cached, &info); err == nil {
			return &info, nil
		}
	}

	return f.fetch(ctx, handle)
}

// Refresh drops any cached entry for handle and queries the real service.
func (f *FallbackLookup) Refresh(ctx context.Context, handle string) (*model.ChannelInfo, error) {
	handle = strings.TrimPrefix(handle, "@")
	if f.primary == nil {
		return f.mock.Lookup(ctx, handle)
	}

	if err := f.cache.InvalidateChannel(ctx, handle); err != nil {
		f.logger.Warn().Err(err).Msg("cache: channel invalidate error")
	}
	return f.fetch(ctx, handle)
}

func (f *FallbackLookup) fetch(ctx context.Context, handle string) (*model.ChannelInfo, error) {
	res, err := f.breaker.Execute(func() (any, error) {
		ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
		defer cancel()
		return f.primary.Lookup(ctx, handle)
	})
	if errors.Is(err, ErrChannelNotFound) {
		return nil, err
	}
	info, _ := res.(*model.ChannelInfo)
	if err != nil || info == nil {
		metrics.CollaboratorFallbacks.WithLabelValues("youtube").Inc()
		f.logger.Warn().Err(err).Str("handle", handle).Msg("channel lookup failed, returning mock data")
		return f.mock.Lookup(ctx, handle)
	}

	if err := f.cache.SetChannel(ctx, handle, info); err != nil {
		f.logger.Warn().Err(err).Msg("cache: channel set error")
	}
	return info, nil
}
