package model

// Lookup sources reported in ChannelInfo.Source.
const (
	SourceYouTube = "youtube"
	SourceMock    = "mock"
)

// ChannelInfo is the result of an external channel lookup by handle.
type ChannelInfo struct {
	ID                    string `json:"id"`
	Title                 string `json:"title"`
	CustomURL             string `json:"customUrl"`
	ThumbnailURL          string `json:"thumbnailUrl"`
	SubscriberCount       int64  `json:"subscriberCount"`
	ViewCount             int64  `json:"viewCount"`
	VideoCount            int64  `json:"videoCount"`
	HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
	Source                string `json:"source"`
}
