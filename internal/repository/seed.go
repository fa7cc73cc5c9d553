package repository

import "github.com/orbitx-mcn/orbitx-go/internal/model"

// SeedCreators returns the built-in sample roster used when no creators file
// can be loaded. A fresh slice is returned on every call.
func SeedCreators() []model.Creator {
	return []model.Creator{
		{ID: "1", Name: "Alex Rivera", ChannelName: "TechFlow", Subscribers: 2400000, TotalViews: 145000000, VideoCount: 432, Revenue: 15400, Niche: "Tech", AvatarURL: "https://picsum.photos/100?random=1", Status: model.StatusActive, Trend: "up"},
		{ID: "2", Name: "Sarah Chen", ChannelName: "Chen Cooks", Subscribers: 890000, TotalViews: 45000000, VideoCount: 156, Revenue: 8200, Niche: "Food", AvatarURL: "https://picsum.photos/100?random=2", Status: model.StatusActive, Trend: "up"},
		{ID: "3", Name: "Mike Ross", ChannelName: "Retro Gaming", Subscribers: 120000, TotalViews: 5000000, VideoCount: 890, Revenue: 1200, Niche: "Gaming", AvatarURL: "https://picsum.photos/100?random=3", Status: model.StatusPending, Trend: "flat"},
		{ID: "4", Name: "Emma Wilson", ChannelName: "Daily Vlog", Subscribers: 3500000, TotalViews: 200000000, VideoCount: 1240, Revenue: 24000, Niche: "Lifestyle", AvatarURL: "https://picsum.photos/100?random=4", Status: model.StatusActive, Trend: "down"},
		{ID: "5", Name: "John Doe", ChannelName: "Crypto King", Subscribers: 50000, TotalViews: 1000000, VideoCount: 45, Revenue: 400, Niche: "Finance", AvatarURL: "https://picsum.photos/100?random=5", Status: model.StatusSuspended, Trend: "down"},
	}
}
