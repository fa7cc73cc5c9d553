package model

// StrategyRequest is the body of POST /api/strategy.
type StrategyRequest struct {
	Niche       string `json:"niche"`
	Topic       string `json:"topic"`
	ChannelName string `json:"channelName"`
}

// Strategy holds content suggestions for a channel.
type Strategy struct {
	TitleIdeas              []string `json:"titleIdeas"`
	DescriptionOptimization string   `json:"descriptionOptimization"`
	Tags                    []string `json:"tags"`
	ContentGaps             []string `json:"contentGaps"`
	Source                  string   `json:"source"`
}
